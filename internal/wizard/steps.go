package wizard

// TotalSteps is the fixed number of wizard steps.
const TotalSteps = 4

// StepInfo describes one step of the wizard.
type StepInfo struct {
	Number      int
	Title       string
	Description string
	Fields      []Field
}

var steps = [TotalSteps]StepInfo{
	{
		Number:      1,
		Title:       "Product Info",
		Description: "Tell us about your product",
		Fields:      []Field{ProductName, ProductDescription},
	},
	{
		Number:      2,
		Title:       "Target Audience",
		Description: "Who are you trying to reach?",
		Fields:      []Field{TargetAge, TargetGender, TargetInterests, TargetRegion},
	},
	{
		Number:      3,
		Title:       "Brand & Campaign",
		Description: "Define your brand voice and goals",
		Fields:      []Field{BrandTone, CampaignGoal},
	},
	{
		Number:      4,
		Title:       "Platform & Budget",
		Description: "Choose platforms and budget level",
		Fields:      []Field{Platforms, BudgetLevel},
	},
}

// Steps returns the step table in order.
func Steps() []StepInfo {
	out := make([]StepInfo, len(steps))
	copy(out, steps[:])
	return out
}

// Step returns the info for step n (1-based). Out of range values are clamped.
func Step(n int) StepInfo {
	return steps[clampStep(n)-1]
}

// StepOf returns the step number a field belongs to.
func StepOf(f Field) int {
	for _, s := range steps {
		for _, sf := range s.Fields {
			if sf == f {
				return s.Number
			}
		}
	}
	return 0
}

func clampStep(n int) int {
	if n < 1 {
		return 1
	}
	if n > TotalSteps {
		return TotalSteps
	}
	return n
}
