package brand

// Option is a selectable value with its display text.
type Option struct {
	Value       string
	Label       string
	Description string
}

// Catalog is an ordered set of options for one enumerated field.
type Catalog []Option

// Has reports whether value is one of the catalog's options.
func (c Catalog) Has(value string) bool {
	for _, o := range c {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Option returns the option for value.
func (c Catalog) Option(value string) (Option, bool) {
	for _, o := range c {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// Label returns the display label for value, or value itself if unknown.
func (c Catalog) Label(value string) string {
	for _, o := range c {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Labels maps each value through Label, preserving order.
func (c Catalog) Labels(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, c.Label(v))
	}
	return out
}

// Values returns the option values in catalog order.
func (c Catalog) Values() []string {
	out := make([]string, 0, len(c))
	for _, o := range c {
		out = append(out, o.Value)
	}
	return out
}

var AgeGroups = Catalog{
	{Value: "13-17", Label: "13-17"},
	{Value: "18-24", Label: "18-24"},
	{Value: "25-34", Label: "25-34"},
	{Value: "35-44", Label: "35-44"},
	{Value: "45-54", Label: "45-54"},
	{Value: "55+", Label: "55+"},
}

var Genders = Catalog{
	{Value: "Female", Label: "Female"},
	{Value: "Male", Label: "Male"},
	{Value: "Non-binary", Label: "Non-binary"},
	{Value: "All", Label: "All"},
}

var Regions = Catalog{
	{Value: "north-america", Label: "North America"},
	{Value: "europe", Label: "Europe"},
	{Value: "asia-pacific", Label: "Asia Pacific"},
	{Value: "latin-america", Label: "Latin America"},
	{Value: "middle-east-africa", Label: "Middle East & Africa"},
	{Value: "global", Label: "Global"},
}

var Tones = Catalog{
	{Value: "friendly", Label: "Friendly", Description: "Warm and approachable"},
	{Value: "playful", Label: "Playful", Description: "Fun and energetic"},
	{Value: "luxury", Label: "Luxury", Description: "Premium and sophisticated"},
	{Value: "professional", Label: "Professional", Description: "Corporate and trustworthy"},
	{Value: "edgy", Label: "Edgy", Description: "Bold and provocative"},
}

var Goals = Catalog{
	{Value: "awareness", Label: "Brand Awareness"},
	{Value: "sales", Label: "Drive Sales"},
	{Value: "ugc", Label: "User Generated Content"},
	{Value: "engagement", Label: "Engagement"},
}

var Platforms = Catalog{
	{Value: "instagram", Label: "Instagram"},
	{Value: "youtube", Label: "YouTube"},
}

var BudgetLevels = Catalog{
	{Value: "micro", Label: "Micro Influencers", Description: "1K-100K followers"},
	{Value: "mid", Label: "Mid-tier Influencers", Description: "100K-1M followers"},
	{Value: "macro", Label: "Macro Influencers", Description: "1M+ followers"},
}
