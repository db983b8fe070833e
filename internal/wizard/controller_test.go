package wizard

import (
	"errors"
	"testing"

	"github.com/icyhq/icy/internal/brand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() brand.Profile {
	return brand.Profile{
		ProductName:        "EcoClean Skincare",
		ProductDescription: "A fully natural skincare line for sensitive skin",
		TargetAge:          []string{"18-24", "25-34"},
		TargetGender:       []string{"Female"},
		TargetInterests:    "clean beauty, wellness",
		TargetRegion:       "north-america",
		BrandTone:          "friendly",
		CampaignGoal:       "awareness",
		Platforms:          []string{"instagram", "youtube"},
		BudgetLevel:        "macro",
	}
}

// advanceTo walks a controller with valid values to step n.
func advanceTo(t *testing.T, c *Controller, n int) {
	t.Helper()
	for c.Step() < n {
		require.NoError(t, c.GoNext())
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New(nil, nil)

	assert.Equal(t, 1, c.Step())
	assert.Equal(t, 25.0, c.Progress())
	assert.False(t, c.Finalized())
	assert.Len(t, c.Errors(), len(Fields), "every field starts invalid")

	v := c.Values()
	assert.Empty(t, v.ProductName)
	assert.NotNil(t, v.Platforms)
}

func TestNew_ResumesInitialValues(t *testing.T) {
	initial := brand.Profile{
		ProductName: "EcoClean",
		TargetAge:   []string{"18-24", "18-24", "25-34"},
	}
	c := New(&initial, nil)

	assert.Equal(t, "EcoClean", c.Text(ProductName))
	assert.Equal(t, []string{"18-24", "25-34"}, c.Selection(TargetAge), "duplicates dropped")
	assert.Empty(t, c.FieldError(ProductName))
	assert.Empty(t, c.FieldError(TargetAge))

	// Caller's value must not alias controller state.
	initial.TargetAge[0] = "55+"
	assert.Equal(t, []string{"18-24", "25-34"}, c.Selection(TargetAge))
}

func TestGoNext_GatedOnStepValidity(t *testing.T) {
	full := validProfile()

	for n := 1; n <= TotalSteps; n++ {
		for _, f := range Step(n).Fields {
			t.Run(Step(n).Title+"/"+string(f), func(t *testing.T) {
				p := full.Clone()
				c := New(&p, nil)
				advanceTo(t, c, n)

				// Invalidate just this field.
				if f.Multi() {
					c.SetSelection(f, nil)
				} else {
					c.SetField(f, "")
				}

				err := c.GoNext()
				var verrs ValidationErrors
				require.ErrorAs(t, err, &verrs)
				assert.Equal(t, []Field{f}, verrs.Fields())
				assert.Equal(t, n, c.Step(), "step must not change on failure")
			})
		}
	}
}

func TestGoNext_ReportsAllFailingFieldsOfStep(t *testing.T) {
	c := New(nil, nil)

	err := c.GoNext()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []Field{ProductName, ProductDescription}, verrs.Fields())
	assert.Equal(t, "Product name must be at least 2 characters", verrs.Message(ProductName))
	assert.Equal(t, "Please provide a detailed description", verrs.Message(ProductDescription))
}

func TestGoNext_IgnoresOtherStepsFields(t *testing.T) {
	c := New(nil, nil)
	c.SetField(ProductName, "Ok")
	c.SetField(ProductDescription, "0123456789")

	require.NoError(t, c.GoNext(), "later steps being empty must not block step 1")
	assert.Equal(t, 2, c.Step())
}

func TestGoNext_ClampedAtLastStep(t *testing.T) {
	p := validProfile()
	c := New(&p, nil)
	advanceTo(t, c, TotalSteps)

	require.NoError(t, c.GoNext())
	assert.Equal(t, TotalSteps, c.Step())
	assert.Equal(t, 100.0, c.Progress())
}

func TestGoPrevious(t *testing.T) {
	p := validProfile()
	c := New(&p, nil)

	c.GoPrevious()
	assert.Equal(t, 1, c.Step(), "no-op on step 1")

	advanceTo(t, c, 3)

	// Back navigation ignores validity entirely.
	c.SetField(BrandTone, "")
	c.SetSelection(TargetAge, nil)
	c.GoPrevious()
	assert.Equal(t, 2, c.Step())
	c.GoPrevious()
	assert.Equal(t, 1, c.Step())
}

func TestProgress(t *testing.T) {
	p := validProfile()
	c := New(&p, nil)

	want := []float64{25, 50, 75, 100}
	for i, pct := range want {
		assert.Equal(t, i+1, c.Step())
		assert.Equal(t, pct, c.Progress())
		require.NoError(t, c.GoNext())
	}
}

func TestToggle(t *testing.T) {
	c := New(nil, nil)

	c.Toggle(Platforms, "youtube")
	c.Toggle(Platforms, "instagram")
	assert.Equal(t, []string{"youtube", "instagram"}, c.Selection(Platforms))
	assert.Empty(t, c.FieldError(Platforms))

	c.Toggle(Platforms, "youtube")
	assert.Equal(t, []string{"instagram"}, c.Selection(Platforms))

	c.Toggle(Platforms, "instagram")
	assert.Empty(t, c.Selection(Platforms))
	assert.Equal(t, "Select at least one platform", c.FieldError(Platforms))
}

func TestToggle_DoubleToggleIsIdentity(t *testing.T) {
	tests := []struct {
		field Field
		start []string
		value string
	}{
		{TargetAge, nil, "18-24"},
		{TargetAge, []string{"13-17", "55+"}, "55+"},
		{TargetGender, []string{"Female"}, "All"},
		{Platforms, []string{"youtube"}, "instagram"},
	}

	for _, tt := range tests {
		t.Run(string(tt.field)+"/"+tt.value, func(t *testing.T) {
			c := New(nil, nil)
			c.SetSelection(tt.field, tt.start)
			before := c.Selection(tt.field)

			c.Toggle(tt.field, tt.value)
			c.Toggle(tt.field, tt.value)

			assert.ElementsMatch(t, before, c.Selection(tt.field))
		})
	}
}

func TestSetField_MultiSelectToggles(t *testing.T) {
	c := New(nil, nil)

	c.SetField(TargetGender, "All")
	assert.Equal(t, []string{"All"}, c.Selection(TargetGender))
	c.SetField(TargetGender, "All")
	assert.Empty(t, c.Selection(TargetGender))
}

func TestSetField_InvalidValuesStoredAsErrors(t *testing.T) {
	c := New(nil, nil)

	c.SetField(TargetRegion, "antarctica")
	assert.Equal(t, "antarctica", c.Text(TargetRegion))
	assert.Equal(t, "Region is required", c.FieldError(TargetRegion))

	c.Toggle(Platforms, "tiktok")
	assert.Equal(t, []string{"tiktok"}, c.Selection(Platforms))
	assert.Equal(t, "Select at least one platform", c.FieldError(Platforms))

	c.SetField(TargetRegion, "europe")
	assert.Empty(t, c.FieldError(TargetRegion), "errors clear on the next evaluation")
}

func TestProductNameCountsRunes(t *testing.T) {
	c := New(nil, nil)

	// One code point, even though it is two UTF-16 units.
	c.SetField(ProductName, "🚀")
	assert.Equal(t, "Product name must be at least 2 characters", c.FieldError(ProductName))

	c.SetField(ProductName, "é")
	assert.NotEmpty(t, c.FieldError(ProductName))

	c.SetField(ProductName, "🚀🚀")
	assert.Empty(t, c.FieldError(ProductName))
}

func TestSetField_EagerValidation(t *testing.T) {
	c := New(nil, nil)

	c.SetField(ProductName, "E")
	assert.NotEmpty(t, c.FieldError(ProductName))
	c.SetField(ProductName, "Ec")
	assert.Empty(t, c.FieldError(ProductName))

	// Multi-byte runes count once.
	c.SetField(TargetInterests, "café")
	assert.NotEmpty(t, c.FieldError(TargetInterests))
	c.SetField(TargetInterests, "cafés")
	assert.Empty(t, c.FieldError(TargetInterests))
}

func TestSubmit_Success(t *testing.T) {
	var got []brand.Profile
	p := validProfile()
	c := New(&p, func(bp brand.Profile) { got = append(got, bp) })
	advanceTo(t, c, TotalSteps)

	out, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, []string{"instagram", "youtube"}, out.Platforms)
	assert.Equal(t, "macro", out.BudgetLevel)
	require.Len(t, got, 1)
	assert.Equal(t, out, got[0])
	assert.True(t, c.Finalized())

	_, err = c.Submit()
	assert.ErrorIs(t, err, ErrFinalized)
	assert.Len(t, got, 1, "callback fires at most once")
}

func TestSubmit_FinalizedRecordIsImmutable(t *testing.T) {
	p := validProfile()
	c := New(&p, nil)
	advanceTo(t, c, TotalSteps)

	out, err := c.Submit()
	require.NoError(t, err)

	out.Platforms[0] = "tiktok"
	c.SetField(ProductName, "Changed")
	c.Toggle(Platforms, "instagram")
	c.GoPrevious()

	assert.Equal(t, "EcoClean Skincare", c.Values().ProductName)
	assert.Equal(t, []string{"instagram", "youtube"}, c.Values().Platforms)
	assert.Equal(t, TotalSteps, c.Step())
	assert.ErrorIs(t, c.GoNext(), ErrFinalized)
}

func TestSubmit_NotOnFinalStep(t *testing.T) {
	p := validProfile()
	called := false
	c := New(&p, func(brand.Profile) { called = true })

	_, err := c.Submit()
	assert.ErrorIs(t, err, ErrNotFinalStep)
	assert.False(t, called)
	assert.False(t, c.Finalized())
}

func TestSubmit_PartialValidityRejected(t *testing.T) {
	p := validProfile()
	called := false
	c := New(&p, func(brand.Profile) { called = true })
	advanceTo(t, c, TotalSteps)

	// Steps 1-3 valid, step 4 invalid.
	c.SetSelection(Platforms, nil)
	_, err := c.Submit()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []Field{Platforms}, verrs.Fields())
	assert.False(t, called)

	// An earlier step invalidated after passing it also blocks submit.
	c.SetSelection(Platforms, []string{"instagram"})
	c.SetField(ProductDescription, "short")
	_, err = c.Submit()
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []Field{ProductDescription}, verrs.Fields())
	assert.False(t, c.Finalized())
}

func TestScenario_EcoCleanStepOneThenBlockedOnStepTwo(t *testing.T) {
	c := New(nil, nil)
	c.SetField(ProductName, "EcoClean Skincare")
	c.SetField(ProductDescription, "A fully natural skincare line for sensitive skin")

	require.NoError(t, c.GoNext())
	require.Equal(t, 2, c.Step())

	err := c.GoNext()
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []Field{TargetAge, TargetGender, TargetInterests, TargetRegion}, verrs.Fields())
	assert.Equal(t, 2, c.Step())
}

func TestScenario_FullRunPreservesPlatformOrder(t *testing.T) {
	var emitted brand.Profile
	c := New(nil, func(p brand.Profile) { emitted = p })

	c.SetField(ProductName, "EcoClean Skincare")
	c.SetField(ProductDescription, "A fully natural skincare line for sensitive skin")
	require.NoError(t, c.GoNext())

	c.Toggle(TargetAge, "25-34")
	c.Toggle(TargetGender, "Female")
	c.SetField(TargetInterests, "clean beauty")
	c.SetField(TargetRegion, "europe")
	require.NoError(t, c.GoNext())

	c.SetField(BrandTone, "luxury")
	c.SetField(CampaignGoal, "sales")
	require.NoError(t, c.GoNext())

	c.SetField(Platforms, "instagram")
	c.SetField(Platforms, "youtube")
	c.SetField(BudgetLevel, "macro")

	out, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, []string{"instagram", "youtube"}, out.Platforms)
	assert.Equal(t, out, emitted)
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(validProfile()))

	p := validProfile()
	p.BudgetLevel = "celebrity"
	p.TargetGender = []string{"Female", "unknown"}
	errs := Validate(p)
	assert.Equal(t, []Field{TargetGender, BudgetLevel}, errs.Fields())
	assert.Contains(t, errs.Error(), "budgetLevel: Please select a budget level")
}

func TestParseField(t *testing.T) {
	f, ok := ParseField("campaignGoal")
	require.True(t, ok)
	assert.Equal(t, CampaignGoal, f)
	assert.Equal(t, 3, StepOf(f))

	_, ok = ParseField("brandWebsite")
	assert.False(t, ok)
}

func TestResume(t *testing.T) {
	c := Resume(validProfile(), 3, nil)
	assert.Equal(t, 3, c.Step())

	partial := brand.Profile{ProductName: "EcoClean", ProductDescription: "Natural skincare for everyone"}
	c = Resume(partial, 4, nil)
	assert.Equal(t, 2, c.Step(), "stops at the first invalid step")

	c = Resume(validProfile(), 99, nil)
	assert.Equal(t, TotalSteps, c.Step())

	c = Resume(brand.Profile{}, 0, nil)
	assert.Equal(t, 1, c.Step())
}

func TestDisplay(t *testing.T) {
	p := validProfile()
	assert.Equal(t, "Friendly (Warm and approachable)", Display(p, BrandTone))
	assert.Equal(t, "North America", Display(p, TargetRegion))
	assert.Equal(t, "Instagram, YouTube", Display(p, Platforms))
	assert.Equal(t, p.ProductName, Display(p, ProductName))

	assert.Equal(t, "-", Display(brand.Profile{}, Platforms))
	assert.Equal(t, "-", Display(brand.Profile{ProductName: "  "}, ProductName))
	assert.Equal(t, "celebrity", Display(brand.Profile{BudgetLevel: "celebrity"}, BudgetLevel))
}
