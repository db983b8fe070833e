package wizard

import (
	"unicode/utf8"

	"github.com/icyhq/icy/internal/brand"
)

// rule is one declarative field constraint.
type rule struct {
	valid   func(p *brand.Profile) bool
	message string
}

var rules = map[Field]rule{
	ProductName:        {minLength(ProductName, 2), "Product name must be at least 2 characters"},
	ProductDescription: {minLength(ProductDescription, 10), "Please provide a detailed description"},
	TargetAge:          {nonEmptySet(TargetAge), "Select at least one age group"},
	TargetGender:       {nonEmptySet(TargetGender), "Select at least one gender"},
	TargetInterests:    {minLength(TargetInterests, 5), "Please describe target interests"},
	TargetRegion:       {oneOf(TargetRegion), "Region is required"},
	BrandTone:          {oneOf(BrandTone), "Please select a brand tone"},
	CampaignGoal:       {oneOf(CampaignGoal), "Please select a campaign goal"},
	Platforms:          {nonEmptySet(Platforms), "Select at least one platform"},
	BudgetLevel:        {oneOf(BudgetLevel), "Please select a budget level"},
}

// minLength counts runes, not bytes or UTF-16 units.
func minLength(f Field, n int) func(p *brand.Profile) bool {
	return func(p *brand.Profile) bool {
		return utf8.RuneCountInString(text(p, f)) >= n
	}
}

// nonEmptySet requires at least one selection and only catalog members.
func nonEmptySet(f Field) func(p *brand.Profile) bool {
	catalog := f.Catalog()
	return func(p *brand.Profile) bool {
		values := *selection(p, f)
		if len(values) == 0 {
			return false
		}
		for _, v := range values {
			if !catalog.Has(v) {
				return false
			}
		}
		return true
	}
}

func oneOf(f Field) func(p *brand.Profile) bool {
	catalog := f.Catalog()
	return func(p *brand.Profile) bool {
		return catalog.Has(text(p, f))
	}
}

// check evaluates the rule for f, returning the message or "".
func check(p *brand.Profile, f Field) string {
	r, ok := rules[f]
	if !ok || r.valid(p) {
		return ""
	}
	return r.message
}

// Validate checks every field of p and returns the failures in step order.
// A nil result means the profile is complete.
func Validate(p brand.Profile) ValidationErrors {
	var errs ValidationErrors
	for _, f := range Fields {
		if msg := check(&p, f); msg != "" {
			errs = append(errs, FieldValidationError{Field: f, Message: msg})
		}
	}
	return errs
}
