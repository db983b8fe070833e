package wizard

import (
	"strings"

	"github.com/icyhq/icy/internal/brand"
)

// Field names one value of the brand profile. The string form is the JSON key.
type Field string

const (
	ProductName        Field = "productName"
	ProductDescription Field = "productDescription"
	TargetAge          Field = "targetAge"
	TargetGender       Field = "targetGender"
	TargetInterests    Field = "targetInterests"
	TargetRegion       Field = "targetRegion"
	BrandTone          Field = "brandTone"
	CampaignGoal       Field = "campaignGoal"
	Platforms          Field = "platforms"
	BudgetLevel        Field = "budgetLevel"
)

// Kind describes how a field is edited.
type Kind int

const (
	KindText   Kind = iota // free text
	KindChoice             // exactly one catalog value
	KindMulti              // toggle set of catalog values
)

// Fields lists every field in step order.
var Fields = []Field{
	ProductName, ProductDescription,
	TargetAge, TargetGender, TargetInterests, TargetRegion,
	BrandTone, CampaignGoal,
	Platforms, BudgetLevel,
}

// ParseField resolves a field by its JSON name.
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// Kind returns how the field is edited.
func (f Field) Kind() Kind {
	switch f {
	case TargetAge, TargetGender, Platforms:
		return KindMulti
	case TargetRegion, BrandTone, CampaignGoal, BudgetLevel:
		return KindChoice
	default:
		return KindText
	}
}

// Multi reports whether the field uses toggle semantics.
func (f Field) Multi() bool {
	return f.Kind() == KindMulti
}

// Catalog returns the options for enumerated fields, nil for text fields.
func (f Field) Catalog() brand.Catalog {
	switch f {
	case TargetAge:
		return brand.AgeGroups
	case TargetGender:
		return brand.Genders
	case TargetRegion:
		return brand.Regions
	case BrandTone:
		return brand.Tones
	case CampaignGoal:
		return brand.Goals
	case Platforms:
		return brand.Platforms
	case BudgetLevel:
		return brand.BudgetLevels
	}
	return nil
}

// Label is the human-readable field name shown next to inputs.
func (f Field) Label() string {
	switch f {
	case ProductName:
		return "Product Name"
	case ProductDescription:
		return "Product Description"
	case TargetAge:
		return "Age Groups"
	case TargetGender:
		return "Gender"
	case TargetInterests:
		return "Interests"
	case TargetRegion:
		return "Region"
	case BrandTone:
		return "Brand Tone"
	case CampaignGoal:
		return "Campaign Goal"
	case Platforms:
		return "Platforms"
	case BudgetLevel:
		return "Budget Level"
	}
	return string(f)
}

// Display renders the value of f in p for humans: catalog labels for
// enumerated fields, the raw text otherwise, "-" when empty.
func Display(p brand.Profile, f Field) string {
	if f.Multi() {
		sel := *selection(&p, f)
		if len(sel) == 0 {
			return "-"
		}
		return strings.Join(f.Catalog().Labels(sel), ", ")
	}
	v := text(&p, f)
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	if f.Kind() == KindChoice {
		if o, ok := f.Catalog().Option(v); ok && o.Description != "" {
			return o.Label + " (" + o.Description + ")"
		}
		return f.Catalog().Label(v)
	}
	return v
}

// text returns the scalar value of f in p.
func text(p *brand.Profile, f Field) string {
	switch f {
	case ProductName:
		return p.ProductName
	case ProductDescription:
		return p.ProductDescription
	case TargetInterests:
		return p.TargetInterests
	case TargetRegion:
		return p.TargetRegion
	case BrandTone:
		return p.BrandTone
	case CampaignGoal:
		return p.CampaignGoal
	case BudgetLevel:
		return p.BudgetLevel
	}
	return ""
}

func setText(p *brand.Profile, f Field, v string) {
	switch f {
	case ProductName:
		p.ProductName = v
	case ProductDescription:
		p.ProductDescription = v
	case TargetInterests:
		p.TargetInterests = v
	case TargetRegion:
		p.TargetRegion = v
	case BrandTone:
		p.BrandTone = v
	case CampaignGoal:
		p.CampaignGoal = v
	case BudgetLevel:
		p.BudgetLevel = v
	}
}

// selection returns a pointer to the slice backing a multi-select field.
func selection(p *brand.Profile, f Field) *[]string {
	switch f {
	case TargetAge:
		return &p.TargetAge
	case TargetGender:
		return &p.TargetGender
	case Platforms:
		return &p.Platforms
	}
	return nil
}
