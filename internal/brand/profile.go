// Package brand holds the brand profile record produced by onboarding and
// the option catalogs for its enumerated fields.
package brand

import "slices"

// DefaultKey is the fixed session identifier a finalized profile is stored under.
const DefaultKey = "icyBrandData"

// Profile describes a brand's targeting and campaign preferences.
// The JSON shape matches the blob the web onboarding persisted.
type Profile struct {
	ProductName        string   `json:"productName" yaml:"productName"`
	ProductDescription string   `json:"productDescription" yaml:"productDescription"`
	TargetAge          []string `json:"targetAge" yaml:"targetAge"`
	TargetGender       []string `json:"targetGender" yaml:"targetGender"`
	TargetInterests    string   `json:"targetInterests" yaml:"targetInterests"`
	TargetRegion       string   `json:"targetRegion" yaml:"targetRegion"`
	BrandTone          string   `json:"brandTone" yaml:"brandTone"`
	CampaignGoal       string   `json:"campaignGoal" yaml:"campaignGoal"`
	Platforms          []string `json:"platforms" yaml:"platforms"`
	BudgetLevel        string   `json:"budgetLevel" yaml:"budgetLevel"`
}

// Clone returns a deep copy. Nil selections come back as empty slices so
// the JSON blob always carries arrays.
func (p Profile) Clone() Profile {
	out := p
	out.TargetAge = cloneSelection(p.TargetAge)
	out.TargetGender = cloneSelection(p.TargetGender)
	out.Platforms = cloneSelection(p.Platforms)
	return out
}

func cloneSelection(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
