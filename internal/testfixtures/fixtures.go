// Package testfixtures holds shared brand profiles and rendering helpers
// for tests across packages.
package testfixtures

import (
	"time"

	"github.com/icyhq/icy/internal/brand"
)

// Fixed test values for stable assertions.
const (
	FixedKey = "test-brand"
)

var (
	FixedTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
)

// EcoClean returns a fully valid profile.
func EcoClean() brand.Profile {
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

// Rebranded returns EcoClean after a second pass through the wizard, used
// for revision diffs.
func Rebranded() brand.Profile {
	p := EcoClean()
	p.ProductName = "EcoClean Pro"
	p.BrandTone = "luxury"
	p.Platforms = []string{"youtube"}
	p.BudgetLevel = "mid"
	return p
}

// StepOneOnly returns a profile valid for the first step only.
func StepOneOnly() brand.Profile {
	return brand.Profile{
		ProductName:        "EcoClean",
		ProductDescription: "Natural skincare for everyone",
	}
}
