package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/icyhq/icy/internal/brand"
	"github.com/icyhq/icy/internal/store"
	"github.com/icyhq/icy/internal/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	md := Markdown(brand.DefaultKey, testfixtures.EcoClean())

	assert.True(t, strings.HasPrefix(md, "# EcoClean Skincare\n"))
	for _, want := range []string{
		"## 1. Product Info",
		"## 4. Platform & Budget",
		"- **Age Groups:** 18-24, 25-34",
		"- **Region:** North America",
		"- **Brand Tone:** Friendly (Warm and approachable)",
		"- **Campaign Goal:** Brand Awareness",
		"- **Platforms:** Instagram, YouTube",
		"- **Budget Level:** Macro Influencers (1M+ followers)",
	} {
		assert.Contains(t, md, want)
	}
	assert.NotContains(t, md, "## Incomplete")
}

func TestMarkdownIncomplete(t *testing.T) {
	md := Markdown(brand.DefaultKey, testfixtures.StepOneOnly())

	assert.Contains(t, md, "## Incomplete")
	assert.Contains(t, md, "- Platforms: Select at least one platform")
	assert.Contains(t, md, "- **Platforms:** -")
}

func TestRender(t *testing.T) {
	raw := Render(Markdown(brand.DefaultKey, testfixtures.EcoClean()), 80)
	assert.False(t, strings.HasSuffix(raw, "\n"))

	out := ansi.Strip(raw)
	assert.Contains(t, out, "EcoClean Skincare")
	assert.Contains(t, out, "Instagram, YouTube")
}

func TestChanges(t *testing.T) {
	_, ok, err := Changes(nil)
	require.NoError(t, err)
	assert.False(t, ok)

	revs := []store.Revision{
		{Number: 2, SavedAt: testfixtures.FixedTime.Add(time.Hour), Profile: testfixtures.Rebranded()},
		{Number: 1, SavedAt: testfixtures.FixedTime, Profile: testfixtures.EcoClean()},
	}
	diff, ok, err := Changes(revs)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Contains(t, diff, "--- revision 1 (2024-01-15 10:30)")
	assert.Contains(t, diff, "+++ revision 2 (2024-01-15 11:30)")
	assert.Contains(t, diff, "-productName: EcoClean Skincare")
	assert.Contains(t, diff, "+productName: EcoClean Pro")
	assert.Contains(t, diff, "+brandTone: luxury")
	assert.NotContains(t, diff, "-targetRegion")
}
