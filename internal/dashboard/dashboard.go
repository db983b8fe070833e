// Package dashboard summarizes a saved brand profile as markdown and diffs
// its revisions.
package dashboard

import (
	"fmt"
	"strings"

	"charm.land/glamour/v2"
	"github.com/aymanbagabas/go-udiff"
	"github.com/icyhq/icy/internal/brand"
	"github.com/icyhq/icy/internal/store"
	"github.com/icyhq/icy/internal/wizard"
	"gopkg.in/yaml.v3"
)

// maxWidth caps rendering width for readability.
const maxWidth = 120

// NoProfileMessage is shown when nothing has been saved under the key.
const NoProfileMessage = "No brand profile saved yet. Run `icy onboard` to create one."

// Markdown builds the dashboard document for p, one section per wizard step.
// Enumerated values are shown by their catalog labels.
func Markdown(key string, p brand.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", orDash(p.ProductName))
	fmt.Fprintf(&b, "_Saved under `%s`_\n\n", key)

	for _, step := range wizard.Steps() {
		fmt.Fprintf(&b, "## %d. %s\n\n", step.Number, step.Title)
		for _, f := range step.Fields {
			if f == wizard.ProductName {
				continue
			}
			fmt.Fprintf(&b, "- **%s:** %s\n", f.Label(), wizard.Display(p, f))
		}
		b.WriteString("\n")
	}

	if errs := wizard.Validate(p); len(errs) > 0 {
		b.WriteString("## Incomplete\n\n")
		for _, e := range errs {
			fmt.Fprintf(&b, "- %s: %s\n", e.Field.Label(), e.Message)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// Render renders markdown for a terminal of the given width. It falls back
// to the raw markdown if glamour fails.
func Render(markdown string, width int) string {
	if width <= 0 || width > maxWidth {
		width = maxWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	rendered, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimSuffix(rendered, "\n")
}

// Changes returns a unified diff between the two newest revisions in revs
// (newest first), compared as YAML. ok is false when there is nothing to
// compare.
func Changes(revs []store.Revision) (diff string, ok bool, err error) {
	if len(revs) < 2 {
		return "", false, nil
	}
	newer, older := revs[0], revs[1]

	a, err := yaml.Marshal(older.Profile)
	if err != nil {
		return "", false, fmt.Errorf("marshaling revision %d: %w", older.Number, err)
	}
	b, err := yaml.Marshal(newer.Profile)
	if err != nil {
		return "", false, fmt.Errorf("marshaling revision %d: %w", newer.Number, err)
	}

	oldLabel := fmt.Sprintf("revision %d (%s)", older.Number, older.SavedAt.Format("2006-01-02 15:04"))
	newLabel := fmt.Sprintf("revision %d (%s)", newer.Number, newer.SavedAt.Format("2006-01-02 15:04"))
	return udiff.Unified(oldLabel, newLabel, string(a), string(b)), true, nil
}
