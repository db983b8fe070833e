package onboarding

import (
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/icyhq/icy/internal/tui/theme"
	"github.com/icyhq/icy/internal/wizard"
)

var placeholders = map[wizard.Field]string{
	wizard.ProductName:        "e.g., EcoClean Skincare",
	wizard.ProductDescription: "Describe your product, its benefits, and what makes it unique...",
	wizard.TargetInterests:    "e.g., skincare, sustainability, wellness, beauty, lifestyle...",
}

func newTextInput(f wizard.Field, value string) textinput.Model {
	t := theme.Current()
	in := textinput.New()
	in.Placeholder = placeholders[f]
	in.Prompt = ""
	in.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	in.SetWidth(60)
	in.SetValue(value)
	return in
}

func newDescriptionInput(value string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholders[wizard.ProductDescription]
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(4)
	ta.SetValue(value)
	return ta
}
