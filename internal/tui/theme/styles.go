package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	ModalContainer lipgloss.Style
	ModalTitle     lipgloss.Style
	Subtitle       lipgloss.Style

	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	FieldError   lipgloss.Style
	Banner       lipgloss.Style

	Option         lipgloss.Style
	OptionCursor   lipgloss.Style
	OptionSelected lipgloss.Style
	OptionDesc     lipgloss.Style

	ProgressFill  lipgloss.Style
	ProgressEmpty lipgloss.Style
	ProgressLabel lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	Success lipgloss.Style
	Spinner lipgloss.Style
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	c := lipgloss.Color
	button := lipgloss.NewStyle().Padding(0, 2).MarginLeft(1).MarginRight(1)

	return &Styles{
		ModalContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Secondary)).
			Background(c(t.BgBase)).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),
		Subtitle:   lipgloss.NewStyle().Foreground(c(t.FgSubtle)),

		Label:        lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
		LabelFocused: lipgloss.NewStyle().Foreground(c(t.Secondary)).Bold(true),
		FieldError:   lipgloss.NewStyle().Foreground(c(t.Error)),
		Banner:       lipgloss.NewStyle().Foreground(c(t.Warning)),

		Option:         lipgloss.NewStyle().Foreground(c(t.FgBase)),
		OptionCursor:   lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),
		OptionSelected: lipgloss.NewStyle().Foreground(c(t.Success)),
		OptionDesc:     lipgloss.NewStyle().Foreground(c(t.FgMuted)),

		ProgressFill:  lipgloss.NewStyle().Foreground(c(t.Primary)),
		ProgressEmpty: lipgloss.NewStyle().Foreground(c(t.BgSurface1)),
		ProgressLabel: lipgloss.NewStyle().Foreground(c(t.FgSubtle)),

		ButtonNormal:   button.Foreground(c(t.FgBase)).Background(c(t.BgSurface0)),
		ButtonDisabled: button.Foreground(c(t.FgMuted)).Background(c(t.BgMantle)),
		ButtonFocused:  button.Foreground(c(t.BgBase)).Background(c(t.Secondary)).Bold(true),

		HintKey:       lipgloss.NewStyle().Foreground(c(t.FgBright)).Bold(true),
		HintDesc:      lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
		HintSeparator: lipgloss.NewStyle().Foreground(c(t.BgSurface2)),

		Success: lipgloss.NewStyle().Foreground(c(t.Success)).Bold(true),
		Spinner: lipgloss.NewStyle().Foreground(c(t.Primary)),
	}
}

// HintBar renders key/description pairs as "key desc • key desc".
// An odd number of arguments renders nothing.
func (s *Styles) HintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	var result string
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			result += " " + s.HintSeparator.Render("•") + " "
		}
		result += s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1])
	}
	return result
}
