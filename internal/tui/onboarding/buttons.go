package onboarding

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/icyhq/icy/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal ButtonState = iota
	ButtonDisabled
	ButtonFocused
)

// Button is a single entry of a button bar.
type Button struct {
	Label string
	State ButtonState
}

// renderButtons draws buttons centered in width.
func renderButtons(width int, buttons ...Button) string {
	if len(buttons) == 0 {
		return ""
	}
	s := theme.Current().S()

	rendered := make([]string, 0, len(buttons))
	for _, btn := range buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, s.ButtonDisabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, s.ButtonFocused.Render(btn.Label))
		default:
			rendered = append(rendered, s.ButtonNormal.Render(btn.Label))
		}
	}
	return lipgloss.Place(width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// navButtons returns Back/Next for a step: Cancel replaces Back on the first
// step, Submit replaces Next on the last, and forward is disabled while the
// step has errors.
func navButtons(step, total int, forwardEnabled bool) []Button {
	back := Button{Label: "← Back"}
	if step == 1 {
		back.Label = "Cancel"
	}

	forward := Button{Label: "Next →"}
	if step == total {
		forward.Label = "Submit"
	}
	if !forwardEnabled {
		forward.State = ButtonDisabled
	}
	return []Button{back, forward}
}
