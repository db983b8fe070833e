package onboarding

import (
	"fmt"
	"math"
	"strings"

	"github.com/icyhq/icy/internal/tui/theme"
)

// renderProgress draws a width-cell bar filled to percent, followed by the
// percentage.
func renderProgress(percent float64, width int) string {
	s := theme.Current().S()
	width = max(width, 1)
	filled := int(math.Round(min(max(percent, 0), 100) / 100 * float64(width)))

	return s.ProgressFill.Render(strings.Repeat("█", filled)) +
		s.ProgressEmpty.Render(strings.Repeat("░", width-filled)) +
		" " + s.ProgressLabel.Render(fmt.Sprintf("%3.0f%%", percent))
}
