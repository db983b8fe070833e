package discovery

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/icyhq/icy/internal/brand"
)

// Run plays the animation for p and blocks until it finishes or the user
// quits. It reports whether the animation ran to completion.
func Run(p brand.Profile, speed float64) (bool, error) {
	final, err := tea.NewProgram(New(p, speed)).Run()
	if err != nil {
		return false, fmt.Errorf("discovery failed: %w", err)
	}
	m, ok := final.(*Model)
	if !ok {
		return false, fmt.Errorf("unexpected model type %T", final)
	}
	return !m.Skipped(), nil
}
