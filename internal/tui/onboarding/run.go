package onboarding

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
)

// Run starts a standalone BubbleTea program for onboarding and blocks until
// the user completes or cancels it.
func Run(opts Options) (Result, error) {
	final, err := tea.NewProgram(New(opts)).Run()
	if err != nil {
		return Result{}, fmt.Errorf("onboarding failed: %w", err)
	}

	m, ok := final.(*Model)
	if !ok {
		return Result{}, fmt.Errorf("unexpected model type %T", final)
	}
	return m.Result(), nil
}
