package onboarding

import (
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/editor"
	"github.com/icyhq/icy/internal/logger"
)

// descriptionEditedMsg carries the description back from $EDITOR.
type descriptionEditedMsg struct {
	content string
}

// editorFailedMsg reports that the editor could not be used.
type editorFailedMsg struct {
	err error
}

// openEditor writes the description to a temp file and hands it to the
// user's $EDITOR.
func openEditor(content string) tea.Cmd {
	tmp, err := os.CreateTemp("", "icy_description_*.md")
	if err != nil {
		return func() tea.Msg { return editorFailedMsg{err} }
	}
	path := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(path)
		return func() tea.Msg { return editorFailedMsg{err} }
	}
	_ = tmp.Close()

	cmd, err := editor.Command("icy", path)
	if err != nil {
		_ = os.Remove(path)
		return func() tea.Msg { return editorFailedMsg{err} }
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(path) }()
		if err != nil {
			logger.Warn("onboarding: editor exited with error: %v", err)
			return editorFailedMsg{err}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return editorFailedMsg{err}
		}
		return descriptionEditedMsg{content: strings.TrimRight(string(data), "\n")}
	})
}
