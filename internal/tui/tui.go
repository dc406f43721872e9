package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"nota-cli/internal/api"
	"nota-cli/internal/session"
)

func Run(c *api.Client, sess *session.Session) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()
	m := newAppModel(c, sess)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
