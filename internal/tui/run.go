package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redactyl/piiredact/internal/tabular"
)

// Run opens the browser over the rows of an output file.
func Run(results []tabular.Result, source string) error {
	m := NewModel(results, source, LoadPrefs())
	m.persist = true
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
