package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI application
func Run(cfg Config, backend Backend) error {
	model := NewModel(cfg, backend)

	if cfg.Watch {
		if cfg.DataPath == "" {
			return fmt.Errorf("watch needs a data file")
		}
		w, err := newWatcher(cfg.DataPath)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", cfg.DataPath, err)
		}
		defer w.Close()
		model.watcher = w
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
