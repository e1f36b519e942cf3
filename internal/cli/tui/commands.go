package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/maintenance"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/monitor"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/viz"
)

// Messages for tea.Cmd
type loadedMsg struct {
	source  string
	rows    int
	columns int
	err     error
}

type trainedMsg struct {
	report *maintenance.TrainReport
	err    error
}

type predictedMsg struct {
	predictions maintenance.Predictions
	err         error
}

type distributionMsg struct {
	dist *viz.Distribution
	err  error
}

type processMsg struct {
	state *monitor.ProcessState
}

type tickMsg time.Time

// loadData loads the dataset file as tea.Cmd
func loadData(b Backend, path string) tea.Cmd {
	return func() tea.Msg {
		ds, err := b.Load(path)
		if err != nil {
			return loadedMsg{source: path, err: err}
		}
		return loadedMsg{source: path, rows: ds.Len(), columns: ds.Width()}
	}
}

func train(b Backend) tea.Cmd {
	return func() tea.Msg {
		report, err := b.Train()
		return trainedMsg{report: report, err: err}
	}
}

func predict(b Backend) tea.Cmd {
	return func() tea.Msg {
		predictions, err := b.Predict()
		return predictedMsg{predictions: predictions, err: err}
	}
}

func summarize(b Backend) tea.Cmd {
	return func() tea.Msg {
		d, err := b.Distribution()
		return distributionMsg{dist: d, err: err}
	}
}

// sampleProcess samples resource usage; a failed sample is dropped.
func sampleProcess(b Backend) tea.Cmd {
	return func() tea.Msg {
		state, err := b.Snapshot()
		if err != nil {
			return nil
		}
		return processMsg{state: state}
	}
}

// tick creates a periodic tick command
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
