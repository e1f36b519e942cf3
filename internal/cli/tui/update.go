package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/session"
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		sampleProcess(m.backend),
		tick(m.config.RefreshInterval),
	}
	if m.config.DataPath != "" {
		cmds = append(cmds, loadData(m.backend, m.config.DataPath))
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher, m.config.DataPath))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		reload := m.finish()
		if msg.err != nil {
			m.logError(session.Message(msg.err))
			return m, reload
		}
		m.source = msg.source
		m.rows = msg.rows
		m.columns = msg.columns
		m.dist = nil
		m.logf(fmt.Sprintf("Loaded %s: %d rows, %d columns", msg.source, msg.rows, msg.columns))
		return m, reload

	case trainedMsg:
		reload := m.finish()
		if msg.err != nil {
			m.logError(session.Message(msg.err))
			return m, tea.Batch(sampleProcess(m.backend), reload)
		}
		r := msg.report
		m.logf(fmt.Sprintf("Model trained: %s on %d rows, %d features, accuracy %.1f%% in %s",
			r.ModelType, r.Rows, len(r.Features), r.Accuracy*100, r.Duration.Round(time.Millisecond)))
		if r.PersistErr != nil {
			m.logError(session.Message(r.PersistErr))
		} else if r.Persisted {
			m.logf("Model saved")
		}
		return m, tea.Batch(sampleProcess(m.backend), reload)

	case predictedMsg:
		reload := m.finish()
		if msg.err != nil {
			m.logError(session.Message(msg.err))
			return m, reload
		}
		m.logPredictions(msg)
		return m, reload

	case distributionMsg:
		reload := m.finish()
		if msg.err != nil {
			m.logError(session.Message(msg.err))
			return m, reload
		}
		m.dist = msg.dist
		m.logf(fmt.Sprintf("%s: %d rows", msg.dist.Title(), msg.dist.Total))
		return m, reload

	case processMsg:
		m.proc = msg.state
		return m, nil

	case tickMsg:
		return m, tea.Batch(
			sampleProcess(m.backend),
			tick(m.config.RefreshInterval),
		)

	case fileChangedMsg:
		if m.busy != "" {
			m.logf(fmt.Sprintf("%s changed, reloading after %s", msg.path, m.busy))
			m.pendingReload = msg.path
			return m, waitForChange(m.watcher, msg.path)
		}
		m.logf(fmt.Sprintf("%s changed, reloading", msg.path))
		m.busy = "loading"
		return m, tea.Batch(
			loadData(m.backend, msg.path),
			waitForChange(m.watcher, msg.path),
		)

	case watchErrMsg:
		m.logError(fmt.Sprintf("watch: %v", msg.err))
		return m, waitForChange(m.watcher, m.config.DataPath)
	}

	return m, nil
}

// finish marks the running action done and starts a reload queued while it ran.
func (m *Model) finish() tea.Cmd {
	m.busy = ""
	path := m.pendingReload
	if path == "" {
		return nil
	}
	m.pendingReload = ""
	m.busy = "loading"
	return loadData(m.backend, path)
}

func (m *Model) logPredictions(msg predictedMsg) {
	counts := msg.predictions.Counts()
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = fmt.Sprintf("%s %d", label, counts[label])
	}
	m.logf(fmt.Sprintf("Predicted %d rows: %s", len(msg.predictions), strings.Join(parts, ", ")))

	for i, label := range msg.predictions {
		if i == maxPredictionLines {
			m.logf(fmt.Sprintf("  ... %d more", len(msg.predictions)-i))
			break
		}
		m.logf(fmt.Sprintf("  row %d: %s", i+1, label))
	}
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.logOffset < len(m.entries)-1 {
			m.logOffset++
		}
		return m, nil

	case "down", "j":
		if m.logOffset > 0 {
			m.logOffset--
		}
		return m, nil

	case "c":
		m.entries = nil
		m.logOffset = 0
		m.dist = nil
		return m, nil
	}

	if m.busy != "" {
		return m, nil
	}

	switch msg.String() {
	case "u":
		m.busy = "loading"
		return m, loadData(m.backend, m.config.DataPath)

	case "t":
		m.busy = "training"
		return m, train(m.backend)

	case "p":
		m.busy = "predicting"
		return m, predict(m.backend)

	case "v":
		m.busy = "summarizing"
		return m, summarize(m.backend)
	}

	return m, nil
}
