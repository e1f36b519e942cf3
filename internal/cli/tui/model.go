package tui

import (
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/dataset"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/maintenance"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/monitor"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/viz"
)

// Backend runs the workflow operations behind the TUI actions.
type Backend interface {
	Load(path string) (*dataset.Dataset, error)
	Train(opts ...maintenance.TrainOption) (*maintenance.TrainReport, error)
	Predict() (maintenance.Predictions, error)
	Distribution() (*viz.Distribution, error)
	State() maintenance.State
	Snapshot() (*monitor.ProcessState, error)
}

// Config holds TUI configuration
type Config struct {
	// DataPath is loaded on start and on every upload.
	DataPath        string
	Watch           bool
	RefreshInterval time.Duration
}

const (
	maxLogEntries      = 500
	maxPredictionLines = 50
	distributionWidth  = 30
)

// logEntry is one line of the results log.
type logEntry struct {
	at   time.Time
	text string
	err  bool
}

// Model represents the TUI state
type Model struct {
	config  Config
	backend Backend
	watcher *fsnotify.Watcher

	// Workflow state
	source  string
	rows    int
	columns int
	dist    *viz.Distribution
	proc    *monitor.ProcessState
	entries []logEntry

	// UI state
	width  int
	height int
	busy   string

	// File change seen while busy, reloaded when the action finishes
	pendingReload string

	// Log scroll position, in lines from the bottom
	logOffset int
}

// NewModel creates a new TUI model
func NewModel(cfg Config, backend Backend) Model {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 2 * time.Second
	}
	return Model{
		config:  cfg,
		backend: backend,
	}
}

func (m *Model) logf(text string) {
	m.appendEntry(logEntry{at: time.Now(), text: text})
}

func (m *Model) logError(text string) {
	m.appendEntry(logEntry{at: time.Now(), text: text, err: true})
}

func (m *Model) appendEntry(e logEntry) {
	m.entries = append(m.entries, e)
	if len(m.entries) > maxLogEntries {
		m.entries = m.entries[len(m.entries)-maxLogEntries:]
	}
	m.logOffset = 0
}
