package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded training run.
type Run struct {
	ID          string         `json:"id"`
	StartedAt   time.Time      `json:"started_at"`
	Source      string         `json:"source"`
	ModelType   string         `json:"model_type"`
	Rows        int            `json:"rows"`
	Features    []string       `json:"features,omitempty"`
	Classes     []string       `json:"classes,omitempty"`
	LabelCounts map[string]int `json:"label_counts,omitempty"`
	Accuracy    float64        `json:"accuracy"`
	Duration    time.Duration  `json:"duration"`
	RSSBytes    uint64         `json:"rss_bytes,omitempty"`
	CPUPercent  float64        `json:"cpu_percent,omitempty"`
	Persisted   bool           `json:"persisted"`
	Error       string         `json:"error,omitempty"`
}

// Data represents the persisted history file.
type Data struct {
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
	Runs      []*Run    `json:"runs"`
}

const (
	currentVersion  = 1
	historyFileName = "history.json"
)

// History keeps the most recent training runs on disk.
type History struct {
	dataDir string
	limit   int
	logger  *slog.Logger

	mu   sync.RWMutex
	data *Data
}

// New creates a new History. A limit below 1 keeps every run.
func New(dataDir string, limit int, logger *slog.Logger) *History {
	return &History{
		dataDir: dataDir,
		limit:   limit,
		logger:  logger,
		data:    newEmptyData(),
	}
}

func newEmptyData() *Data {
	return &Data{
		Version:   currentVersion,
		UpdatedAt: time.Now(),
		Runs:      make([]*Run, 0),
	}
}

// Path returns the history file path.
func (h *History) Path() string {
	return filepath.Join(h.dataDir, historyFileName)
}

// Load loads runs from disk. If the file doesn't exist, history starts empty.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	filePath := h.Path()

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			h.logger.Debug("no existing history file, starting fresh", "path", filePath)
			h.data = newEmptyData()
			return nil
		}
		return err
	}
	defer file.Close()

	var data Data
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		h.logger.Warn("failed to decode history file, starting fresh", "error", err)
		h.data = newEmptyData()
		return nil
	}

	// Validate version
	if data.Version > currentVersion {
		h.logger.Warn("history file version is newer than supported, starting fresh",
			"file_version", data.Version,
			"supported_version", currentVersion,
		)
		h.data = newEmptyData()
		return nil
	}

	if data.Runs == nil {
		data.Runs = make([]*Run, 0)
	}

	h.data = &data
	h.logger.Debug("loaded history from disk",
		"path", filePath,
		"runs", len(data.Runs),
	)

	return nil
}

// Append records a run, trims history to the limit and saves it. A run
// without an ID gets a fresh one.
func (h *History) Append(run *Run) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	h.data.Runs = append(h.data.Runs, run)
	if h.limit > 0 && len(h.data.Runs) > h.limit {
		h.data.Runs = h.data.Runs[len(h.data.Runs)-h.limit:]
	}

	return h.saveLocked()
}

func (h *History) saveLocked() error {
	h.data.UpdatedAt = time.Now()

	err := writeAtomic(h.dataDir, historyFileName, func(w io.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(h.data)
	})
	if err != nil {
		return err
	}

	h.logger.Debug("saved history to disk", "path", h.Path())
	return nil
}

// Runs returns a copy of the recorded runs, oldest first.
func (h *History) Runs() []Run {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]Run, len(h.data.Runs))
	for i, r := range h.data.Runs {
		result[i] = *r
	}
	return result
}

// Len returns the number of recorded runs.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.data.Runs)
}

// writeAtomic writes dir/name through a temp file and a rename so readers
// never see a partial file.
func writeAtomic(dir, name string, write func(w io.Writer) error) error {
	// Ensure data directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	filePath := filepath.Join(dir, name)
	tempPath := filePath + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if err := write(file); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, filePath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
