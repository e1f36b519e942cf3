// Package session ties the dataset holder, the maintenance workflow and the
// on-disk artifacts together for the CLI and the TUI.
package session

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/classifier"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/config"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/dataset"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/errs"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/maintenance"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/monitor"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/storage"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/viz"
)

// Sampler reports resource usage of the running process.
type Sampler interface {
	Snapshot() (*monitor.ProcessState, error)
}

// Deps are the collaborators of a Session. Zero values are filled in by New.
type Deps struct {
	Logger *slog.Logger
	// Monitor defaults to a ProcessMonitor for this process.
	Monitor Sampler
}

// Session serializes every operation on one dataset and one workflow.
type Session struct {
	cfg      *config.Config
	logger   *slog.Logger
	holder   *dataset.Holder
	workflow *maintenance.Workflow
	store    *storage.ArtifactStore
	history  *storage.History
	monitor  Sampler

	mu sync.Mutex
}

// New wires a session from configuration. With persistence disabled models
// live in memory only and no run history is kept.
func New(cfg *config.Config, deps Deps) *Session {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Session{
		cfg:     cfg,
		logger:  logger,
		holder:  dataset.NewHolder(dataset.ParseOptions{Delimiter: cfg.Data.DelimiterRune()}, logger),
		monitor: deps.Monitor,
	}

	var persister maintenance.Persister
	if cfg.Persistence.Enabled {
		s.store = storage.NewArtifactStore(cfg.Persistence.DataDir, logger)
		persister = s.store

		s.history = storage.New(cfg.Persistence.DataDir, cfg.Persistence.HistoryLimit, logger)
		if err := s.history.Load(); err != nil {
			logger.Warn("failed to load run history", "path", s.history.Path(), "error", err)
		}
	}

	s.workflow = maintenance.New(WorkflowConfig(cfg), persister, logger)

	if s.monitor == nil {
		pm, err := monitor.NewProcessMonitor()
		if err != nil {
			logger.Warn("process monitor unavailable", "error", err)
		} else {
			s.monitor = pm
		}
	}

	return s
}

// WorkflowConfig maps the model and persistence sections onto the workflow.
func WorkflowConfig(cfg *config.Config) maintenance.Config {
	return maintenance.Config{
		LabelColumn: cfg.Data.LabelColumn,
		Classifier: classifier.Config{
			Type:            classifier.ModelType(cfg.Model.Type),
			MaxDepth:        cfg.Model.MaxDepth,
			MinSamplesSplit: cfg.Model.MinSamplesSplit,
			MaxFeatures:     cfg.Model.MaxFeatures,
			Seed:            cfg.Model.Seed,
			NEstimators:     cfg.Model.NEstimators,
		},
		ClassifierFile: cfg.Persistence.ClassifierFile,
		ScalerFile:     cfg.Persistence.ScalerFile,
	}
}

// Config returns the session configuration.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// Load reads a dataset file and makes it current. An empty path falls back
// to data.path from the configuration.
func (s *Session) Load(path string) (*dataset.Dataset, error) {
	if path == "" {
		path = s.cfg.Data.Path
	}
	if path == "" {
		return nil, errs.Errorf(errs.ErrNoData, "load", "no data file given")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holder.Load(path)
}

// LoadReader reads a dataset from r and makes it current.
func (s *Session) LoadReader(source string, r io.Reader) (*dataset.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holder.LoadReader(source, r)
}

// Dataset returns the current dataset and its source.
func (s *Session) Dataset() (*dataset.Dataset, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, ok := s.holder.Current()
	return ds, s.holder.Source(), ok
}

// State returns the workflow state.
func (s *Session) State() maintenance.State {
	return s.workflow.State()
}

// Train fits a model on the current dataset. Every attempt, failed or not,
// is recorded in the run history.
func (s *Session) Train(opts ...maintenance.TrainOption) (*maintenance.TrainReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, _ := s.holder.Current()
	run := &storage.Run{
		StartedAt: time.Now(),
		Source:    s.holder.Source(),
		ModelType: s.cfg.Model.Type,
	}

	report, err := s.workflow.Train(ds, opts...)
	if err != nil {
		run.Error = Message(err)
		run.Duration = time.Since(run.StartedAt)
	} else {
		run.ID = report.ModelID
		run.ModelType = report.ModelType
		run.Rows = report.Rows
		run.Features = report.Features
		run.Classes = report.Classes
		run.LabelCounts = report.LabelCounts
		run.Accuracy = report.Accuracy
		run.Duration = report.Duration
		run.Persisted = report.Persisted
		if report.PersistErr != nil {
			run.Error = Message(report.PersistErr)
		}
	}

	if state, serr := s.snapshot(); serr == nil {
		run.RSSBytes = state.RSSBytes
		run.CPUPercent = state.CPUPercent
	}
	s.record(run)

	return report, err
}

func (s *Session) record(run *storage.Run) {
	if s.history == nil {
		return
	}
	if err := s.history.Append(run); err != nil {
		s.logger.Warn("failed to record training run", "error", err)
	}
}

// Predict runs the trained model on the current dataset.
func (s *Session) Predict() (maintenance.Predictions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, _ := s.holder.Current()
	return s.workflow.Predict(ds)
}

// Distribution summarizes the label column of the current dataset.
func (s *Session) Distribution() (*viz.Distribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, _ := s.holder.Current()
	return viz.Summarize(ds, s.workflow.LabelColumn())
}

// SaveChart writes the distribution of the current dataset as an image.
func (s *Session) SaveChart(path string) (*viz.Distribution, error) {
	d, err := s.Distribution()
	if err != nil {
		return nil, err
	}
	if err := viz.SaveChart(d, path, s.cfg.Chart.WidthIn, s.cfg.Chart.HeightIn); err != nil {
		s.logger.Error("failed to save chart", "path", path, "error", err)
		return nil, errs.E(errs.ErrPersistence, "save chart", err)
	}
	s.logger.Info("chart saved", "path", path, "title", d.Title())
	return d, nil
}

// Restore loads the saved model.
func (s *Session) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workflow.Restore()
}

// Resume restores the saved model when both artifacts exist. It reports
// whether a model was restored; having nothing saved is not an error.
func (s *Session) Resume() (bool, error) {
	if !s.hasArtifacts() {
		return false, nil
	}
	if err := s.Restore(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Session) hasArtifacts() bool {
	if s.store == nil {
		return false
	}
	p := s.cfg.Persistence
	return s.store.Exists(p.ClassifierFile) && s.store.Exists(p.ScalerFile)
}

// ModelReport describes the in-memory model and the saved artifacts.
type ModelReport struct {
	State     string                 `json:"state"`
	Model     *maintenance.ModelInfo `json:"model,omitempty"`
	Artifacts []storage.ArtifactInfo `json:"artifacts,omitempty"`
}

// ModelInfo reports the current model and its artifacts.
func (s *Session) ModelInfo() ModelReport {
	report := ModelReport{State: s.workflow.State().String()}
	if info, ok := s.workflow.Model(); ok {
		report.Model = &info
	}
	if s.store != nil {
		p := s.cfg.Persistence
		report.Artifacts = []storage.ArtifactInfo{
			s.store.Info(p.ClassifierFile),
			s.store.Info(p.ScalerFile),
		}
	}
	return report
}

// DeleteModel removes the saved artifacts. The in-memory model is kept.
func (s *Session) DeleteModel() error {
	const op = "delete model"

	if s.store == nil {
		return errs.Errorf(errs.ErrPersistence, op, "persistence is disabled")
	}
	p := s.cfg.Persistence
	if err := s.store.Delete(p.ClassifierFile, p.ScalerFile); err != nil {
		return errs.E(errs.ErrPersistence, op, err)
	}
	s.logger.Info("saved model deleted", "dir", s.store.Dir())
	return nil
}

// History returns recorded training runs, oldest first.
func (s *Session) History() []storage.Run {
	if s.history == nil {
		return nil
	}
	return s.history.Runs()
}

// Snapshot samples process resource usage.
func (s *Session) Snapshot() (*monitor.ProcessState, error) {
	return s.snapshot()
}

func (s *Session) snapshot() (*monitor.ProcessState, error) {
	if s.monitor == nil {
		return nil, errors.New("process monitor unavailable")
	}
	return s.monitor.Snapshot()
}

// Message renders err as the single line shown to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *errs.Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}
