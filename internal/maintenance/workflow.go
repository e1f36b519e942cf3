// Package maintenance implements the predictive maintenance workflow: train a
// failure classifier on a labelled dataset, then predict failures for new
// machine data with the exact transforms learned at training time.
package maintenance

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/classifier"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/dataset"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/errs"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/preprocess"
)

// Default artifact names.
const (
	DefaultClassifierFile = "failure_model.json"
	DefaultScalerFile     = "scaler.json"
)

// Config holds workflow configuration.
type Config struct {
	LabelColumn    string
	Classifier     classifier.Config
	ClassifierFile string
	ScalerFile     string
}

// DefaultConfig returns default workflow configuration.
func DefaultConfig() Config {
	return Config{
		LabelColumn:    dataset.DefaultLabelColumn,
		Classifier:     classifier.DefaultConfig(),
		ClassifierFile: DefaultClassifierFile,
		ScalerFile:     DefaultScalerFile,
	}
}

// TrainReport describes a completed training run.
type TrainReport struct {
	ModelID     string         `json:"model_id"`
	ModelType   string         `json:"model_type"`
	Rows        int            `json:"rows"`
	Features    []string       `json:"features"`
	Classes     []string       `json:"classes"`
	LabelCounts map[string]int `json:"label_counts"`
	Accuracy    float64        `json:"accuracy"`
	Duration    time.Duration  `json:"duration"`
	Persisted   bool           `json:"persisted"`
	// PersistErr is set when the model trained but saving its artifacts failed.
	PersistErr error `json:"-"`
}

type trainOptions struct {
	progress classifier.ProgressFunc
}

// TrainOption configures a single Train call.
type TrainOption func(*trainOptions)

// WithProgress reports classifier fit progress.
func WithProgress(fn classifier.ProgressFunc) TrainOption {
	return func(o *trainOptions) { o.progress = fn }
}

// Workflow owns at most one trained model. It starts Untrained and moves to
// Trained after the first successful Train or Restore.
type Workflow struct {
	config    Config
	factory   *classifier.Factory
	create    func() (classifier.Classifier, error)
	persister Persister
	logger    *slog.Logger

	mu    sync.RWMutex
	model *Model
}

// New creates a workflow. persister may be nil to keep models in memory only.
func New(cfg Config, persister Persister, logger *slog.Logger) *Workflow {
	if cfg.LabelColumn == "" {
		cfg.LabelColumn = dataset.DefaultLabelColumn
	}
	if cfg.ClassifierFile == "" {
		cfg.ClassifierFile = DefaultClassifierFile
	}
	if cfg.ScalerFile == "" {
		cfg.ScalerFile = DefaultScalerFile
	}
	factory := classifier.NewFactory(cfg.Classifier)
	return &Workflow{
		config:    cfg,
		factory:   factory,
		create:    factory.Create,
		persister: persister,
		logger:    logger,
	}
}

// LabelColumn returns the configured label column.
func (w *Workflow) LabelColumn() string {
	return w.config.LabelColumn
}

// State returns the current lifecycle state.
func (w *Workflow) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.model == nil {
		return Untrained
	}
	return Trained
}

// Model returns a summary of the trained model.
func (w *Workflow) Model() (ModelInfo, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.model == nil {
		return ModelInfo{}, false
	}
	return w.model.info(), true
}

// Train fits a new model on ds and replaces the current one. On error the
// workflow keeps its previous state and model.
func (w *Workflow) Train(ds *dataset.Dataset, opts ...TrainOption) (*TrainReport, error) {
	const op = "train"

	var o trainOptions
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	label := w.config.LabelColumn

	if ds == nil {
		return nil, w.fail(errs.Errorf(errs.ErrNoData, op, "no dataset loaded"))
	}
	if !ds.HasColumn(label) {
		return nil, w.fail(errs.Errorf(errs.ErrSchema, op, "column %q not found in data", label))
	}
	if ds.Len() == 0 {
		return nil, w.fail(errs.Errorf(errs.ErrSchema, op, "dataset has no rows"))
	}
	features := ds.Without(label)
	if features.Width() == 0 {
		return nil, w.fail(errs.Errorf(errs.ErrSchema, op, "dataset has no feature columns besides %q", label))
	}
	labels, _ := ds.Column(label)

	model, accuracy, err := w.fit(features, labels, o)
	if err != nil {
		return nil, w.fail(errs.E(errs.ErrTraining, op, err))
	}

	w.mu.Lock()
	w.model = model
	w.mu.Unlock()

	report := &TrainReport{
		ModelID:     model.ID,
		ModelType:   model.Classifier.Name(),
		Rows:        model.Rows,
		Features:    model.Pipeline.FeatureNames(),
		Classes:     model.info().Classes,
		LabelCounts: Predictions(labels).Counts(),
		Accuracy:    accuracy,
	}

	if w.persister != nil {
		if err := w.persist(model); err != nil {
			report.PersistErr = errs.E(errs.ErrPersistence, "save model", err)
			w.logger.Warn("model trained but not saved", "error", report.PersistErr)
		} else {
			report.Persisted = true
		}
	}
	report.Duration = time.Since(start)

	w.logger.Info("model trained",
		"type", report.ModelType,
		"rows", report.Rows,
		"features", len(report.Features),
		"classes", report.Classes,
		"accuracy", report.Accuracy,
		"duration", report.Duration,
	)

	return report, nil
}

// fit runs every fitting step. Classifier panics are returned as errors.
func (w *Workflow) fit(features *dataset.Dataset, labels []string, o trainOptions) (model *Model, accuracy float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			model, accuracy = nil, 0
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	pipeline, X, err := preprocess.FitPipeline(features)
	if err != nil {
		return nil, 0, fmt.Errorf("preprocess: %w", err)
	}
	encoder, y := preprocess.FitLabels(labels)

	clf, err := w.create()
	if err != nil {
		return nil, 0, err
	}
	if reporter, ok := clf.(classifier.ProgressReporter); ok && o.progress != nil {
		reporter.SetProgress(o.progress)
	}
	if err := clf.Fit(X, y); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", clf.Name(), err)
	}

	pred, err := clf.Predict(X)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", clf.Name(), err)
	}
	correct := 0
	for i := range pred {
		if pred[i] == y[i] {
			correct++
		}
	}

	model = &Model{
		ID:         uuid.NewString(),
		Pipeline:   pipeline,
		Labels:     encoder,
		Classifier: clf,
		TrainedAt:  time.Now(),
		Rows:       len(labels),
	}
	return model, float64(correct) / float64(len(y)), nil
}

// persist saves the scaler and the classifier. Both carry the model ID so a
// half-finished save is detected on restore.
func (w *Workflow) persist(m *Model) error {
	if err := w.persister.Save(w.config.ScalerFile, newScalerArtifact(m)); err != nil {
		return err
	}
	return w.persister.Save(w.config.ClassifierFile, newClassifierArtifact(m))
}

// Predict returns one label per row of ds, in row order. The label column is
// ignored when present. Predict never changes the workflow state.
func (w *Workflow) Predict(ds *dataset.Dataset) (Predictions, error) {
	const op = "predict"

	w.mu.RLock()
	model := w.model
	w.mu.RUnlock()

	if model == nil {
		return nil, w.fail(errs.Errorf(errs.ErrModelNotTrained, op, "train a model first"))
	}
	if ds == nil {
		return nil, w.fail(errs.Errorf(errs.ErrNoData, op, "no dataset loaded"))
	}

	X, err := model.Pipeline.Transform(ds.Without(w.config.LabelColumn))
	if err != nil {
		if errs.KindOf(err) == nil {
			err = errs.E(errs.ErrSchema, op, err)
		}
		return nil, w.fail(err)
	}

	codes, err := model.Classifier.Predict(X)
	if err != nil {
		return nil, w.fail(errs.E(errs.ErrSchema, op, err))
	}
	labels, err := model.Labels.Decode(codes)
	if err != nil {
		return nil, w.fail(errs.E(errs.ErrTraining, op, err))
	}

	w.logger.Debug("predicted", "rows", len(labels))
	return Predictions(labels), nil
}

// Restore loads the persisted model and moves the workflow to Trained. On
// error the workflow is unchanged.
func (w *Workflow) Restore() error {
	const op = "restore model"

	if w.persister == nil {
		return w.fail(errs.Errorf(errs.ErrPersistence, op, "persistence is disabled"))
	}

	scaler := &scalerArtifact{}
	if err := w.persister.Load(w.config.ScalerFile, scaler); err != nil {
		return w.fail(errs.E(errs.ErrPersistence, op, err))
	}

	artifact := &classifierArtifact{factory: w.factory}
	if err := w.persister.Load(w.config.ClassifierFile, artifact); err != nil {
		return w.fail(errs.E(errs.ErrPersistence, op, err))
	}
	if err := artifact.matches(scaler); err != nil {
		return w.fail(errs.E(errs.ErrPersistence, op, err))
	}

	model := &Model{
		ID:         artifact.RunID,
		Pipeline:   scaler.pipeline,
		Labels:     &preprocess.LabelEncoder{Classes: artifact.Classes},
		Classifier: artifact.clf,
		TrainedAt:  artifact.TrainedAt,
		Rows:       artifact.Rows,
	}

	w.mu.Lock()
	w.model = model
	w.mu.Unlock()

	w.logger.Info("model restored",
		"id", artifact.RunID,
		"type", artifact.Type,
		"features", len(artifact.Features),
		"classes", artifact.Classes,
		"trained_at", artifact.TrainedAt,
	)
	return nil
}

func (w *Workflow) fail(err error) error {
	var e *errs.Error
	if errors.As(err, &e) {
		w.logger.Error("workflow operation failed", "op", e.Op, "kind", e.Kind, "error", e.Err)
	} else {
		w.logger.Error("workflow operation failed", "error", err)
	}
	return err
}
