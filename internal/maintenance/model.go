package maintenance

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/classifier"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/preprocess"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/storage"
)

// State is the workflow lifecycle state.
type State int

const (
	Untrained State = iota
	Trained
)

// String returns string representation of the state.
func (s State) String() string {
	switch s {
	case Untrained:
		return "untrained"
	case Trained:
		return "trained"
	default:
		return "unknown"
	}
}

// Model is a fitted classifier together with the transforms it was trained
// behind. A Model is never modified after training.
type Model struct {
	// ID identifies the training run. Both saved artifacts carry it.
	ID         string
	Pipeline   *preprocess.Pipeline
	Labels     *preprocess.LabelEncoder
	Classifier classifier.Classifier
	TrainedAt  time.Time
	Rows       int
}

// ModelInfo is a read-only summary of the trained model.
type ModelInfo struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Features  []string  `json:"features"`
	Classes   []string  `json:"classes"`
	TrainedAt time.Time `json:"trained_at"`
	Rows      int       `json:"rows"`
}

func (m *Model) info() ModelInfo {
	classes := make([]string, len(m.Labels.Classes))
	copy(classes, m.Labels.Classes)
	return ModelInfo{
		ID:        m.ID,
		Type:      m.Classifier.Name(),
		Features:  m.Pipeline.FeatureNames(),
		Classes:   classes,
		TrainedAt: m.TrainedAt,
		Rows:      m.Rows,
	}
}

// Predictions holds one predicted label per input row, in input order.
type Predictions []string

// Counts returns how many rows were predicted for each label.
func (p Predictions) Counts() map[string]int {
	counts := make(map[string]int)
	for _, label := range p {
		counts[label]++
	}
	return counts
}

// Persister stores named model artifacts.
type Persister interface {
	Save(name string, artifact storage.Saveable) error
	Load(name string, artifact storage.Loadable) error
}

// scalerArtifact is the on-disk form of the feature pipeline.
type scalerArtifact struct {
	RunID    string          `json:"run_id"`
	Pipeline json.RawMessage `json:"pipeline"`

	pipeline *preprocess.Pipeline
}

func newScalerArtifact(m *Model) *scalerArtifact {
	return &scalerArtifact{RunID: m.ID, pipeline: m.Pipeline}
}

func (a *scalerArtifact) Save(w io.Writer) error {
	var buf bytes.Buffer
	if err := a.pipeline.Save(&buf); err != nil {
		return err
	}
	a.Pipeline = buf.Bytes()
	return json.NewEncoder(w).Encode(a)
}

func (a *scalerArtifact) Load(r io.Reader) error {
	if err := json.NewDecoder(r).Decode(a); err != nil {
		return err
	}
	if a.RunID == "" {
		return errors.New("artifact has no run id")
	}
	var p preprocess.Pipeline
	if err := p.Load(bytes.NewReader(a.Pipeline)); err != nil {
		return err
	}
	a.pipeline = &p
	return nil
}

// classifierArtifact is the on-disk form of the classifier and its classes.
type classifierArtifact struct {
	RunID     string               `json:"run_id"`
	Type      classifier.ModelType `json:"type"`
	Features  []string             `json:"features"`
	Classes   []string             `json:"classes"`
	TrainedAt time.Time            `json:"trained_at"`
	Rows      int                  `json:"rows"`
	Model     json.RawMessage      `json:"model"`

	factory *classifier.Factory
	clf     classifier.Classifier
}

func newClassifierArtifact(m *Model) *classifierArtifact {
	return &classifierArtifact{
		RunID:     m.ID,
		Type:      classifier.ModelType(m.Classifier.Name()),
		Features:  m.Pipeline.FeatureNames(),
		Classes:   m.Labels.Classes,
		TrainedAt: m.TrainedAt,
		Rows:      m.Rows,
		clf:       m.Classifier,
	}
}

func (a *classifierArtifact) Save(w io.Writer) error {
	var buf bytes.Buffer
	if err := a.clf.Save(&buf); err != nil {
		return err
	}
	a.Model = buf.Bytes()
	return json.NewEncoder(w).Encode(a)
}

func (a *classifierArtifact) Load(r io.Reader) error {
	if err := json.NewDecoder(r).Decode(a); err != nil {
		return err
	}
	if a.RunID == "" {
		return errors.New("artifact has no run id")
	}
	if len(a.Classes) == 0 {
		return errors.New("artifact has no classes")
	}
	clf, err := a.factory.CreateByType(a.Type)
	if err != nil {
		return err
	}
	if err := clf.Load(bytes.NewReader(a.Model)); err != nil {
		return fmt.Errorf("%s: %w", a.Type, err)
	}
	a.clf = clf
	return nil
}

// matches reports whether the scaler was saved by the same training run.
func (a *classifierArtifact) matches(s *scalerArtifact) error {
	if a.RunID != s.RunID {
		return fmt.Errorf("scaler is from run %s, classifier is from run %s", s.RunID, a.RunID)
	}
	if !slices.Equal(a.Features, s.pipeline.FeatureNames()) {
		return fmt.Errorf("scaler features %v do not match classifier features %v", s.pipeline.FeatureNames(), a.Features)
	}
	return nil
}
