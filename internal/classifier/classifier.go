// Package classifier provides the tree-based failure classifiers used by the
// maintenance workflow. Classifiers work on dense float64 features and integer
// class indexes; encoding to and from labels happens in the caller.
package classifier

import (
	"errors"
	"fmt"
	"io"
)

// ModelType identifies a classifier implementation.
type ModelType string

const (
	ModelTypeRandomForest ModelType = "random_forest"
	ModelTypeDecisionTree ModelType = "decision_tree"
)

// IsValid checks if the model type is known.
func (m ModelType) IsValid() bool {
	switch m {
	case ModelTypeRandomForest, ModelTypeDecisionTree:
		return true
	}
	return false
}

// String returns string representation.
func (m ModelType) String() string {
	return string(m)
}

// ErrNotFitted is returned by Predict before a successful Fit or Load.
var ErrNotFitted = errors.New("classifier not fitted")

// Classifier is a supervised multi-class classifier.
type Classifier interface {
	// Name returns the model type name.
	Name() string

	// Fit trains on rows X with class indexes y. y values must be >= 0.
	Fit(X [][]float64, y []int) error

	// Predict returns one class index per row, in row order.
	Predict(X [][]float64) ([]int, error)

	// Persistence
	Save(w io.Writer) error
	Load(r io.Reader) error
}

// ProgressFunc receives progress updates while a classifier fits.
type ProgressFunc func(done, total int)

// ProgressReporter is implemented by classifiers that report fit progress.
type ProgressReporter interface {
	SetProgress(fn ProgressFunc)
}

func checkTrainingSet(X [][]float64, y []int) (features, classes int, err error) {
	if len(X) == 0 {
		return 0, 0, errors.New("empty training set")
	}
	if len(X) != len(y) {
		return 0, 0, fmt.Errorf("%d rows but %d labels", len(X), len(y))
	}
	features = len(X[0])
	if features == 0 {
		return 0, 0, errors.New("rows have no features")
	}
	for i, row := range X {
		if len(row) != features {
			return 0, 0, fmt.Errorf("row %d has %d features, want %d", i, len(row), features)
		}
		if y[i] < 0 {
			return 0, 0, fmt.Errorf("row %d has negative class %d", i, y[i])
		}
		if y[i]+1 > classes {
			classes = y[i] + 1
		}
	}
	return features, classes, nil
}

func checkRows(X [][]float64, features int) error {
	for i, row := range X {
		if len(row) != features {
			return fmt.Errorf("row %d has %d features, model expects %d", i, len(row), features)
		}
	}
	return nil
}

// majority returns the class with the highest count. Ties go to the lowest class.
func majority(counts []int) int {
	best := 0
	for c, n := range counts {
		if n > counts[best] {
			best = c
		}
	}
	return best
}
