package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
)

// ForestConfig holds configuration for a random forest.
type ForestConfig struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int
	Seed            int64
	Bootstrap       bool
}

// RandomForest is a bagged ensemble of decision trees with majority voting.
// Trees are fitted one after another; tree i is seeded with Seed+i so a fit is
// reproducible for a fixed seed.
type RandomForest struct {
	config ForestConfig

	trees    []*DecisionTree
	features int
	classes  int
	progress ProgressFunc
}

type forestState struct {
	Config   ForestConfig `json:"config"`
	Features int          `json:"features"`
	Classes  int          `json:"classes"`
	Trees    []treeState  `json:"trees"`
}

// NewRandomForest creates a new random forest.
func NewRandomForest(cfg ForestConfig) *RandomForest {
	if cfg.NEstimators < 1 {
		cfg.NEstimators = 100
	}
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}
	return &RandomForest{config: cfg}
}

// Name returns the model name.
func (f *RandomForest) Name() string {
	return string(ModelTypeRandomForest)
}

// SetProgress registers a callback invoked after each tree is fitted.
func (f *RandomForest) SetProgress(fn ProgressFunc) {
	f.progress = fn
}

// Fit trains every tree on a bootstrap sample of the rows.
func (f *RandomForest) Fit(X [][]float64, y []int) error {
	features, classes, err := checkTrainingSet(X, y)
	if err != nil {
		return err
	}

	maxFeatures := f.config.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Max(1, math.Round(math.Sqrt(float64(features)))))
	}

	n := len(X)
	total := f.config.NEstimators
	trees := make([]*DecisionTree, total)
	for i := 0; i < total; i++ {
		seed := f.config.Seed + int64(i)
		rnd := rand.New(rand.NewSource(seed))

		sample := make([]int, n)
		for j := range sample {
			if f.config.Bootstrap {
				sample[j] = rnd.Intn(n)
			} else {
				sample[j] = j
			}
		}

		tree := NewDecisionTree(TreeConfig{
			MaxDepth:        f.config.MaxDepth,
			MinSamplesSplit: f.config.MinSamplesSplit,
			MaxFeatures:     maxFeatures,
			Seed:            seed,
		})
		tree.grow(X, y, sample, features, classes)
		trees[i] = tree

		if f.progress != nil {
			f.progress(i+1, total)
		}
	}

	f.trees = trees
	f.features = features
	f.classes = classes
	return nil
}

// Predict returns the majority vote of all trees. Ties go to the lowest class.
func (f *RandomForest) Predict(X [][]float64) ([]int, error) {
	if len(f.trees) == 0 {
		return nil, ErrNotFitted
	}
	if err := checkRows(X, f.features); err != nil {
		return nil, err
	}

	out := make([]int, len(X))
	votes := make([]int, f.classes)
	for i, row := range X {
		for c := range votes {
			votes[c] = 0
		}
		for _, tree := range f.trees {
			votes[tree.predictRow(row)]++
		}
		out[i] = majority(votes)
	}
	return out, nil
}

// Trees returns the number of fitted trees.
func (f *RandomForest) Trees() int {
	return len(f.trees)
}

// Save serializes the forest to a writer.
func (f *RandomForest) Save(w io.Writer) error {
	state := forestState{
		Config:   f.config,
		Features: f.features,
		Classes:  f.classes,
		Trees:    make([]treeState, len(f.trees)),
	}
	for i, tree := range f.trees {
		state.Trees[i] = tree.state()
	}
	return json.NewEncoder(w).Encode(state)
}

// Load deserializes the forest from a reader.
func (f *RandomForest) Load(r io.Reader) error {
	var state forestState
	if err := json.NewDecoder(r).Decode(&state); err != nil {
		return err
	}
	if len(state.Trees) == 0 {
		return errors.New("forest has no trees")
	}

	trees := make([]*DecisionTree, len(state.Trees))
	for i, ts := range state.Trees {
		if ts.Features != state.Features || ts.Classes != state.Classes {
			return fmt.Errorf("tree %d: shape does not match forest", i)
		}
		tree := &DecisionTree{}
		if err := tree.restore(ts); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
		trees[i] = tree
	}

	f.config = state.Config
	f.features = state.Features
	f.classes = state.Classes
	f.trees = trees
	return nil
}
