package classifier

import (
	"fmt"
)

// Config holds classifier configuration.
type Config struct {
	Type ModelType

	// Tree params
	MaxDepth        int // 0 means unlimited
	MinSamplesSplit int
	MaxFeatures     int // 0 means all for a tree, sqrt(n) for a forest
	Seed            int64

	// Forest params
	NEstimators int
}

// DefaultConfig returns default classifier configuration.
func DefaultConfig() Config {
	return Config{
		Type:            ModelTypeRandomForest,
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MaxFeatures:     0,
		Seed:            42,
		NEstimators:     100,
	}
}

// Factory creates classifiers.
type Factory struct {
	config Config
}

// NewFactory creates a new classifier factory.
func NewFactory(cfg Config) *Factory {
	return &Factory{config: cfg}
}

// Create creates a classifier based on configuration.
func (f *Factory) Create() (Classifier, error) {
	return f.CreateByType(f.config.Type)
}

// CreateByType creates a classifier of the specified type.
func (f *Factory) CreateByType(modelType ModelType) (Classifier, error) {
	switch modelType {
	case ModelTypeDecisionTree:
		return NewDecisionTree(TreeConfig{
			MaxDepth:        f.config.MaxDepth,
			MinSamplesSplit: f.config.MinSamplesSplit,
			MaxFeatures:     f.config.MaxFeatures,
			Seed:            f.config.Seed,
		}), nil

	case ModelTypeRandomForest:
		return NewRandomForest(ForestConfig{
			NEstimators:     f.config.NEstimators,
			MaxDepth:        f.config.MaxDepth,
			MinSamplesSplit: f.config.MinSamplesSplit,
			MaxFeatures:     f.config.MaxFeatures,
			Seed:            f.config.Seed,
			Bootstrap:       true,
		}), nil

	default:
		return nil, fmt.Errorf("unknown model type: %s", modelType)
	}
}
