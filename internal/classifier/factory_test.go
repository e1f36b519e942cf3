package classifier

import (
	"testing"
)

func TestFactoryCreateByType(t *testing.T) {
	factory := NewFactory(DefaultConfig())

	tests := []struct {
		modelType    ModelType
		expectError  bool
		expectedName string
	}{
		{ModelTypeRandomForest, false, "random_forest"},
		{ModelTypeDecisionTree, false, "decision_tree"},
		{ModelType("svm"), true, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.modelType), func(t *testing.T) {
			model, err := factory.CreateByType(tt.modelType)

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if model.Name() != tt.expectedName {
				t.Errorf("expected name '%s', got '%s'", tt.expectedName, model.Name())
			}
		})
	}
}

func TestFactoryCreateUsesConfigType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Type = ModelTypeDecisionTree

	model, err := NewFactory(cfg).Create()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := model.(*DecisionTree); !ok {
		t.Errorf("expected *DecisionTree, got %T", model)
	}
}

func TestForestReportsProgress(t *testing.T) {
	model, err := NewFactory(DefaultConfig()).Create()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reporter, ok := model.(ProgressReporter)
	if !ok {
		t.Fatalf("random forest should report progress")
	}
	var calls, lastTotal int
	reporter.SetProgress(func(done, total int) {
		calls++
		lastTotal = total
	})

	if err := model.Fit([][]float64{{1}, {2}, {3}}, []int{0, 1, 1}); err != nil {
		t.Fatalf("fit: %v", err)
	}
	if calls != 100 || lastTotal != 100 {
		t.Errorf("expected 100 progress calls of 100, got %d of %d", calls, lastTotal)
	}
}

func TestModelTypeIsValid(t *testing.T) {
	if !ModelTypeRandomForest.IsValid() || !ModelTypeDecisionTree.IsValid() {
		t.Error("known types should be valid")
	}
	if ModelType("linear").IsValid() {
		t.Error("unknown type should be invalid")
	}
}
