package storage

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// mockArtifact for testing
type mockArtifact struct {
	Data  string `json:"data"`
	Value int    `json:"value"`
}

func (m *mockArtifact) Save(w io.Writer) error {
	return json.NewEncoder(w).Encode(m)
}

func (m *mockArtifact) Load(r io.Reader) error {
	return json.NewDecoder(r).Decode(m)
}

type failingArtifact struct{}

func (failingArtifact) Save(w io.Writer) error {
	return errors.New("encode failed")
}

func newTestStore(t *testing.T) *ArtifactStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewArtifactStore(t.TempDir(), logger)
}

func TestArtifactStore_SaveLoad(t *testing.T) {
	store := newTestStore(t)

	// Test that artifact doesn't exist initially
	if store.Exists("failure_model.json") {
		t.Error("expected artifact to not exist initially")
	}

	original := &mockArtifact{Data: "test data", Value: 42}
	if err := store.Save("failure_model.json", original); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if !store.Exists("failure_model.json") {
		t.Error("expected artifact to exist after save")
	}

	loaded := &mockArtifact{}
	if err := store.Load("failure_model.json", loaded); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if *loaded != *original {
		t.Errorf("expected %+v, got %+v", original, loaded)
	}
}

func TestArtifactStore_LoadNonExistent(t *testing.T) {
	store := newTestStore(t)

	artifact := &mockArtifact{}
	err := store.Load("scaler.json", artifact)
	if !errors.Is(err, ErrArtifactNotFound) {
		t.Errorf("expected ErrArtifactNotFound, got: %v", err)
	}
}

func TestArtifactStore_LoadCorrupted(t *testing.T) {
	store := newTestStore(t)

	if err := os.WriteFile(filepath.Join(store.Dir(), "scaler.json"), []byte("{"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	err := store.Load("scaler.json", &mockArtifact{})
	if err == nil {
		t.Fatal("expected error for corrupted artifact")
	}
	if errors.Is(err, ErrArtifactNotFound) {
		t.Error("corrupted artifact should not be reported as missing")
	}
}

func TestArtifactStore_SaveFailureKeepsPrevious(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("failure_model.json", &mockArtifact{Value: 1}); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := store.Save("failure_model.json", failingArtifact{}); err == nil {
		t.Fatal("expected save error")
	}

	loaded := &mockArtifact{}
	if err := store.Load("failure_model.json", loaded); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Value != 1 {
		t.Errorf("expected previous artifact to survive, got %+v", loaded)
	}

	tempPath := filepath.Join(store.Dir(), "failure_model.json.tmp")
	if _, err := os.Stat(tempPath); !os.IsNotExist(err) {
		t.Error("temp file should be removed after a failed save")
	}
}

func TestArtifactStore_Info(t *testing.T) {
	store := newTestStore(t)

	// Initially no artifact
	info := store.Info("failure_model.json")
	if info.Exists {
		t.Error("expected artifact to not exist")
	}

	if err := store.Save("failure_model.json", &mockArtifact{Data: "test", Value: 123}); err != nil {
		t.Fatalf("failed to save artifact: %v", err)
	}

	info = store.Info("failure_model.json")
	if !info.Exists {
		t.Error("expected artifact to exist")
	}
	if info.Size == 0 {
		t.Error("expected non-zero size")
	}
	if info.UpdatedAt.IsZero() {
		t.Error("expected non-zero UpdatedAt")
	}
	if info.Name != "failure_model.json" {
		t.Errorf("expected name failure_model.json, got %s", info.Name)
	}
}

func TestArtifactStore_Delete(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"failure_model.json", "scaler.json"} {
		if err := store.Save(name, &mockArtifact{Data: name}); err != nil {
			t.Fatalf("failed to save %s: %v", name, err)
		}
	}

	if err := store.Delete("failure_model.json", "scaler.json"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	if store.Exists("failure_model.json") || store.Exists("scaler.json") {
		t.Error("expected artifacts to not exist after delete")
	}

	// Delete again should not error
	if err := store.Delete("failure_model.json"); err != nil {
		t.Errorf("expected no error deleting non-existent artifact, got: %v", err)
	}
}

func TestArtifactStore_Overwrite(t *testing.T) {
	store := newTestStore(t)

	// Save multiple times
	for i := 0; i < 5; i++ {
		if err := store.Save("failure_model.json", &mockArtifact{Data: "test", Value: i}); err != nil {
			t.Fatalf("Save iteration %d error: %v", i, err)
		}
	}

	artifact := &mockArtifact{}
	if err := store.Load("failure_model.json", artifact); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if artifact.Value != 4 {
		t.Errorf("expected Value 4, got %d", artifact.Value)
	}
}
