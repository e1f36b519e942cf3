// Package storage persists trained model artifacts and training-run history
// as JSON files under a data directory. Every write goes through a temp file
// and an atomic rename.
package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrArtifactNotFound is returned when loading an artifact that was never saved.
var ErrArtifactNotFound = errors.New("artifact not found")

// Saveable is an interface for objects that can be saved.
type Saveable interface {
	Save(w io.Writer) error
}

// Loadable is an interface for objects that can be loaded.
type Loadable interface {
	Load(r io.Reader) error
}

// ArtifactStore saves and loads named artifacts in a data directory.
type ArtifactStore struct {
	dataDir string
	logger  *slog.Logger

	mu sync.Mutex
}

// NewArtifactStore creates a new ArtifactStore.
func NewArtifactStore(dataDir string, logger *slog.Logger) *ArtifactStore {
	return &ArtifactStore{dataDir: dataDir, logger: logger}
}

// Dir returns the data directory.
func (s *ArtifactStore) Dir() string {
	return s.dataDir
}

func (s *ArtifactStore) path(name string) string {
	return filepath.Join(s.dataDir, name)
}

// Save writes an artifact to disk.
func (s *ArtifactStore) Save(name string, artifact Saveable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeAtomic(s.dataDir, name, artifact.Save); err != nil {
		return err
	}

	s.logger.Debug("saved artifact to disk", "path", s.path(name))
	return nil
}

// Load reads an artifact from disk. A missing file yields ErrArtifactNotFound.
func (s *ArtifactStore) Load(name string, artifact Loadable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.path(name)

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", filePath, ErrArtifactNotFound)
		}
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer file.Close()

	if err := artifact.Load(file); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filePath, err)
	}

	s.logger.Debug("loaded artifact from disk", "path", filePath)
	return nil
}

// Exists returns whether a saved artifact exists.
func (s *ArtifactStore) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

// ArtifactInfo describes a saved artifact.
type ArtifactInfo struct {
	Name      string    `json:"name"`
	Exists    bool      `json:"exists"`
	Path      string    `json:"path"`
	Size      int64     `json:"size,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Info returns information about a saved artifact.
func (s *ArtifactStore) Info(name string) ArtifactInfo {
	filePath := s.path(name)
	info := ArtifactInfo{
		Name: name,
		Path: filePath,
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		info.Exists = false
		return info
	}

	info.Exists = true
	info.Size = stat.Size()
	info.UpdatedAt = stat.ModTime()
	return info
}

// Delete removes the named artifacts. Missing files are not an error.
func (s *ArtifactStore) Delete(names ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, name := range names {
		if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("failed to delete %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
