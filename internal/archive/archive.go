// Package archive stores immutable audit copies of score reports and the
// signal snapshots they were computed from. Regulators can ask for the
// inputs behind any historical score, so both sides are kept.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Client abstracts blob storage for score reports and signal snapshots.
type Client interface {
	PutScore(ctx context.Context, orgID, scoreID string, data []byte) error
	GetScore(ctx context.Context, orgID, scoreID string) ([]byte, error)
	PutSnapshot(ctx context.Context, orgID, scoreID string, data []byte) error
	GetSnapshot(ctx context.Context, orgID, scoreID string) ([]byte, error)
}

// LocalArchive implements Client using the local filesystem.
// Useful for development and testing.
type LocalArchive struct {
	BaseDir string
}

// NewLocalArchive creates a LocalArchive rooted at the given directory.
func NewLocalArchive(baseDir string) *LocalArchive {
	return &LocalArchive{BaseDir: baseDir}
}

func (a *LocalArchive) path(orgID, kind, id string) string {
	return filepath.Join(a.BaseDir, orgID, kind, id+".json")
}

func (a *LocalArchive) put(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PutScore stores a rendered score report.
func (a *LocalArchive) PutScore(ctx context.Context, orgID, scoreID string, data []byte) error {
	return a.put(a.path(orgID, "scores", scoreID), data)
}

// GetScore retrieves a rendered score report.
func (a *LocalArchive) GetScore(ctx context.Context, orgID, scoreID string) ([]byte, error) {
	return os.ReadFile(a.path(orgID, "scores", scoreID))
}

// PutSnapshot stores the signal snapshot a score was computed from.
func (a *LocalArchive) PutSnapshot(ctx context.Context, orgID, scoreID string, data []byte) error {
	return a.put(a.path(orgID, "snapshots", scoreID), data)
}

// GetSnapshot retrieves a signal snapshot.
func (a *LocalArchive) GetSnapshot(ctx context.Context, orgID, scoreID string) ([]byte, error) {
	return os.ReadFile(a.path(orgID, "snapshots", scoreID))
}
