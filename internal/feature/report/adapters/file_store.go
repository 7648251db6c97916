// Package adapters provides the filesystem artifact store of the report feature.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"candidate_backend/internal/feature/report/usecase"
)

type fileStore struct {
	dir string
}

var _ usecase.ArtifactStore = (*fileStore)(nil)

// NewFileStore stores artifacts under dir, creating it on first write.
func NewFileStore(dir string) *fileStore {
	return &fileStore{dir: dir}
}

// Write fills a hidden temp file in the store directory and hard-links it to
// name, so readers never see a partial artifact. The link fails when name
// already exists, so an existing artifact is never replaced.
func (s *fileStore) Write(ctx context.Context, name string, fill func(w io.Writer) error) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}

	final := filepath.Join(s.dir, name)
	if _, err := os.Stat(final); err == nil {
		return "", fmt.Errorf("artifact %s: %w", name, os.ErrExist)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Link(tmp.Name(), final); err != nil {
		return "", fmt.Errorf("failed to publish artifact %s: %w", name, err)
	}
	return final, nil
}
