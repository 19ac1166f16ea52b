// Package storage is the file-persistence collaborator used by the save step.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir}
}

// Write stores content under name inside the configured directory, creating
// the directory on first use. Name must be a bare file name.
func (f *FileStore) Write(name, content string) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("invalid signal file name %q", name)
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create signals dir: %w", err)
	}
	path := filepath.Join(f.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
