// Package file provides the default storage.Backend: the vault envelope kept
// as a single text file.
package file

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/jmcleod/keystash/storage"
)

// Backend implements storage.Backend on top of one file.
type Backend struct {
	path string
}

var _ storage.Backend = (*Backend)(nil)

// New returns a Backend for the file at path. Nothing is touched on disk
// until the first Save.
func New(path string) *Backend {
	return &Backend{path: path}
}

// Path returns the vault file location.
func (b *Backend) Path() string {
	return b.path
}

func (b *Backend) Load() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", b.path, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading vault file: %w", err)
	}
	return data, nil
}

// Save writes data to a temporary file next to the vault and renames it into
// place, so a crash never leaves a half-written vault.
func (b *Backend) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o700); err != nil {
		return fmt.Errorf("creating vault directory: %w", err)
	}
	if err := atomic.WriteFile(b.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing vault file: %w", err)
	}
	if err := os.Chmod(b.path, 0o600); err != nil {
		return fmt.Errorf("restricting vault file permissions: %w", err)
	}
	return nil
}
