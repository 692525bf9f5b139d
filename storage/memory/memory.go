// Package memory provides a thread-safe in-memory implementation of storage.Backend.
package memory

import (
	"sync"

	"github.com/jmcleod/keystash/internal/util"
	"github.com/jmcleod/keystash/storage"
)

// Backend is a thread-safe in-memory storage.Backend.
// Suitable for testing, demos, and embedding.
type Backend struct {
	mu     sync.RWMutex
	data   []byte
	exists bool
	saves  int
}

var _ storage.Backend = (*Backend)(nil)

// New creates an empty Backend; Load reports storage.ErrNotFound until the first Save.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Load() ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.exists {
		return nil, storage.ErrNotFound
	}
	return util.CopyBytes(b.data), nil
}

func (b *Backend) Save(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = util.CopyBytes(data)
	b.exists = true
	b.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (b *Backend) Saves() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.saves
}
