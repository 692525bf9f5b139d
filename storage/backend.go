// Package storage provides the envelope format and the persistence backends
// that hold a sealed vault.
package storage

import "errors"

var (
	// ErrNotFound is returned by Backend.Load when no vault has been written yet.
	ErrNotFound = errors.New("vault not found")
	// ErrFormat indicates stored bytes are not a well-formed vault.
	ErrFormat = errors.New("malformed vault")
)

// Backend persists the serialized vault as a single opaque blob. Save must
// replace the previous contents as a whole or not at all.
type Backend interface {
	Load() ([]byte, error)
	Save(data []byte) error
}
