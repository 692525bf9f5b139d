// Package bbolt provides a BBolt-backed storage backend.
package bbolt

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/jmcleod/keystash/storage"
)

var (
	bucketName = []byte("keystash")
	vaultKey   = []byte("vault")
)

// Backend implements storage.Backend backed by a BBolt database. The sealed
// vault is stored under a single key, so every Save is one transaction.
type Backend struct {
	db *bbolt.DB
}

var _ storage.Backend = (*Backend)(nil)

// New returns a Backend backed by the given BBolt database.
func New(db *bbolt.DB) *Backend {
	return &Backend{db: db}
}

// Open opens (creating if needed) a BBolt database at path and returns a new Backend.
func Open(path string, options *bbolt.Options) (*Backend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating vault directory: %w", err)
	}
	db, err := bbolt.Open(path, 0o600, options)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	return New(db), nil
}

// Close closes the underlying BBolt database.
func (b *Backend) Close() error {
	return b.db.Close()
}

func (b *Backend) Load() ([]byte, error) {
	var data []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return storage.ErrNotFound
		}
		v := bucket.Get(vaultKey)
		if v == nil {
			return storage.ErrNotFound
		}
		// v is only valid for the life of the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *Backend) Save(data []byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return bucket.Put(vaultKey, data)
	})
}
