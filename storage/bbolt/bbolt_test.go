package bbolt

import (
	"path/filepath"
	"testing"

	"github.com/jmcleod/keystash/storage"
	"go.etcd.io/bbolt"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := Open(filepath.Join(t.TempDir(), "data", "vault.db"), nil)
	if err != nil {
		t.Fatalf("could not open db: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestBBoltBackend(t *testing.T) {
	b := newTestBackend(t)

	t.Run("LoadEmpty", func(t *testing.T) {
		_, err := b.Load()
		if err != storage.ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SaveLoad", func(t *testing.T) {
		if err := b.Save([]byte("salt:cipher")); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := b.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if string(got) != "salt:cipher" {
			t.Errorf("expected %q, got %q", "salt:cipher", got)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		if err := b.Save([]byte("v2")); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, _ := b.Load()
		if string(got) != "v2" {
			t.Errorf("expected %q, got %q", "v2", got)
		}
	})

	t.Run("LoadCopiesValue", func(t *testing.T) {
		got, _ := b.Load()
		got[0] = 'X'
		again, _ := b.Load()
		if string(again) != "v2" {
			t.Errorf("Load must return a copy, stored value became %q", again)
		}
	})
}

func TestBBoltBackend_EmptyBucket(t *testing.T) {
	b := newTestBackend(t)
	err := b.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucket(bucketName)
		return err
	})
	if err != nil {
		t.Fatalf("creating bucket: %v", err)
	}
	if _, err := b.Load(); err != storage.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
