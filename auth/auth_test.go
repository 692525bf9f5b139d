package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHashFile(t *testing.T) *HashFile {
	t.Helper()
	return NewHashFile(filepath.Join(t.TempDir(), "keystash", "hash"), WithCost(bcrypt.MinCost))
}

func TestHashFile(t *testing.T) {
	h := newTestHashFile(t)

	exists, err := h.Exists()
	require.NoError(t, err)
	assert.False(t, exists)
	assert.ErrorIs(t, h.Verify([]byte("anything")), ErrHashNotSet)

	require.NoError(t, h.Set([]byte("s3cret")))

	exists, err = h.Exists()
	require.NoError(t, err)
	assert.True(t, exists)

	info, err := os.Stat(h.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	assert.NoError(t, h.Verify([]byte("s3cret")))
	assert.ErrorIs(t, h.Verify([]byte("wrong")), ErrIncorrectPassword)

	t.Run("change", func(t *testing.T) {
		require.NoError(t, h.Set([]byte("n3w")))
		assert.NoError(t, h.Verify([]byte("n3w")))
		assert.ErrorIs(t, h.Verify([]byte("s3cret")), ErrIncorrectPassword)
	})

	t.Run("empty", func(t *testing.T) {
		assert.ErrorIs(t, h.Set(nil), ErrEmptyPassword)
	})

	t.Run("digest is not stored until written", func(t *testing.T) {
		digest, err := h.Digest([]byte("later"))
		require.NoError(t, err)
		assert.ErrorIs(t, h.Verify([]byte("later")), ErrIncorrectPassword)

		require.NoError(t, h.Write(digest))
		assert.NoError(t, h.Verify([]byte("later")))
	})

	t.Run("bad cost fails before writing", func(t *testing.T) {
		bad := NewHashFile(h.Path(), WithCost(bcrypt.MaxCost+1))
		assert.Error(t, bad.Set([]byte("other")))
		assert.ErrorIs(t, h.Verify([]byte("other")), ErrIncorrectPassword)
	})

	t.Run("trailing newline in file", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("edited"), bcrypt.MinCost)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(h.Path(), append(hash, '\n'), 0o600))
		assert.NoError(t, h.Verify([]byte("edited")))
	})
}

func TestMasterPassword(t *testing.T) {
	raw := []byte("correct horse")
	m, err := NewMasterPassword(raw)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, len(raw)), raw, "source slice is wiped")

	var seen string
	require.NoError(t, m.Use(func(pw []byte) error {
		seen = string(pw)
		return nil
	}))
	assert.Equal(t, "correct horse", seen)

	m.Destroy()
	assert.Error(t, m.Use(func([]byte) error { return nil }))

	_, err = NewMasterPassword(nil)
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestNormalizePassword(t *testing.T) {
	assert.Equal(t, NormalizePassword("caf\u00e9"), NormalizePassword("cafe\u0301"))
	assert.Equal(t, []byte("plain"), NormalizePassword("plain"))
}
