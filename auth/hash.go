// Package auth guards the vault behind the master password: a bcrypt hash
// file used to verify it and an in-memory enclave that holds it once verified.
package auth

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrHashNotSet indicates no master password has been set yet.
	ErrHashNotSet = errors.New("master password not set")
	// ErrIncorrectPassword indicates the password does not match the stored hash.
	ErrIncorrectPassword = errors.New("incorrect master password")
	// ErrEmptyPassword indicates an empty master password was supplied.
	ErrEmptyPassword = errors.New("master password must not be empty")
)

// HashFile stores the bcrypt digest of the master password.
type HashFile struct {
	path string
	cost int
}

// HashFileOption configures a HashFile.
type HashFileOption func(*HashFile)

// WithCost sets the bcrypt cost used by Set. Default: bcrypt.DefaultCost.
func WithCost(cost int) HashFileOption {
	return func(h *HashFile) {
		h.cost = cost
	}
}

// NewHashFile returns a HashFile at path. It performs no I/O.
func NewHashFile(path string, opts ...HashFileOption) *HashFile {
	h := &HashFile{path: path, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Path returns the hash file location.
func (h *HashFile) Path() string {
	return h.path
}

// Exists reports whether a master password has been set.
func (h *HashFile) Exists() (bool, error) {
	_, err := os.Stat(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking hash file: %w", err)
	}
	return true, nil
}

// Set hashes password and replaces the stored hash.
func (h *HashFile) Set(password []byte) error {
	digest, err := h.Digest(password)
	if err != nil {
		return err
	}
	return h.Write(digest)
}

// Digest returns the bcrypt digest of password without storing it.
func (h *HashFile) Digest(password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}
	digest, err := bcrypt.GenerateFromPassword(password, h.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing master password: %w", err)
	}
	return digest, nil
}

// Write atomically replaces the stored hash with digest.
func (h *HashFile) Write(digest []byte) error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := atomic.WriteFile(h.path, bytes.NewReader(digest)); err != nil {
		return fmt.Errorf("writing hash file: %w", err)
	}
	if err := os.Chmod(h.path, 0o600); err != nil {
		return fmt.Errorf("restricting hash file permissions: %w", err)
	}
	return nil
}

// Verify checks password against the stored hash.
func (h *HashFile) Verify(password []byte) error {
	hash, err := os.ReadFile(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrHashNotSet
	}
	if err != nil {
		return fmt.Errorf("reading hash file: %w", err)
	}
	err = bcrypt.CompareHashAndPassword(bytes.TrimSpace(hash), password)
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrIncorrectPassword
	}
	if err != nil {
		return fmt.Errorf("checking master password: %w", err)
	}
	return nil
}
