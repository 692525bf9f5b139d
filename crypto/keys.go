// Package crypto implements the password-based key derivation and the
// authenticated token format used to seal a vault.
package crypto

import (
	"fmt"

	"github.com/jmcleod/keystash/internal/util"
)

const (
	// SaltSize is the length of the random salt stored alongside every sealed vault.
	SaltSize = 16
	// KeySize is the length of a derived key in bytes.
	KeySize = util.AESKeySize
	// KDFIterations is the fixed PBKDF2-HMAC-SHA256 work factor.
	KDFIterations = util.DefaultPBKDF2Iterations
)

// DeriveKey derives a 32-byte key from the master password and a 16-byte salt
// using PBKDF2-HMAC-SHA256. The same password and salt always give the same key.
func DeriveKey(password, salt []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, ErrMissingKey
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("invalid salt size: got %d, want %d", len(salt), SaltSize)
	}
	return util.DerivePBKDF2Key(password, salt, util.DefaultPBKDF2Params())
}

// NewSalt returns a fresh random salt.
func NewSalt() ([]byte, error) {
	return util.RandomBytes(SaltSize)
}
