package util

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2Params configures PBKDF2-HMAC-SHA256 key derivation.
type PBKDF2Params struct {
	Iterations int
	KeyLen     int
}

// DefaultPBKDF2Iterations is the work factor of the vault key derivation.
const DefaultPBKDF2Iterations = 390000

func DefaultPBKDF2Params() PBKDF2Params {
	return PBKDF2Params{
		Iterations: DefaultPBKDF2Iterations,
		KeyLen:     AESKeySize,
	}
}

func DerivePBKDF2Key(password, salt []byte, params PBKDF2Params) ([]byte, error) {
	if params.Iterations < 1 {
		return nil, fmt.Errorf("pbkdf2 iterations must be positive")
	}
	if params.KeyLen != AESKeySize {
		return nil, fmt.Errorf("pbkdf2 key length must be %d bytes", AESKeySize)
	}
	return pbkdf2.Key(password, salt, params.Iterations, params.KeyLen, sha256.New), nil
}
