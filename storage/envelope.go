package storage

import (
	"fmt"
	"strings"

	"github.com/jmcleod/keystash/crypto"
	"github.com/jmcleod/keystash/internal/util"
)

// EnvelopeSeparator joins the encoded salt and ciphertext. It never occurs in
// standard base64, so the first occurrence is always the boundary.
const EnvelopeSeparator = ":"

// Envelope is a sealed vault: the salt the key was derived with and the
// authenticated token produced by crypto.Encrypt.
type Envelope struct {
	Salt       []byte
	Ciphertext []byte
}

// String renders the envelope as base64(salt):base64(ciphertext).
func (e *Envelope) String() string {
	return util.Base64Encode(e.Salt) + EnvelopeSeparator + util.Base64Encode(e.Ciphertext)
}

// ParseEnvelope parses the textual form produced by Envelope.String.
func ParseEnvelope(s string) (*Envelope, error) {
	salt, ciphertext, ok := strings.Cut(strings.TrimSpace(s), EnvelopeSeparator)
	if !ok {
		return nil, fmt.Errorf("missing %q separator: %w", EnvelopeSeparator, ErrFormat)
	}
	saltBytes, err := util.Base64Decode(salt)
	if err != nil {
		return nil, fmt.Errorf("decoding salt: %w: %v", ErrFormat, err)
	}
	if len(saltBytes) != crypto.SaltSize {
		return nil, fmt.Errorf("salt is %d bytes, want %d: %w", len(saltBytes), crypto.SaltSize, ErrFormat)
	}
	cipherBytes, err := util.Base64Decode(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decoding ciphertext: %w: %v", ErrFormat, err)
	}
	return &Envelope{Salt: saltBytes, Ciphertext: cipherBytes}, nil
}

// SealRecord encrypts plaintext under a key derived from password and a fresh salt.
func SealRecord(password, plaintext []byte) (*Envelope, error) {
	salt, err := crypto.NewSalt()
	if err != nil {
		return nil, err
	}
	key, err := crypto.DeriveKey(password, salt)
	if err != nil {
		return nil, err
	}
	defer util.WipeBytes(key)

	ciphertext, err := crypto.Encrypt(plaintext, key)
	if err != nil {
		return nil, err
	}
	return &Envelope{Salt: salt, Ciphertext: ciphertext}, nil
}

// OpenRecord re-derives the key from password and the envelope salt and decrypts.
func OpenRecord(password []byte, envelope *Envelope) ([]byte, error) {
	key, err := crypto.DeriveKey(password, envelope.Salt)
	if err != nil {
		return nil, err
	}
	defer util.WipeBytes(key)

	return crypto.Decrypt(envelope.Ciphertext, key)
}
