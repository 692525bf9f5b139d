package crypto

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/jmcleod/keystash/internal/util"
)

// A token is laid out as
//
//	version (1) || timestamp (8, big-endian unix seconds) || nonce (12) || ciphertext || tag (16)
//
// The version and timestamp form the GCM additional data.
const (
	tokenVersion    byte = 0x01
	tokenHeaderSize      = 1 + 8
	tokenMinSize         = tokenHeaderSize + util.GCMNonceSize + util.GCMTagSize
)

// now is replaceable in tests.
var now = time.Now

// Encrypt seals plaintext under key and returns a versioned, timestamped token.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrMissingKey
	}
	header := make([]byte, tokenHeaderSize)
	header[0] = tokenVersion
	binary.BigEndian.PutUint64(header[1:], uint64(now().Unix()))

	sealed, err := util.EncryptAESWithAAD(plaintext, key, header)
	if err != nil {
		return nil, fmt.Errorf("sealing token: %w", err)
	}

	token := make([]byte, 0, len(header)+len(sealed))
	token = append(token, header...)
	return append(token, sealed...), nil
}

// Decrypt authenticates and opens a token produced by Encrypt. Any failure other
// than a missing key is reported as ErrIntegrity.
func Decrypt(token, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrMissingKey
	}
	if len(token) < tokenMinSize {
		return nil, fmt.Errorf("token too short (%d bytes): %w", len(token), ErrIntegrity)
	}
	if token[0] != tokenVersion {
		return nil, fmt.Errorf("unsupported token version 0x%02x: %w", token[0], ErrIntegrity)
	}

	plaintext, err := util.DecryptAESWithAAD(token[tokenHeaderSize:], key, token[:tokenHeaderSize])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntegrity, err)
	}
	return plaintext, nil
}
