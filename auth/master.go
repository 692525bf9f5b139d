package auth

import (
	"fmt"

	"github.com/awnumar/memguard"

	"github.com/jmcleod/keystash/internal/util"
)

// MasterPassword holds a verified master password in a memguard Enclave
// (encrypted at rest in memory). Call Destroy when done.
type MasterPassword struct {
	enclave *memguard.Enclave
}

// NormalizePassword returns the NFKD form of s, so visually identical
// passwords typed on different systems derive the same key.
func NormalizePassword(s string) []byte {
	return []byte(util.Normalize(s))
}

// NewMasterPassword seals password into an enclave. The password slice is
// wiped by this call.
func NewMasterPassword(password []byte) (*MasterPassword, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}
	return &MasterPassword{enclave: memguard.NewEnclave(password)}, nil
}

// Use opens the enclave for the duration of fn. The slice passed to fn must
// not be retained.
func (m *MasterPassword) Use(fn func(password []byte) error) error {
	if m == nil || m.enclave == nil {
		return fmt.Errorf("master password destroyed")
	}
	buf, err := m.enclave.Open()
	if err != nil {
		return fmt.Errorf("opening master password enclave: %w", err)
	}
	defer buf.Destroy()
	return fn(buf.Bytes())
}

// Destroy drops the enclave. Further calls to Use fail.
func (m *MasterPassword) Destroy() {
	if m != nil {
		m.enclave = nil
	}
}
