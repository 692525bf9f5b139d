package vault

import (
	"errors"
	"fmt"

	"github.com/jmcleod/keystash/crypto"
	"github.com/jmcleod/keystash/storage"
)

var (
	// ErrMissingKey indicates a vault operation was attempted without a master password.
	ErrMissingKey = crypto.ErrMissingKey
	// ErrFormat indicates the stored vault cannot be parsed.
	ErrFormat = storage.ErrFormat
	// ErrIntegrity indicates the vault failed authentication: wrong master password or a tampered file.
	ErrIntegrity = crypto.ErrIntegrity
	// ErrConsistency indicates more than one credential shares the same identity fields.
	ErrConsistency = errors.New("duplicate credential identity")
	// ErrCredentialNotFound indicates no credential carries the requested ID.
	ErrCredentialNotFound = errors.New("credential not found")
	// ErrVaultFull indicates every credential ID is already taken.
	ErrVaultFull = errors.New("no free credential IDs")
	// ErrConfirmationRequired indicates a decision needed a prompt but no Confirmer was supplied.
	ErrConfirmationRequired = errors.New("confirmation required")
)

// ValidationError reports a credential that violates the record rules.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "invalid credential: " + e.Msg
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
