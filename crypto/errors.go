package crypto

import "errors"

var (
	// ErrMissingKey indicates encryption or decryption was requested without a master password.
	ErrMissingKey = errors.New("missing master password")
	// ErrIntegrity indicates a token failed authentication: wrong key, corrupted data, or tampering.
	ErrIntegrity = errors.New("integrity check failed")
)
