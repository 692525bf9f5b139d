package vault

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jmcleod/keystash/storage"
)

// Encode serializes v to JSON and seals it under password, returning the
// textual envelope. A fresh salt is drawn on every call.
func Encode(v Vault, password []byte) (string, error) {
	if len(password) == 0 {
		return "", ErrMissingKey
	}
	if v == nil {
		v = Vault{}
	}
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshaling vault: %w", err)
	}
	env, err := storage.SealRecord(password, plaintext)
	if err != nil {
		return "", fmt.Errorf("sealing vault: %w", err)
	}
	return env.String(), nil
}

// Decode opens an envelope produced by Encode. Content starting with '[' is a
// legacy plaintext vault and is parsed as JSON directly.
func Decode(s string, password []byte) (Vault, error) {
	if isPlaintext(s) {
		return unmarshalVault([]byte(s))
	}
	if len(password) == 0 {
		return nil, ErrMissingKey
	}
	env, err := storage.ParseEnvelope(s)
	if err != nil {
		return nil, err
	}
	plaintext, err := storage.OpenRecord(password, env)
	if err != nil {
		return nil, fmt.Errorf("opening vault: %w", err)
	}
	return unmarshalVault(plaintext)
}

func isPlaintext(s string) bool {
	trimmed := bytes.TrimSpace([]byte(s))
	return len(trimmed) > 0 && trimmed[0] == '['
}

func unmarshalVault(data []byte) (Vault, error) {
	var v Vault
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing vault JSON: %w: %v", ErrFormat, err)
	}
	if v == nil {
		v = Vault{}
	}
	if err := checkRecords(v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return v, nil
}

// checkRecords applies the insert rules to decoded records and rejects
// duplicate ids.
func checkRecords(v Vault) error {
	seen := make(map[int]bool, len(v))
	for i, c := range v {
		if err := validateCredential(c); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if c.ID == 0 {
			continue
		}
		if seen[c.ID] {
			return fmt.Errorf("record %d: duplicate id %d", i, c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}
