package vault

import (
	"unicode"
	"unicode/utf8"
)

const MaxFieldLength = 1024

func validateCredential(c Credential) error {
	if c.Service == "" {
		return validationErrorf("service must not be empty")
	}
	if c.Password == "" {
		return validationErrorf("password must not be empty")
	}
	if c.ID != 0 && (c.ID < MinCredentialID || c.ID > MaxCredentialID) {
		return validationErrorf("id %d outside %d-%d", c.ID, MinCredentialID, MaxCredentialID)
	}
	fields := []struct {
		label string
		value *string
	}{
		{"service", &c.Service},
		{"username", c.Username},
		{"email", c.Email},
		{"password", &c.Password},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := validateField(*f.value, f.label); err != nil {
			return err
		}
	}
	return nil
}

func validateField(value, label string) error {
	if len(value) > MaxFieldLength {
		return validationErrorf("%s exceeds maximum length of %d", label, MaxFieldLength)
	}
	if !utf8.ValidString(value) {
		return validationErrorf("%s contains invalid UTF-8", label)
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return validationErrorf("%s contains control character", label)
		}
	}
	return nil
}
