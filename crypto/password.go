package crypto

import (
	"fmt"
	"unicode"

	"github.com/jmcleod/keystash/internal/util"
)

const (
	GeneratedPasswordLength  = 16
	generatedPasswordSymbols = "!@#$%^&*()-_=+[]{};:,.?/"
	minGeneratedDigits       = 3
)

var generatedPasswordAlphabet = []rune(
	"abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"0123456789" +
		generatedPasswordSymbols,
)

// GeneratePassword returns a random 16-character password with at least one
// upper-case letter, one lower-case letter and three digits. Quotes,
// backslashes, pipes and angle brackets never appear.
func GeneratePassword() (string, error) {
	for {
		p, err := util.RandomString(GeneratedPasswordLength, generatedPasswordAlphabet)
		if err != nil {
			return "", fmt.Errorf("generating password: %w", err)
		}
		if isStrong(p) {
			return p, nil
		}
	}
}

func isStrong(p string) bool {
	var upper, lower bool
	digits := 0
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digits++
		}
	}
	return upper && lower && digits >= minGeneratedDigits
}
