// Package platform wraps operating-system facilities used by the CLI.
package platform

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Clipboard receives secrets to paste elsewhere.
type Clipboard interface {
	Copy(text string) error
}

type systemClipboard struct{}

func (systemClipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

// NewClipboard returns the system clipboard.
func NewClipboard() Clipboard { return systemClipboard{} }
