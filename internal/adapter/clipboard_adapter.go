package adapter

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// ClipboardAdapter copies payloads to the system clipboard.
type ClipboardAdapter interface {
	Copy(text string) error
}

// SystemClipboardAdapter uses the platform clipboard tools.
type SystemClipboardAdapter struct{}

// NewSystemClipboardAdapter returns the default clipboard.
func NewSystemClipboardAdapter() *SystemClipboardAdapter {
	return &SystemClipboardAdapter{}
}

// Copy replaces the clipboard contents with text.
func (a *SystemClipboardAdapter) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("copy to clipboard: no clipboard utility available")
	}

	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}

	return nil
}
