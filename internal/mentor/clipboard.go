package mentor

import "github.com/atotto/clipboard"

// Clipboard is a write-only view of the platform clipboard
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard
type SystemClipboard struct{}

// WriteAll implements Clipboard
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// ClipboardAvailable reports whether a clipboard utility was found
func ClipboardAvailable() bool {
	return !clipboard.Unsupported
}
