// Package clipboard copies the derived password to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"passwd/internal/domain"
)

// Writer places text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the desktop clipboard through xclip, xsel, wl-copy,
// pbcopy or the Windows API, whichever the platform provides.
type System struct{}

// WriteAll copies text. Missing clipboard support is reported as
// domain.ErrClipboardUnavailable.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility found", domain.ErrClipboardUnavailable)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrClipboardUnavailable, err)
	}
	return nil
}

// Discard is a Writer that drops everything, used with --no-clipboard.
type Discard struct{}

// WriteAll does nothing.
func (Discard) WriteAll(string) error { return nil }
