// Package label formats byte counts as compact fixed-width grid labels.
package label

import (
	"fmt"
	"io"
)

const (
	kilo = 1024
	mega = 1024 * 1024
)

// String returns the label for bytes, right-aligned in four columns
// followed by the unit: B below 1,000, K below 1,000,000, M otherwise.
// Values are truncated by integer division.
func String(bytes int) string {
	switch {
	case bytes < 1_000:
		return fmt.Sprintf("%4dB", bytes)
	case bytes < 1_000_000:
		return fmt.Sprintf("%4dK", bytes/kilo)
	default:
		return fmt.Sprintf("%4dM", bytes/mega)
	}
}

// Write writes the label for bytes to w as one comma-terminated grid field.
func Write(w io.Writer, bytes int) error {
	_, err := io.WriteString(w, String(bytes)+",")
	return err
}
