package errors

import (
	"strings"
	"unicode"
)

// ValidateStoreID validates an edition store identifier for safety and
// correctness. Store IDs become file names in the file-backed store, so the
// rules are intentionally conservative:
//
//   - No empty IDs
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateStoreID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "store ID cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "store ID too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "store ID contains control characters")
		}
	}

	dangerous := []string{"..", "/", "\\", "\x00"}
	for _, pattern := range dangerous {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "store ID contains invalid sequence: %q", pattern)
		}
	}

	return nil
}

// ValidateOutputFormat checks a requested serialization format.
func ValidateOutputFormat(format string) error {
	switch format {
	case "text", "json", "dot":
		return nil
	default:
		return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: text, json, dot)", format)
	}
}
