package errors

import (
	"strings"
	"unicode"
)

// ValidateThreshold validates a simplification threshold. The simplifier
// accepts fractions of the scalar span in [0, 1]; anything else is a
// caller mistake worth a precise message.
func ValidateThreshold(t float64) error {
	if t != t { // NaN
		return New(ErrCodeInvalidThreshold, "threshold is NaN")
	}
	if t < 0 || t > 1 {
		return New(ErrCodeInvalidThreshold, "threshold %g outside [0,1]", t)
	}
	return nil
}

// ValidatePath validates a user-supplied file path for safety.
// It prevents path traversal and rejects unreasonable inputs.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No parent-directory traversal sequences
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "path too long (max 500 characters)")
	}
	for _, r := range path {
		if r == 0 || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains control characters")
		}
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path contains parent-directory traversal")
	}
	return nil
}

// ValidateFormat validates a render output format against the supported
// set.
func ValidateFormat(format string, supported []string) error {
	for _, s := range supported {
		if format == s {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (supported: %s)",
		format, strings.Join(supported, ", "))
}
