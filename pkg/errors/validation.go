package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// identifierRegex matches variable identifiers used in structure files:
// a letter followed by letters, digits, dots, dashes or underscores.
var identifierRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._-]*$`)

// ValidateIdentifier validates a variable identifier from a structure file.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - Maximum length of 64 characters
//   - Must start with a letter
//   - Only letters, digits, '.', '-' and '_' afterwards
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "identifier too long (max 64 characters): %q", id)
	}

	if !identifierRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid identifier: %q", id)
	}

	return nil
}

// ValidateOutputPath validates a local output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - Must not end in a path separator
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory: %q", path)
	}

	return nil
}
