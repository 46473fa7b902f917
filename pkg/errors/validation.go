package errors

import (
	"slices"
	"strings"
	"unicode"
)

// Limits on user-supplied input accepted by the API and the manifest loader.
const (
	MaxFormulaLength = 4096
	MaxVariableName  = 64
	MaxVariables     = 24
)

// Formats lists the output formats understood by the renderers.
var Formats = []string{"dot", "svg", "png", "json"}

// ValidateFormula rejects empty, oversized or control-character input before
// it reaches the parser.
func ValidateFormula(src string) error {
	if strings.TrimSpace(src) == "" {
		return New(ErrCodeInvalidFormula, "formula cannot be empty")
	}
	if len(src) > MaxFormulaLength {
		return New(ErrCodeInvalidFormula, "formula too long (max %d characters)", MaxFormulaLength)
	}
	for _, r := range src {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return New(ErrCodeInvalidFormula, "formula contains control characters")
		}
	}
	return nil
}

// ValidateVariableName checks a single name of a variable order. Names must
// be identifiers: a letter or underscore followed by letters, digits or
// underscores.
func ValidateVariableName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidVariableOrder, "variable name cannot be empty")
	}
	if len(name) > MaxVariableName {
		return New(ErrCodeInvalidVariableOrder, "variable name too long (max %d characters)", MaxVariableName)
	}
	for i, r := range name {
		switch {
		case r == '_', r < unicode.MaxASCII && unicode.IsLetter(r):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return New(ErrCodeInvalidVariableOrder, "invalid variable name %q", name)
		}
	}
	return nil
}

// ValidateOrder checks every name in order and caps its length. The cap
// bounds the 2^n oracle calls a request may trigger.
func ValidateOrder(order []string) error {
	if len(order) > MaxVariables {
		return New(ErrCodeInvalidVariableOrder, "too many variables: %d (max %d)", len(order), MaxVariables)
	}
	for _, name := range order {
		if err := ValidateVariableName(name); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFormat checks that format is one of [Formats].
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidatePath validates a relative output path, such as the output
// directory of a manifest entry.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}
	return nil
}

// ValidateURL checks that a renderer endpoint uses http or https.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}
