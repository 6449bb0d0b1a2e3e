package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxNodeIDLength bounds node ids in graph files.
const maxNodeIDLength = 128

// nodeIDRegex matches ids usable as graph-file references and DOT names.
var nodeIDRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.:-]*$`)

// ValidateNodeID validates a node id from a graph definition file.
//
// Validation rules:
//   - Id cannot be empty
//   - Maximum length of 128 characters
//   - Must start with a letter or underscore
//   - May contain letters, digits, '_', '.', ':' and '-'
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}
	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidNodeID, "node id too long (max %d characters)", maxNodeIDLength)
	}
	if !nodeIDRegex.MatchString(id) {
		return New(ErrCodeInvalidNodeID, "invalid node id: %q", id)
	}
	return nil
}

// typeNameRegex matches node type identifiers such as "MathNode".
var typeNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateTypeName validates a node type identifier used as an override key
// or an explicit type tag.
func ValidateTypeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidType, "type name cannot be empty")
	}
	if !typeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidType, "invalid type name: %q", name)
	}
	return nil
}

// ValidatePath validates a relative file path, such as a texture source in a
// preview document. It prevents path traversal and ensures reasonable path length.
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
		if r == '\x00' || unicode.IsControl(r) {
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
