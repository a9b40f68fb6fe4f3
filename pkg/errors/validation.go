package errors

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// maxNodeIDLength bounds node ids accepted from the command line and HTTP
// requests.
const maxNodeIDLength = 512

// ValidateNodeID validates a node id supplied by a caller.
//
// Node ids are opaque, so only the obviously broken cases are rejected:
//   - empty ids
//   - ids longer than 512 bytes
//   - ids containing control characters or null bytes
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}
	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidInput, "node id too long (max %d characters)", maxNodeIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains invalid control characters")
		}
	}
	return nil
}

// documentExtensions lists the file extensions a document can be read from.
var documentExtensions = []string{".json", ".yaml", ".yml"}

// ValidateDocumentFilename validates the basename of a document file.
// It must be a plain filename with a .json, .yaml or .yml extension.
func ValidateDocumentFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidDocument, "document filename cannot be empty")
	}
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidDocument, "document filename cannot contain path separators")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(documentExtensions, ext) {
		return New(ErrCodeInvalidDocument, "unsupported document extension %q (want one of %s)",
			ext, strings.Join(documentExtensions, ", "))
	}
	return nil
}

// ValidatePath validates a relative path below a working directory.
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

// ValidateFormat checks that format is one of allowed.
// An empty format is rejected; callers apply their own defaults first.
func ValidateFormat(format string, allowed ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeUnsupported, "unsupported format %q (want one of %s)",
			format, strings.Join(allowed, ", "))
	}
	return nil
}
