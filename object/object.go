// Package object defines the shared value model for driftfs: visibility,
// resource kinds, file contents, and the backend-agnostic error taxonomy.
package object

import (
	"errors"
	"unicode/utf8"
)

// Common storage errors. Backend adapters translate their collaborator's
// native failures into these sentinels; anything outside the taxonomy is
// wrapped with fmt.Errorf("...: %w", err) so the underlying diagnostic
// survives errors.Unwrap.
var (
	// ErrNotFound indicates the path does not exist as the expected resource kind.
	ErrNotFound = errors.New("path not found")

	// ErrInvalidPath indicates the path cannot be represented in the backend's
	// native addressing.
	ErrInvalidPath = errors.New("invalid path")

	// ErrDecode indicates stored bytes could not be converted to the requested
	// typed representation.
	ErrDecode = errors.New("contents could not be decoded")

	// ErrUnsupported indicates the backend cannot perform the requested
	// semantic. This is a capability gap, not data corruption.
	ErrUnsupported = errors.New("operation not supported by backend")

	// ErrMissingMetadata indicates the backend omitted an expected metadata
	// field in its response.
	ErrMissingMetadata = errors.New("backend response missing metadata")
)

// Visibility is a two-state simplification of a backend's native permission
// or access-control model.
type Visibility int

const (
	// Public is the default visibility for newly written files.
	Public Visibility = iota
	Private
)

// String returns the canonical lowercase name of the visibility.
func (v Visibility) String() string {
	if v == Private {
		return "private"
	}
	return "public"
}

// Resource selects the visibility-to-permission mapping on backends that
// distinguish files from directories.
type Resource int

const (
	File Resource = iota
	Directory
)

// String returns the canonical lowercase name of the resource kind.
func (r Resource) String() string {
	if r == Directory {
		return "directory"
	}
	return "file"
}

// Contents is an owned byte buffer holding a complete object. Reads are
// never partial: a read yields the whole object or fails.
type Contents []byte

// Bytes returns the raw content.
func (c Contents) Bytes() []byte {
	return []byte(c)
}

// Text converts the content to a UTF-8 string. It fails with ErrDecode if
// the content is not valid UTF-8.
func (c Contents) Text() (string, error) {
	if !utf8.Valid(c) {
		return "", ErrDecode
	}
	return string(c), nil
}
