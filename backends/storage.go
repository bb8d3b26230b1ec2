// Package backends defines the storage capability contract every driftfs
// backend implements, along with the optional URL-generation capabilities
// some backends additionally provide.
package backends

import (
	"context"
	"time"

	"github.com/ebogdum/driftfs/object"
)

// Adapter is the capability contract shared by all storage backends.
// Paths are virtual, slash-delimited identifiers; each backend maps them
// onto its own addressing (an OS path under a root, an object key, or an
// in-memory map key).
//
// FileExists and DirectoryExists are independent predicates: callers that
// combine them must OR the results and must not assume mutual exclusivity.
// No operation retries internally; every failure surfaces to the caller on
// first occurrence.
type Adapter interface {
	// FileExists reports whether a file exists at path.
	FileExists(ctx context.Context, path string) (bool, error)

	// DirectoryExists reports whether a directory exists at path.
	DirectoryExists(ctx context.Context, path string) (bool, error)

	// Write creates or wholly replaces the file at path, creating any
	// missing ancestor directories. Newly created files are Public.
	Write(ctx context.Context, path string, content []byte) error

	// Read returns the complete contents of the file at path.
	Read(ctx context.Context, path string) (object.Contents, error)

	// Delete removes exactly one file. Object storage may report success
	// for a key that never existed; every other backend fails with
	// object.ErrNotFound.
	Delete(ctx context.Context, path string) error

	// DeleteDirectory removes a directory and everything nested under it.
	DeleteDirectory(ctx context.Context, path string) error

	// CreateDirectory creates a directory and every missing ancestor.
	// It is idempotent.
	CreateDirectory(ctx context.Context, path string) error

	// SetVisibility changes the visibility of the file at path.
	SetVisibility(ctx context.Context, path string, visibility object.Visibility) error

	// Visibility returns the visibility of the file at path.
	Visibility(ctx context.Context, path string) (object.Visibility, error)

	// MimeType returns the best-effort content type of the file at path.
	MimeType(ctx context.Context, path string) (string, error)

	// LastModified returns the modification time of the file at path.
	LastModified(ctx context.Context, path string) (time.Time, error)

	// FileSize returns the size in bytes of the file at path.
	FileSize(ctx context.Context, path string) (int64, error)

	// ListContents returns the files under path: only direct children when
	// deep is false, files at any depth when deep is true. Directory names
	// themselves are never returned. The order is deterministic for a fixed
	// sequence of operations.
	ListContents(ctx context.Context, path string, deep bool) ([]string, error)

	// Move relocates a file, creating the destination's missing ancestor
	// directories. It is not atomic on every backend: a failure between the
	// copy and delete halves can leave both paths populated.
	Move(ctx context.Context, source, destination string) error

	// Copy duplicates a file's content and visibility. The destination's
	// modification time is refreshed to the time of the copy.
	Copy(ctx context.Context, source, destination string) error

	// Checksum returns a content-derived fingerprint, stable for unchanged
	// content. The algorithm is backend-specific: identical content may
	// checksum differently across backends.
	Checksum(ctx context.Context, path string) (string, error)
}

// PublicURLGenerator is implemented by backends that can serve a file at a
// stable, unauthenticated URL.
type PublicURLGenerator interface {
	PublicURL(ctx context.Context, path string) (string, error)
}

// TemporaryURLGenerator is implemented by backends that can mint signed,
// time-limited URLs granting direct read access. The expiry is a data value
// baked into the URL, not a cancellation mechanism.
type TemporaryURLGenerator interface {
	TemporaryURL(ctx context.Context, path string, expiresIn time.Duration) (string, error)
}
