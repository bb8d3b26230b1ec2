// Package filesystem provides the storage facade: one Filesystem owns
// exactly one backend adapter and forwards every contract call to it,
// adding a handful of derived conveniences.
package filesystem

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ebogdum/driftfs/backends"
	"github.com/ebogdum/driftfs/object"
)

// Filesystem is an abstraction over a storage backend. Swapping backends
// means constructing it with a different adapter; every operation behaves
// the same way on all of them, up to the documented per-backend gaps.
type Filesystem struct {
	adapter backends.Adapter
}

// New creates a filesystem around the given adapter.
func New(adapter backends.Adapter) *Filesystem {
	return &Filesystem{adapter: adapter}
}

// FileExists checks if a file exists.
func (f *Filesystem) FileExists(ctx context.Context, path string) (bool, error) {
	return f.adapter.FileExists(ctx, path)
}

// DirectoryExists checks if a directory exists.
func (f *Filesystem) DirectoryExists(ctx context.Context, path string) (bool, error) {
	return f.adapter.DirectoryExists(ctx, path)
}

// Has checks if a file or directory exists at path. Both underlying checks
// are issued concurrently; their relative order is unspecified. A real
// failure from either side is never masked.
func (f *Filesystem) Has(ctx context.Context, path string) (bool, error) {
	var fileExists, dirExists bool

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fileExists, err = f.adapter.FileExists(ctx, path)
		return err
	})
	g.Go(func() error {
		var err error
		dirExists, err = f.adapter.DirectoryExists(ctx, path)
		return err
	})

	if err := g.Wait(); err != nil {
		return false, err
	}

	return fileExists || dirExists, nil
}

// Write writes a file.
func (f *Filesystem) Write(ctx context.Context, path string, content []byte) error {
	return f.adapter.Write(ctx, path, content)
}

// Read gets the contents of a file.
func (f *Filesystem) Read(ctx context.Context, path string) (object.Contents, error) {
	return f.adapter.Read(ctx, path)
}

// ReadText gets the contents of a file as a UTF-8 string. Invalid encoding
// fails with object.ErrDecode.
func (f *Filesystem) ReadText(ctx context.Context, path string) (string, error) {
	contents, err := f.adapter.Read(ctx, path)
	if err != nil {
		return "", err
	}
	return contents.Text()
}

// Delete deletes a file.
func (f *Filesystem) Delete(ctx context.Context, path string) error {
	return f.adapter.Delete(ctx, path)
}

// DeleteDirectory deletes a directory and everything nested under it.
func (f *Filesystem) DeleteDirectory(ctx context.Context, path string) error {
	return f.adapter.DeleteDirectory(ctx, path)
}

// CreateDirectory creates a directory, including missing ancestors.
func (f *Filesystem) CreateDirectory(ctx context.Context, path string) error {
	return f.adapter.CreateDirectory(ctx, path)
}

// SetVisibility sets the visibility of a file.
func (f *Filesystem) SetVisibility(ctx context.Context, path string, visibility object.Visibility) error {
	return f.adapter.SetVisibility(ctx, path, visibility)
}

// Visibility gets the visibility of a file.
func (f *Filesystem) Visibility(ctx context.Context, path string) (object.Visibility, error) {
	return f.adapter.Visibility(ctx, path)
}

// MimeType gets the MIME type of a file.
func (f *Filesystem) MimeType(ctx context.Context, path string) (string, error) {
	return f.adapter.MimeType(ctx, path)
}

// LastModified gets the time a file was last modified.
func (f *Filesystem) LastModified(ctx context.Context, path string) (time.Time, error) {
	return f.adapter.LastModified(ctx, path)
}

// FileSize gets the size of a file in bytes.
func (f *Filesystem) FileSize(ctx context.Context, path string) (int64, error) {
	return f.adapter.FileSize(ctx, path)
}

// ListContents lists the files in a directory, optionally recursively.
func (f *Filesystem) ListContents(ctx context.Context, path string, deep bool) ([]string, error) {
	return f.adapter.ListContents(ctx, path, deep)
}

// Move moves a file.
func (f *Filesystem) Move(ctx context.Context, source, destination string) error {
	return f.adapter.Move(ctx, source, destination)
}

// Copy copies a file.
func (f *Filesystem) Copy(ctx context.Context, source, destination string) error {
	return f.adapter.Copy(ctx, source, destination)
}

// Checksum gets the checksum of a file. The algorithm is backend-specific.
func (f *Filesystem) Checksum(ctx context.Context, path string) (string, error) {
	return f.adapter.Checksum(ctx, path)
}

// PublicURL returns a stable unauthenticated URL for a file, when the
// backend can serve content directly. Backends without the capability
// fail with object.ErrUnsupported.
func (f *Filesystem) PublicURL(ctx context.Context, path string) (string, error) {
	gen, ok := f.adapter.(backends.PublicURLGenerator)
	if !ok {
		return "", object.ErrUnsupported
	}
	return gen.PublicURL(ctx, path)
}

// TemporaryURL returns a signed, time-limited URL for a file, when the
// backend can mint one. Backends without the capability fail with
// object.ErrUnsupported.
func (f *Filesystem) TemporaryURL(ctx context.Context, path string, expiresIn time.Duration) (string, error) {
	gen, ok := f.adapter.(backends.TemporaryURLGenerator)
	if !ok {
		return "", object.ErrUnsupported
	}
	return gen.TemporaryURL(ctx, path, expiresIn)
}
