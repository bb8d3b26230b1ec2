// Package memory implements the backends.Adapter contract entirely
// in-process. It is the reference backend: directories, visibility, and
// modification times have no physical counterpart here, so the adapter
// simulates all of them from an explicit file map and directory index.
package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"sync"
	"time"

	"github.com/ebogdum/driftfs/internal/mimeutil"
	"github.com/ebogdum/driftfs/internal/pathutil"
	"github.com/ebogdum/driftfs/object"
)

// fileRecord holds everything the adapter knows about one file. Records
// are replaced wholesale on write and copy, never mutated for a copy.
type fileRecord struct {
	content      []byte
	visibility   object.Visibility
	lastModified time.Time
}

// Adapter is an in-memory storage backend. The zero value is not usable;
// construct with New. All methods are safe for concurrent use: mutations
// are serialized by an internal lock so the file map and directory index
// stay consistent with each other.
type Adapter struct {
	mu       sync.RWMutex
	files    map[string]*fileRecord
	children map[string][]string // directory path -> direct child file paths
	dirOrder []string            // directory index keys in insertion order
}

// New creates an empty in-memory adapter. The root directory always exists.
func New() *Adapter {
	a := &Adapter{
		files:    make(map[string]*fileRecord),
		children: make(map[string][]string),
	}
	a.children[""] = nil
	a.dirOrder = append(a.dirOrder, "")
	return a
}

// ensureDirectoryLocked materializes dir and every ancestor path-component
// in the directory index, preserving insertion order for new entries.
// Callers must hold the write lock.
func (a *Adapter) ensureDirectoryLocked(dir string) {
	current := ""
	for _, component := range pathutil.Components(dir) {
		if current == "" {
			current = component
		} else {
			current = current + "/" + component
		}
		if _, ok := a.children[current]; !ok {
			a.children[current] = nil
			a.dirOrder = append(a.dirOrder, current)
		}
	}
}

// addChildLocked records path as a direct child of parent. Repeated writes
// of the same path do not accumulate duplicate entries.
func (a *Adapter) addChildLocked(parent, path string) {
	if !slices.Contains(a.children[parent], path) {
		a.children[parent] = append(a.children[parent], path)
	}
}

// FileExists reports whether a file exists at path.
func (a *Adapter) FileExists(ctx context.Context, path string) (bool, error) {
	p, err := pathutil.Clean(path)
	if err != nil {
		return false, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	_, ok := a.files[p]
	return ok, nil
}

// DirectoryExists reports whether a directory exists at path.
func (a *Adapter) DirectoryExists(ctx context.Context, path string) (bool, error) {
	p, err := pathutil.Clean(path)
	if err != nil {
		return false, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	_, ok := a.children[p]
	return ok, nil
}

// Write creates or wholly replaces the file at path. Missing ancestor
// directories spring into existence and the new file is Public.
func (a *Adapter) Write(ctx context.Context, path string, content []byte) error {
	p, err := pathutil.Clean(path)
	if err != nil {
		return err
	}
	if p == "" {
		return object.ErrInvalidPath
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	parent := pathutil.Parent(p)
	a.ensureDirectoryLocked(parent)

	a.files[p] = &fileRecord{
		content:      slices.Clone(content),
		visibility:   object.Public,
		lastModified: time.Now(),
	}
	a.addChildLocked(parent, p)

	return nil
}

// Read returns the complete contents of the file at path.
func (a *Adapter) Read(ctx context.Context, path string) (object.Contents, error) {
	p, err := pathutil.Clean(path)
	if err != nil {
		return nil, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	rec, ok := a.files[p]
	if !ok {
		return nil, object.ErrNotFound
	}

	return object.Contents(slices.Clone(rec.content)), nil
}

// Delete removes exactly one file. The parent directory keeps existing
// even when emptied.
func (a *Adapter) Delete(ctx context.Context, path string) error {
	p, err := pathutil.Clean(path)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.deleteLocked(p)
}

func (a *Adapter) deleteLocked(p string) error {
	if _, ok := a.files[p]; !ok {
		return object.ErrNotFound
	}

	delete(a.files, p)

	parent := pathutil.Parent(p)
	a.children[parent] = slices.DeleteFunc(a.children[parent], func(child string) bool {
		return child == p
	})

	return nil
}

// DeleteDirectory removes the directory at path along with every file and
// every directory index entry nested under it.
func (a *Adapter) DeleteDirectory(ctx context.Context, path string) error {
	p, err := pathutil.Clean(path)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.children[p]; !ok {
		return object.ErrNotFound
	}

	delete(a.children, p)
	for dir := range a.children {
		if pathutil.IsAncestor(p, dir) {
			delete(a.children, dir)
		}
	}
	a.dirOrder = slices.DeleteFunc(a.dirOrder, func(dir string) bool {
		return dir == p || pathutil.IsAncestor(p, dir)
	})

	for file := range a.files {
		if pathutil.IsAncestor(p, file) {
			delete(a.files, file)
		}
	}

	// Re-materialize the root if the whole tree was just removed.
	if _, ok := a.children[""]; !ok {
		a.children[""] = nil
		a.dirOrder = append([]string{""}, a.dirOrder...)
	}

	return nil
}

// CreateDirectory creates the directory at path and every missing
// ancestor. Calling it again for an existing directory is a no-op.
func (a *Adapter) CreateDirectory(ctx context.Context, path string) error {
	p, err := pathutil.Clean(path)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.ensureDirectoryLocked(p)
	return nil
}

// SetVisibility changes the visibility of the file at path.
func (a *Adapter) SetVisibility(ctx context.Context, path string, visibility object.Visibility) error {
	p, err := pathutil.Clean(path)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	rec, ok := a.files[p]
	if !ok {
		return object.ErrNotFound
	}

	rec.visibility = visibility
	return nil
}

// Visibility returns the visibility of the file at path.
func (a *Adapter) Visibility(ctx context.Context, path string) (object.Visibility, error) {
	p, err := pathutil.Clean(path)
	if err != nil {
		return object.Public, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	rec, ok := a.files[p]
	if !ok {
		return object.Public, object.ErrNotFound
	}

	return rec.visibility, nil
}

// MimeType infers the content type from the path's extension. The file
// does not need to exist.
func (a *Adapter) MimeType(ctx context.Context, path string) (string, error) {
	p, err := pathutil.Clean(path)
	if err != nil {
		return "", err
	}

	return mimeutil.Detect(p), nil
}

// LastModified returns the modification time of the file at path.
func (a *Adapter) LastModified(ctx context.Context, path string) (time.Time, error) {
	p, err := pathutil.Clean(path)
	if err != nil {
		return time.Time{}, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	rec, ok := a.files[p]
	if !ok {
		return time.Time{}, object.ErrNotFound
	}

	return rec.lastModified, nil
}

// FileSize returns the size in bytes of the file at path.
func (a *Adapter) FileSize(ctx context.Context, path string) (int64, error) {
	p, err := pathutil.Clean(path)
	if err != nil {
		return 0, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	rec, ok := a.files[p]
	if !ok {
		return 0, object.ErrNotFound
	}

	return int64(len(rec.content)), nil
}

// ListContents returns the files under path. With deep false only direct
// children are returned; with deep true the direct children come first,
// followed by each descendant directory's direct children in the order
// those directories were created. The order is deterministic for a fixed
// sequence of operations.
func (a *Adapter) ListContents(ctx context.Context, path string, deep bool) ([]string, error) {
	p, err := pathutil.Clean(path)
	if err != nil {
		return nil, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	direct, ok := a.children[p]
	if !ok {
		return nil, object.ErrNotFound
	}

	out := slices.Clone(direct)
	if deep {
		for _, dir := range a.dirOrder {
			if pathutil.IsAncestor(p, dir) {
				out = append(out, a.children[dir]...)
			}
		}
	}

	return out, nil
}

// Move relocates a file by copying it and deleting the source. If the copy
// half fails no delete is attempted, leaving both paths exactly as they
// were before the call.
func (a *Adapter) Move(ctx context.Context, source, destination string) error {
	src, err := pathutil.Clean(source)
	if err != nil {
		return err
	}
	dst, err := pathutil.Clean(destination)
	if err != nil {
		return err
	}
	if dst == "" {
		return object.ErrInvalidPath
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.copyLocked(src, dst); err != nil {
		return err
	}
	return a.deleteLocked(src)
}

// Copy duplicates a file's content and visibility. The destination record
// is a fresh one stamped with the current time.
func (a *Adapter) Copy(ctx context.Context, source, destination string) error {
	src, err := pathutil.Clean(source)
	if err != nil {
		return err
	}
	dst, err := pathutil.Clean(destination)
	if err != nil {
		return err
	}
	if dst == "" {
		return object.ErrInvalidPath
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.copyLocked(src, dst)
}

func (a *Adapter) copyLocked(src, dst string) error {
	rec, ok := a.files[src]
	if !ok {
		return object.ErrNotFound
	}

	parent := pathutil.Parent(dst)
	a.ensureDirectoryLocked(parent)

	a.files[dst] = &fileRecord{
		content:      slices.Clone(rec.content),
		visibility:   rec.visibility,
		lastModified: time.Now(),
	}
	a.addChildLocked(parent, dst)

	return nil
}

// Checksum returns the hex-encoded SHA-256 digest of the file's content.
func (a *Adapter) Checksum(ctx context.Context, path string) (string, error) {
	contents, err := a.Read(ctx, path)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(contents)
	return hex.EncodeToString(sum[:]), nil
}
