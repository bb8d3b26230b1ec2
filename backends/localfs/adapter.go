// Package localfs implements the backends.Adapter contract on top of a
// local filesystem rooted at a configured base location. Virtual paths are
// joined under the root; listings report root-relative, slash-delimited
// paths so results look the same as on every other backend.
package localfs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ebogdum/driftfs/config"
	"github.com/ebogdum/driftfs/internal/mimeutil"
	"github.com/ebogdum/driftfs/internal/pathutil"
	"github.com/ebogdum/driftfs/object"
)

// Adapter is a local disk storage backend.
type Adapter struct {
	rootPath string
}

// New creates a local disk adapter rooted at cfg.RootPath. When the root
// does not exist it is created if cfg.LazyRootCreation is set; otherwise
// construction fails fast.
func New(cfg config.LocalFSConfig) (*Adapter, error) {
	if _, err := os.Stat(cfg.RootPath); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("root path %s is not accessible: %w", cfg.RootPath, err)
		}
		if !cfg.LazyRootCreation {
			return nil, fmt.Errorf("root path %s does not exist: create it manually or enable lazy root creation: %w", cfg.RootPath, err)
		}
		if err := os.MkdirAll(cfg.RootPath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create root path %s: %w", cfg.RootPath, err)
		}
	}

	return &Adapter{
		rootPath: cfg.RootPath,
	}, nil
}

// FileExists reports whether a regular file exists at path. A directory at
// the same path is not a file: it yields false, not an error.
func (a *Adapter) FileExists(ctx context.Context, path string) (bool, error) {
	fullPath, err := pathutil.SafeJoin(a.rootPath, path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info.Mode().IsRegular(), nil
}

// DirectoryExists reports whether a directory exists at path. A file at
// the same path yields false, not an error.
func (a *Adapter) DirectoryExists(ctx context.Context, path string) (bool, error) {
	fullPath, err := pathutil.SafeJoin(a.rootPath, path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info.IsDir(), nil
}

// Write creates or wholly replaces the file at path, creating any missing
// parent directories first. New files get the canonical Public mode.
func (a *Adapter) Write(ctx context.Context, path string, content []byte) error {
	fullPath, err := pathutil.SafeJoin(a.rootPath, path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	if err := os.WriteFile(fullPath, content, visibilityMode(object.File, object.Public)); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}

// Read returns the complete contents of the file at path.
func (a *Adapter) Read(ctx context.Context, path string) (object.Contents, error) {
	fullPath, err := pathutil.SafeJoin(a.rootPath, path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, object.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return object.Contents(data), nil
}

// Delete removes exactly one file.
func (a *Adapter) Delete(ctx context.Context, path string) error {
	fullPath, err := pathutil.SafeJoin(a.rootPath, path)
	if err != nil {
		return err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return object.ErrNotFound
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return object.ErrNotFound
	}

	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}

	return nil
}

// DeleteDirectory removes a directory and everything nested under it.
func (a *Adapter) DeleteDirectory(ctx context.Context, path string) error {
	fullPath, err := pathutil.SafeJoin(a.rootPath, path)
	if err != nil {
		return err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return object.ErrNotFound
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return object.ErrNotFound
	}

	if err := os.RemoveAll(fullPath); err != nil {
		return fmt.Errorf("failed to delete directory %s: %w", path, err)
	}

	return nil
}

// CreateDirectory creates a directory and every missing ancestor. It is
// idempotent.
func (a *Adapter) CreateDirectory(ctx context.Context, path string) error {
	fullPath, err := pathutil.SafeJoin(a.rootPath, path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(fullPath, visibilityMode(object.Directory, object.Public)); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	return nil
}

// SetVisibility changes the permission bits of the resource at path to the
// canonical mode for its kind.
func (a *Adapter) SetVisibility(ctx context.Context, path string, visibility object.Visibility) error {
	fullPath, err := pathutil.SafeJoin(a.rootPath, path)
	if err != nil {
		return err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return object.ErrNotFound
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	resource := object.File
	if info.IsDir() {
		resource = object.Directory
	}

	if err := os.Chmod(fullPath, visibilityMode(resource, visibility)); err != nil {
		return fmt.Errorf("failed to change permissions of %s: %w", path, err)
	}

	return nil
}

// Visibility reads the resource's permission bits back into the two-state
// model.
func (a *Adapter) Visibility(ctx context.Context, path string) (object.Visibility, error) {
	fullPath, err := pathutil.SafeJoin(a.rootPath, path)
	if err != nil {
		return object.Public, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return object.Public, object.ErrNotFound
		}
		return object.Public, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	resource := object.File
	if info.IsDir() {
		resource = object.Directory
	}

	return modeVisibility(resource, info.Mode()), nil
}

// MimeType infers the content type from the path's extension. The file
// does not need to exist.
func (a *Adapter) MimeType(ctx context.Context, path string) (string, error) {
	if _, err := pathutil.Clean(path); err != nil {
		return "", err
	}

	return mimeutil.Detect(path), nil
}

// LastModified returns the modification time of the file at path.
func (a *Adapter) LastModified(ctx context.Context, path string) (time.Time, error) {
	fullPath, err := pathutil.SafeJoin(a.rootPath, path)
	if err != nil {
		return time.Time{}, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, object.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info.ModTime(), nil
}

// FileSize returns the size in bytes of the file at path.
func (a *Adapter) FileSize(ctx context.Context, path string) (int64, error) {
	fullPath, err := pathutil.SafeJoin(a.rootPath, path)
	if err != nil {
		return 0, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, object.ErrNotFound
		}
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info.Size(), nil
}

// ListContents returns the files under path in filesystem iteration order,
// as root-relative virtual paths. Directory names themselves are never
// returned; with deep set, subdirectories are descended into instead.
func (a *Adapter) ListContents(ctx context.Context, path string, deep bool) ([]string, error) {
	fullPath, err := pathutil.SafeJoin(a.rootPath, path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, object.ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, object.ErrNotFound
	}

	return a.listDir(fullPath, deep)
}

func (a *Adapter) listDir(dir string, deep bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		entryPath := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if deep {
				nested, err := a.listDir(entryPath, deep)
				if err != nil {
					return nil, err
				}
				paths = append(paths, nested...)
			}
			continue
		}

		rel, err := filepath.Rel(a.rootPath, entryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to relativize %s: %w", entryPath, err)
		}
		paths = append(paths, filepath.ToSlash(rel))
	}

	return paths, nil
}

// Move relocates a file with a rename, creating the destination's missing
// parent directories first.
func (a *Adapter) Move(ctx context.Context, source, destination string) error {
	srcPath, err := pathutil.SafeJoin(a.rootPath, source)
	if err != nil {
		return err
	}
	dstPath, err := pathutil.SafeJoin(a.rootPath, destination)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	if err := os.Rename(srcPath, dstPath); err != nil {
		if os.IsNotExist(err) {
			return object.ErrNotFound
		}
		return fmt.Errorf("failed to move %s to %s: %w", source, destination, err)
	}

	return nil
}

// Copy duplicates a file's content and permission bits. The destination's
// modification time is that of the copy itself.
func (a *Adapter) Copy(ctx context.Context, source, destination string) error {
	srcPath, err := pathutil.SafeJoin(a.rootPath, source)
	if err != nil {
		return err
	}
	dstPath, err := pathutil.SafeJoin(a.rootPath, destination)
	if err != nil {
		return err
	}

	info, err := os.Stat(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return object.ErrNotFound
		}
		return fmt.Errorf("failed to stat %s: %w", source, err)
	}

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", source, err)
	}

	if err := os.WriteFile(dstPath, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write file %s: %w", destination, err)
	}

	// WriteFile only applies the mode on creation; chmod keeps the source's
	// visibility when the destination already existed.
	if err := os.Chmod(dstPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to change permissions of %s: %w", destination, err)
	}

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
