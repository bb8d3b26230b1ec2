// Package pathutil provides handling for the virtual, slash-delimited paths
// used by the storage contract, plus root-bounded joining for the local
// disk backend.
package pathutil

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/ebogdum/driftfs/object"
)

// Clean normalizes a virtual path to its canonical form: slash-delimited,
// no leading or trailing separator, "" for the root. It performs the
// following checks:
// 1. Rejects NUL bytes and control characters
// 2. Rejects absolute paths that could escape a backend root
// 3. Resolves "." and ".." components
// 4. Rejects paths that climb above the root
func Clean(p string) (string, error) {
	if strings.ContainsRune(p, '\x00') {
		return "", object.ErrInvalidPath
	}
	for _, r := range p {
		if r < 32 {
			return "", object.ErrInvalidPath
		}
	}

	if strings.HasPrefix(p, "/") && p != "/" {
		return "", object.ErrInvalidPath
	}

	cleaned := path.Clean("/" + p)
	if cleaned == "/" {
		return "", nil
	}

	// path.Clean keeps leading ".." on rooted paths collapsed to "/", but a
	// depth walk is still needed to reject sequences like "a/../../b" that
	// climb above the root before descending again.
	depth := 0
	for _, part := range strings.Split(p, "/") {
		switch part {
		case "", ".":
		case "..":
			depth--
			if depth < 0 {
				return "", object.ErrInvalidPath
			}
		default:
			depth++
		}
	}

	return strings.TrimPrefix(cleaned, "/"), nil
}

// Parent returns the directory containing p, or "" when p sits at the root.
func Parent(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return ""
	}
	return p[:idx]
}

// Components splits a cleaned virtual path into its path components.
// The root has no components.
func Components(p string) []string {
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// IsAncestor reports whether dir is a proper ancestor of p: p must start
// with dir followed by a separator, and dir must not equal p. The root ""
// is an ancestor of every non-root path.
func IsAncestor(dir, p string) bool {
	if dir == p {
		return false
	}
	if dir == "" {
		return p != ""
	}
	return strings.HasPrefix(p, dir+"/")
}

// SafeJoin joins a backend root with a virtual path, ensuring the result
// stays within the root directory boundary. Returns ErrInvalidPath if the
// path would escape the root.
func SafeJoin(root, rel string) (string, error) {
	cleanRel, err := Clean(rel)
	if err != nil {
		return "", err
	}

	joined := filepath.Join(filepath.Clean(root), filepath.FromSlash(cleanRel))

	relPath, err := filepath.Rel(filepath.Clean(root), joined)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", object.ErrInvalidPath
	}

	return joined, nil
}
