package localfs

import (
	"io/fs"

	"github.com/ebogdum/driftfs/object"
)

// visibilityMode maps a visibility onto the canonical POSIX permission bits
// for the resource kind.
func visibilityMode(resource object.Resource, visibility object.Visibility) fs.FileMode {
	switch {
	case resource == object.File && visibility == object.Public:
		return 0644
	case resource == object.File && visibility == object.Private:
		return 0600
	case resource == object.Directory && visibility == object.Public:
		return 0755
	default:
		return 0700
	}
}

// modeVisibility collapses POSIX permission bits into the two-state
// visibility model. Only the exact canonical private modes read back as
// Private; every other permission value is reported as Public. This is an
// intentionally lossy, two-bucket simplification.
func modeVisibility(resource object.Resource, mode fs.FileMode) object.Visibility {
	perm := mode.Perm()
	if (resource == object.File && perm == 0600) || (resource == object.Directory && perm == 0700) {
		return object.Private
	}
	return object.Public
}
