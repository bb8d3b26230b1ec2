// Package mimeutil infers MIME types from file extensions. Inference is
// purely name-based: it never touches the backing store.
package mimeutil

import (
	"mime"
	"path"
	"strings"
)

// DefaultType is returned when no better inference is possible.
const DefaultType = "application/octet-stream"

// Detect returns the MIME type for a path based on its extension.
// It never fails: unknown extensions map to DefaultType.
func Detect(p string) string {
	ext := strings.ToLower(path.Ext(p))
	switch ext {
	case ".html", ".htm":
		return "text/html"
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	case ".json":
		return "application/json"
	case ".xml":
		return "application/xml"
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".txt":
		return "text/plain"
	case ".md":
		return "text/markdown"
	}

	if t := mime.TypeByExtension(ext); t != "" {
		// Strip any charset parameter so all backends report the bare type.
		if idx := strings.IndexByte(t, ';'); idx >= 0 {
			t = strings.TrimSpace(t[:idx])
		}
		return t
	}

	return DefaultType
}
