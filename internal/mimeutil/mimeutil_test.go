package mimeutil

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"notes/todo.txt", "text/plain"},
		{"index.html", "text/html"},
		{"logo.PNG", "image/png"},
		{"report.pdf", "application/pdf"},
		{"data.json", "application/json"},
		{"README.md", "text/markdown"},
		{"archive.unknownext", DefaultType},
		{"noextension", DefaultType},
	}

	for _, tt := range tests {
		if got := Detect(tt.path); got != tt.expected {
			t.Errorf("Detect(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}
