package filesystem

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/ebogdum/driftfs/config"
)

func TestFromConfigMemory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend = "memory"

	fs, err := FromConfig(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}

	ctx := context.Background()
	if err := fs.Write(ctx, "file.txt", []byte("x")); err != nil {
		t.Fatalf("write through constructed filesystem failed: %v", err)
	}
	exists, err := fs.FileExists(ctx, "file.txt")
	if err != nil || !exists {
		t.Fatalf("file should exist (exists=%v, err=%v)", exists, err)
	}
}

func TestFromConfigLocalFS(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend = "localfs"
	cfg.LocalFS.RootPath = t.TempDir()

	fs, err := FromConfig(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}

	ctx := context.Background()
	if err := fs.Write(ctx, "dir/file.txt", []byte("x")); err != nil {
		t.Fatalf("write through constructed filesystem failed: %v", err)
	}
	exists, err := fs.DirectoryExists(ctx, "dir")
	if err != nil || !exists {
		t.Fatalf("directory should exist (exists=%v, err=%v)", exists, err)
	}
}

func TestFromConfigUnknownBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend = "tape"

	if _, err := FromConfig(cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown backend type")
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level  string
		format string
	}{
		{"debug", "json"},
		{"info", "console"},
		{"warn", "json"},
		{"error", "console"},
		{"bogus", "json"},
	}

	for _, tt := range tests {
		logger, err := NewLogger(config.LogConfig{Level: tt.level, Format: tt.format})
		if err != nil {
			t.Errorf("NewLogger(%q, %q) failed: %v", tt.level, tt.format, err)
			continue
		}
		logger.Debug("probe")
	}
}
