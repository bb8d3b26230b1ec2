package filesystem

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ebogdum/driftfs/backends"
	"github.com/ebogdum/driftfs/backends/instrumented"
	"github.com/ebogdum/driftfs/backends/localfs"
	"github.com/ebogdum/driftfs/backends/memory"
	"github.com/ebogdum/driftfs/backends/s3"
	"github.com/ebogdum/driftfs/config"
)

// FromConfig constructs a filesystem over the backend named in cfg.Backend.
// The adapter is wrapped with metrics instrumentation before the facade
// takes ownership of it.
func FromConfig(cfg config.Config, logger *zap.Logger) (*Filesystem, error) {
	adapter, err := newAdapter(cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("Initialized storage backend", zap.String("backend", cfg.Backend))
	return New(instrumented.Wrap(adapter, cfg.Backend)), nil
}

// newAdapter selects the backend adapter by type string.
func newAdapter(cfg config.Config, logger *zap.Logger) (backends.Adapter, error) {
	switch cfg.Backend {
	case "memory":
		return memory.New(), nil
	case "localfs":
		adapter, err := localfs.New(cfg.LocalFS)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize localfs backend: %w", err)
		}
		return adapter, nil
	case "s3":
		adapter, err := s3.New(cfg.S3, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 backend: %w", err)
		}
		return adapter, nil
	default:
		return nil, fmt.Errorf("unknown backend type: %q", cfg.Backend)
	}
}

// NewLogger creates a zap logger based on configuration.
func NewLogger(logCfg config.LogConfig) (*zap.Logger, error) {
	var cfg zap.Config

	if logCfg.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	switch logCfg.Level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	return cfg.Build()
}
