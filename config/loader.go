package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Load loads configuration from multiple sources with strict priority:
// 1. Environment variables (highest priority)
// 2. Config file (driftfs.yaml in the working directory, if present)
// 3. Defaults (lowest priority)
func Load() (Config, error) {
	return LoadFromFile("")
}

// LoadFromFile loads configuration like Load but from a specific config file.
// An empty path falls back to the default config file locations.
func LoadFromFile(configFilePath string) (Config, error) {
	k := koanf.New(".")

	// Load default configuration first
	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load default config: %w", err)
	}

	if configFilePath != "" {
		if _, err := os.Stat(configFilePath); err != nil {
			return Config{}, fmt.Errorf("specified config file %s not found: %w", configFilePath, err)
		}
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", configFilePath, err)
		}
	} else {
		for _, configFile := range []string{"driftfs.yaml", "driftfs.yml"} {
			if _, err := os.Stat(configFile); err == nil {
				if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
					return Config{}, fmt.Errorf("failed to load config file %s: %w", configFile, err)
				}
				break
			}
		}
	}

	// Load environment variables with DRIFTFS_ prefix
	if err := k.Load(env.Provider("DRIFTFS_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "DRIFTFS_")), "_", ".", -1)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig validates that required configuration fields are set
func validateConfig(cfg *Config) error {
	switch cfg.Backend {
	case "memory":
	case "localfs":
		if cfg.LocalFS.RootPath == "" {
			return fmt.Errorf("localfs.root_path is required")
		}
	case "s3":
		if cfg.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket is required")
		}
	default:
		return fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	return nil
}
