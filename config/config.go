// Package config provides construction-time configuration for driftfs.
// It handles loading and validating configuration from YAML files and
// environment variables.
package config

// Config represents the complete library configuration
type Config struct {
	Backend string        `koanf:"backend"` // Backend to construct: "memory", "localfs" or "s3"
	Log     LogConfig     `koanf:"log"`
	LocalFS LocalFSConfig `koanf:"localfs"`
	S3      S3Config      `koanf:"s3"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// LocalFSConfig holds local disk backend configuration
type LocalFSConfig struct {
	RootPath         string `koanf:"root_path"`
	LazyRootCreation bool   `koanf:"lazy_root_creation"` // Create the root on first use instead of failing fast
}

// S3Config holds object storage backend configuration
type S3Config struct {
	Bucket         string `koanf:"bucket"`
	Region         string `koanf:"region"`
	Endpoint       string `koanf:"endpoint"` // Custom S3 endpoint (e.g., for MinIO)
	AccessKey      string `koanf:"access_key"`
	SecretKey      string `koanf:"secret_key"`
	ForcePathStyle bool   `koanf:"force_path_style"` // Required for MinIO
	DisableSSL     bool   `koanf:"disable_ssl"`
}
