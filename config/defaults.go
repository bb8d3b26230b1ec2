package config

// DefaultConfig returns a Config struct with sensible default values
func DefaultConfig() Config {
	return Config{
		Backend: "memory",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		LocalFS: LocalFSConfig{
			RootPath:         "/var/lib/driftfs",
			LazyRootCreation: false,
		},
		S3: S3Config{
			Region: "us-east-1",
		},
	}
}
