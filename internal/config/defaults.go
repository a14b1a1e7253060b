package config

import (
	"os"
	"path/filepath"
	"time"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			DataDir: getDefaultDataDir(),
			Debug:   false,
		},
		Engine: EngineConfig{
			DefaultTimeout: 30 * time.Second,
			Backoff: BackoffConfig{
				InitialDelay: time.Second,
				MaxDelay:     10 * time.Second,
				Multiplier:   2,
			},
		},
		Health: HealthConfig{
			ProbeTimeout: 5 * time.Second,
			Concurrency:  4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// getDefaultDataDir returns the default data directory, falling back to a
// temporary directory if the user home cannot be determined.
func getDefaultDataDir() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".cs2-coach")
	}
	return filepath.Join(userHome, ".cs2-coach")
}
