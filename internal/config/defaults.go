package config

import (
	"time"
)

const (
	// DefaultModelsDir is the artifact cache directory inside the container image.
	DefaultModelsDir = "/app/models"

	// DefaultRepo is the repository whose releases publish the artifacts.
	DefaultRepo = "doda2025-team8/model-service"

	// DefaultBaseURL is the release store host.
	DefaultBaseURL = "https://github.com"

	// DefaultExtension is the file extension of cached artifacts.
	DefaultExtension = ".joblib"

	// DefaultFetchTimeout bounds connecting and each read of a download.
	DefaultFetchTimeout = 60 * time.Second

	// Log file rotation limits.
	DefaultLogMaxSizeMB  = 50
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)

// DefaultHTTPPort returns the default HTTP port.
func DefaultHTTPPort() int {
	return 8081
}

// DefaultGRPCPort returns the default gRPC health port. Zero disables it.
func DefaultGRPCPort() int {
	return 0
}

// DefaultConfigPath returns the default path of the optional config file.
func DefaultConfigPath() string {
	return "/etc/model-service/config.yaml"
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Version: "1",
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort(),
			GRPCPort: DefaultGRPCPort(),
		},
		Storage: StorageConfig{
			ModelsDir: DefaultModelsDir,
		},
		Release: ReleaseConfig{
			Repo:      DefaultRepo,
			Version:   LatestVersion,
			BaseURL:   DefaultBaseURL,
			Extension: DefaultExtension,
			Timeout:   DefaultFetchTimeout,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
		},
	}
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = d.Server.HTTPPort
	}
	if c.Storage.ModelsDir == "" {
		c.Storage.ModelsDir = d.Storage.ModelsDir
	}
	if c.Release.Repo == "" {
		c.Release.Repo = d.Release.Repo
	}
	if c.Release.Version == "" {
		c.Release.Version = d.Release.Version
	}
	if c.Release.BaseURL == "" {
		c.Release.BaseURL = d.Release.BaseURL
	}
	if c.Release.Extension == "" {
		c.Release.Extension = d.Release.Extension
	}
	if c.Release.Timeout <= 0 {
		c.Release.Timeout = d.Release.Timeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = d.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = d.Logging.MaxBackups
	}
	if c.Logging.MaxAgeDays == 0 {
		c.Logging.MaxAgeDays = d.Logging.MaxAgeDays
	}
}
