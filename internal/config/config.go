package config

import (
	"fmt"
	"time"
)

// LatestVersion selects the most recent published release.
const LatestVersion = "latest"

// Config holds the main configuration for the application.
type Config struct {
	Version string        `json:"version"           yaml:"version"`
	Server  ServerConfig  `json:"server,omitempty"  yaml:"server,omitempty"`
	Storage StorageConfig `json:"storage,omitempty" yaml:"storage,omitempty"`
	Release ReleaseConfig `json:"release,omitempty" yaml:"release,omitempty"`
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// ServerConfig holds the listening ports of the serving layer.
type ServerConfig struct {
	HTTPPort   int    `json:"http_port,omitempty"   yaml:"http_port,omitempty"`
	GRPCPort   int    `json:"grpc_port,omitempty"   yaml:"grpc_port,omitempty"` // 0 disables the health service
	CORSOrigin string `json:"cors_origin,omitempty" yaml:"cors_origin,omitempty"`
}

// StorageConfig holds configuration for the artifact cache.
type StorageConfig struct {
	ModelsDir string `json:"models_dir,omitempty" yaml:"models_dir,omitempty"`
}

// ReleaseConfig locates artifacts in a GitHub-style release store.
type ReleaseConfig struct {
	Repo      string        `json:"repo,omitempty"      yaml:"repo,omitempty"`
	Version   string        `json:"version,omitempty"   yaml:"version,omitempty"`
	BaseURL   string        `json:"base_url,omitempty"  yaml:"base_url,omitempty"`
	Extension string        `json:"extension,omitempty" yaml:"extension,omitempty"`
	Timeout   time.Duration `json:"timeout,omitempty"   yaml:"timeout,omitempty"`
}

// LoggingConfig holds logger settings. Level is applied live on reload.
// The rotation limits only apply when File is set.
type LoggingConfig struct {
	Level      string `json:"level,omitempty"        yaml:"level,omitempty"`
	File       string `json:"file,omitempty"         yaml:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty"  yaml:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty"  yaml:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty"`
}

// IsLatest reports whether the configured version is the latest alias.
func (r ReleaseConfig) IsLatest() bool {
	return r.Version == "" || r.Version == LatestVersion
}

// ReleasesPage returns the human-facing release listing of the repository.
func (r ReleaseConfig) ReleasesPage() string {
	return fmt.Sprintf("%s/%s/releases", r.BaseURL, r.Repo)
}

// RequiresRestart reports whether moving from c to next changes settings that
// are only read at startup.
func (c *Config) RequiresRestart(next *Config) bool {
	current, updated := c.Logging, next.Logging
	current.Level, updated.Level = "", ""

	return c.Server != next.Server || c.Storage != next.Storage || c.Release != next.Release || current != updated
}
