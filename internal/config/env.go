package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/doda2025-team8/model-service/internal/envvar"
	"github.com/doda2025-team8/model-service/internal/xfs"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"server.http_port":   envvar.ModelServicePort,
	"server.grpc_port":   envvar.ModelServiceGRPCPort,
	"storage.models_dir": envvar.ModelDir,
	"release.repo":       envvar.GitHubRepo,
	"release.version":    envvar.ModelVersion,
	"release.timeout":    envvar.ModelFetchTimeout,
	"logging.level":      envvar.ModelServiceLogLevel,
	"logging.file":       envvar.ModelServiceLogFile,
}

// ApplyEnv overlays environment variables onto cfg. Unset or empty variables
// leave the current value untouched.
func ApplyEnv(cfg *Config) error {
	v := viper.New()
	for key, name := range envBindings {
		if err := v.BindEnv(key, name); err != nil {
			return fmt.Errorf("config: failed to bind %s: %w", name, err)
		}
	}

	if v.IsSet("server.http_port") {
		port := v.GetInt("server.http_port")
		if port <= 0 || port > 65535 {
			return fmt.Errorf("config: invalid %s %q", envvar.ModelServicePort, v.GetString("server.http_port"))
		}
		cfg.Server.HTTPPort = port
	}
	if v.IsSet("server.grpc_port") {
		port := v.GetInt("server.grpc_port")
		if port < 0 || port > 65535 {
			return fmt.Errorf("config: invalid %s %q", envvar.ModelServiceGRPCPort, v.GetString("server.grpc_port"))
		}
		cfg.Server.GRPCPort = port
	}
	if v.IsSet("storage.models_dir") {
		cfg.Storage.ModelsDir = xfs.ExpandTilde(v.GetString("storage.models_dir"))
	}
	if v.IsSet("release.repo") {
		cfg.Release.Repo = v.GetString("release.repo")
	}
	if v.IsSet("release.version") {
		cfg.Release.Version = v.GetString("release.version")
	}
	if v.IsSet("release.timeout") {
		raw := v.GetString("release.timeout")
		timeout, err := parseTimeout(raw)
		if err != nil || timeout <= 0 {
			return fmt.Errorf("config: invalid %s %q", envvar.ModelFetchTimeout, raw)
		}
		cfg.Release.Timeout = timeout
	}
	if v.IsSet("logging.level") {
		cfg.Logging.Level = v.GetString("logging.level")
	}
	if v.IsSet("logging.file") {
		cfg.Logging.File = v.GetString("logging.file")
	}

	return nil
}

// parseTimeout accepts a Go duration ("90s", "2m") or a bare number of seconds.
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	return time.ParseDuration(raw)
}
