// Command model-service serves the SMS spam classifier over HTTP.
//
// On startup it makes the preprocessor and model artifacts available in the
// models directory, downloading them from a GitHub release when they are not
// cached, and refuses to serve if either cannot be loaded.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/doda2025-team8/model-service/internal/backend"
	"github.com/doda2025-team8/model-service/internal/backend/bayes"
	"github.com/doda2025-team8/model-service/internal/backend/textproc"
	"github.com/doda2025-team8/model-service/internal/config"
	"github.com/doda2025-team8/model-service/internal/env"
	"github.com/doda2025-team8/model-service/internal/logger"
	"github.com/doda2025-team8/model-service/internal/model"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

var (
	cfgFile    string
	schemaFile string
)

var rootCmd = &cobra.Command{
	Use:           "model-service",
	Short:         "SMS spam classifier model service",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var acqErr *model.AcquisitionError
		switch {
		case errors.Is(err, context.Canceled):
			slog.Warn("Interrupted", "error", err)
		case errors.As(err, &acqErr):
			fmt.Fprint(os.Stderr, acqErr.Diagnostic())
		default:
			slog.Error("Execution failed", "error", err)
		}
		os.Exit(exitCodeFromError(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigPath(), "Path to config file (optional unless set explicitly)")
	rootCmd.PersistentFlags().StringVar(&schemaFile, "schema", "", "Path to config schema file (default is the embedded schema)")
}

// setup loads the configuration and installs the default logger. The
// returned LevelVar lets config reloads change the level live.
func setup(cmd *cobra.Command) (*config.Config, *slog.LevelVar, error) {
	cfg, err := config.Load(cfgFile, schemaFile, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, nil, err
	}

	level := new(slog.LevelVar)
	level.Set(logger.ParseLevel(cfg.Logging.Level))

	slog.SetDefault(
		logger.New(env.FromEnv(),
			logger.WithLevel(level),
			logger.WithLogToFile(cfg.Logging.File != ""),
			logger.WithLogFile(cfg.Logging.File),
			logger.WithRotation(cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups, cfg.Logging.MaxAgeDays),
		),
	)

	return cfg, level, nil
}

// newManager builds a model manager that decodes every artifact kind this
// service ships with.
func newManager(cfg *config.Config) (*model.Manager, error) {
	backends := backend.NewRegistry()

	if err := textproc.Register(backends); err != nil {
		return nil, err
	}
	if err := bayes.Register(backends); err != nil {
		return nil, err
	}

	return model.NewManager(cfg, backends)
}
