package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/doda2025-team8/model-service/internal/config"
	"github.com/doda2025-team8/model-service/internal/logger"
	grpcserver "github.com/doda2025-team8/model-service/internal/server/grpc"
	httpserver "github.com/doda2025-team8/model-service/internal/server/http"
	"github.com/doda2025-team8/model-service/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the model artifacts and serve predictions (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, level, err := setup(cmd)
	if err != nil {
		return err
	}

	slog.Info("Starting SMS Spam Detection Model Service", "port", cfg.Server.HTTPPort, "version", version)

	manager, err := newManager(cfg)
	if err != nil {
		return err
	}

	bundle, err := manager.LoadAll(ctx)
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(cfgFile); statErr == nil {
		watcher, err := config.NewWatcher(cfgFile, schemaFile, cfg, func(next *config.Config, err error) {
			if err != nil {
				slog.Error("Failed to reload config", "error", err)
				return
			}

			level.Set(logger.ParseLevel(next.Logging.Level))
			slog.Info("Config reloaded", "log_level", level.Level())

			if cfg.RequiresRestart(next) {
				slog.Warn("Config change requires a restart to take effect", "config", cfgFile)
			}
		})
		if err != nil {
			slog.Warn("Config hot reload disabled", "error", err)
		} else {
			defer watcher.Close()
		}
	}

	httpSrv := httpserver.NewServer(httpserver.Options{
		Port:       cfg.Server.HTTPPort,
		CORSOrigin: cfg.Server.CORSOrigin,
		Version:    version,
	}, service.NewClassifier(bundle), manager.Registry())

	httpListener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.HTTPPort))
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}

	var (
		grpcSrv      *grpcserver.Server
		grpcListener net.Listener
	)
	if cfg.Server.GRPCPort > 0 {
		grpcListener, err = net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
		if err != nil {
			httpListener.Close()
			return fmt.Errorf("grpc listen: %w", err)
		}

		grpcSrv = grpcserver.NewServer()
		grpcSrv.SetServing(true)
	}

	slog.Info("Model Service Ready", "port", cfg.Server.HTTPPort, "grpc_port", cfg.Server.GRPCPort)

	return serveUntilDone(ctx, httpSrv, httpListener, grpcSrv, grpcListener)
}

// serveUntilDone runs the HTTP server, and the gRPC server when grpcSrv is
// non-nil, until ctx is done or either server fails. Both are stopped before
// it returns. A server failure takes precedence over a shutdown error.
func serveUntilDone(ctx context.Context, httpSrv *httpserver.Server, httpListener net.Listener, grpcSrv *grpcserver.Server, grpcListener net.Listener) error {
	errCh := make(chan error, 2)

	go func() { errCh <- httpSrv.Serve(httpListener) }()
	if grpcSrv != nil {
		go func() { errCh <- grpcSrv.Serve(grpcListener) }()
	}

	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info("Shutting down")
	case serveErr = <-errCh:
		if serveErr == nil {
			serveErr = errors.New("server stopped unexpectedly")
		}
		slog.Error("Server failed", "error", serveErr)
	}

	if grpcSrv != nil {
		grpcSrv.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	shutdownErr := httpSrv.Shutdown(shutdownCtx)
	if serveErr != nil {
		return serveErr
	}
	if shutdownErr != nil && !errors.Is(shutdownErr, context.DeadlineExceeded) {
		return fmt.Errorf("http shutdown: %w", shutdownErr)
	}

	return nil
}
