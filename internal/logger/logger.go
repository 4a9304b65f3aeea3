package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/doda2025-team8/model-service/internal/env"
	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the process logger.
type Options struct {
	level      slog.Leveler
	output     io.Writer
	logToFile  bool
	logFile    string
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
}

// Option configures Options.
type Option func(*Options)

// WithLevel sets the minimum level. Pass a *slog.LevelVar to change it at runtime.
func WithLevel(level slog.Leveler) Option {
	return func(o *Options) {
		o.level = level
	}
}

// WithOutput sets the console writer. Defaults to os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(o *Options) {
		o.output = w
	}
}

// WithLogToFile enables writing logs to a rotated file in addition to the console.
func WithLogToFile(enabled bool) Option {
	return func(o *Options) {
		o.logToFile = enabled
	}
}

// WithLogFile sets the path of the rotated log file.
func WithLogFile(path string) Option {
	return func(o *Options) {
		o.logFile = path
	}
}

// WithRotation sets lumberjack rotation limits.
func WithRotation(maxSizeMB, maxBackups, maxAgeDays int) Option {
	return func(o *Options) {
		o.maxSizeMB = maxSizeMB
		o.maxBackups = maxBackups
		o.maxAgeDays = maxAgeDays
	}
}

// New creates a logger for the given environment.
// Development logs are colored via tint, production logs are JSON.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	o := &Options{
		level:      slog.LevelInfo,
		output:     os.Stderr,
		logFile:    filepath.Join("logs", "model-service.log"),
		maxSizeMB:  50,
		maxBackups: 3,
		maxAgeDays: 28,
	}
	for _, opt := range opts {
		opt(o)
	}

	w := o.output
	if o.logToFile && o.logFile != "" {
		w = io.MultiWriter(o.output, o.rotatingFile())
	}

	if environment.IsProduction() {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: o.level}))
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      o.level,
		TimeFormat: time.Kitchen,
		NoColor:    o.logToFile || !isTerminal(o.output),
	}))
}

// rotatingFile returns the lumberjack writer for the configured log file.
func (o *Options) rotatingFile() *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   o.logFile,
		MaxSize:    o.maxSizeMB,
		MaxBackups: o.maxBackups,
		MaxAge:     o.maxAgeDays,
		Compress:   true,
	}
}

// ParseLevel converts a level name into a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}

	return level
}

// isTerminal reports whether w is a character device.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
