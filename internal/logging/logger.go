package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mkvreorder/internal/config"
)

// LogFileName is the JSON log written inside the configured log directory.
const LogFileName = "mkvreorder.log"

// Options describes logger construction parameters.
type Options struct {
	Level       string
	Format      string
	Writer      io.Writer
	Development bool
}

// New constructs a slog logger using the provided options. A nil Writer
// means stdout.
func New(opts Options) (*slog.Logger, error) {
	handler, err := newHandler(opts)
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}

func newHandler(opts Options) (slog.Handler, error) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(opts.Level))

	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	addSource := opts.Development || levelVar.Level() <= slog.LevelDebug

	switch format := strings.ToLower(strings.TrimSpace(opts.Format)); format {
	case "", "console":
		return newPrettyHandler(w, levelVar, addSource), nil
	case "json":
		return newJSONHandler(w, levelVar, addSource), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// NewFromConfig builds the application logger: the configured format on
// stdout and, when a log directory is set, JSON lines appended to
// <log_dir>/mkvreorder.log.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console"})
	}

	stdout, err := newHandler(Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Paths.LogDir) == "" {
		return slog.New(stdout), nil
	}

	if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	logPath := filepath.Join(cfg.Paths.LogDir, LogFileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", logPath, err)
	}
	fileHandler, err := newHandler(Options{Level: cfg.Logging.Level, Format: "json", Writer: file})
	if err != nil {
		return nil, err
	}
	return slog.New(TeeHandler(stdout, fileHandler)), nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
