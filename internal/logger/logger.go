// Package logger builds the zerolog logger shared by the CLI and the TUI.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options selects where and how logs are written
type Options struct {
	Level  string // zerolog level name, "info" when empty
	Format string // "console" or "json"
	// File receives the logs. Empty means Writer (or discard when Writer is nil).
	File   string
	Writer io.Writer
}

// Nop returns a logger that drops everything
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// New constructs a zerolog logger from options. The returned closer releases
// the log file, if one was opened.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level := opts.Level
	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	out := opts.Writer
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o700); err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = f
	}
	if out == nil {
		return zerolog.Nop(), closer, nil
	}

	var log zerolog.Logger
	switch strings.ToLower(opts.Format) {
	case "", "console":
		log = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    opts.File != "",
		}).With().Timestamp().Logger()
	case "json":
		log = zerolog.New(out).With().Timestamp().Logger()
	default:
		_ = closer.Close()
		return zerolog.Logger{}, nil, errors.New("unsupported log format")
	}

	return log.Level(lvl), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
