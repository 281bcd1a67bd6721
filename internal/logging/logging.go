// Package logging builds the zerolog logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dallionking/project-estimator/internal/config"
)

// Options controls where logs go.
type Options struct {
	// Console receives logs when no file is configured. Nil discards them,
	// which is what the TUI wants while it owns the terminal.
	Console io.Writer
	// Verbose forces debug level.
	Verbose bool
	NoColor bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup returns a logger for cfg. The closer releases the log file, if any.
func Setup(cfg config.LogConfig, opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	var out io.Writer
	var closer io.Closer = nopCloser{}
	color := !opts.NoColor
	switch {
	case cfg.File != "":
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("opening log file: %w", err)
		}
		out, closer, color = f, f, false
	case opts.Console != nil:
		out = opts.Console
	default:
		return zerolog.Nop(), closer, nil
	}

	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: !color}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), closer, nil
}
