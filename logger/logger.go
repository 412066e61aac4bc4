// Package logger builds the zerolog loggers used by the CLI and the valuation
// fan-out. Library packages take a zerolog.Logger rather than logging globally.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/meenmo/finsec/config"
)

// Options selects the level, format and destination of a logger.
type Options struct {
	Level  string
	Format string // json (default), console or pretty
	Env    string
	Writer io.Writer
}

// FromConfig returns the Options carried by cfg, writing to stderr.
func FromConfig(cfg *config.Config) Options {
	return Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Env: cfg.Env, Writer: os.Stderr}
}

// New creates a logger from opts.
func New(opts Options) zerolog.Logger {
	out := opts.Writer
	if out == nil {
		out = os.Stderr
	}
	if opts.Format == "console" || opts.Format == "pretty" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(ParseLevel(opts.Level)).With().Timestamp()
	if opts.Env != "" {
		ctx = ctx.Str("env", opts.Env)
	}
	return ctx.Logger()
}

// ParseLevel converts a level name to a zerolog.Level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
