// SPDX-License-Identifier: MIT

// Package logging builds the structured loggers used by the CLI and runner.
//
// Libraries in this module never log by default; they accept a *slog.Logger
// through a WithLogger option. This package turns a level and format name
// into such a logger.
//
//	log, err := logging.New(logging.Config{Level: "debug", Format: "json"})
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrInvalidConfig is returned for an unknown level or format.
var ErrInvalidConfig = errors.New("logging: invalid config")

// Formats accepted by Config.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config selects the logger shape. The zero value is info-level text on stderr.
type Config struct {
	// Level is debug, info, warn or error. Empty means info.
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`

	// Format is text or json. Empty means text.
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`

	// Service, when set, is attached to every record.
	Service string `yaml:"service"`

	// Writer defaults to os.Stderr.
	Writer io.Writer `yaml:"-"`
}

// ParseLevel maps a level name to slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: unknown level %q", ErrInvalidConfig, s)
}

// New builds a logger from cfg.
func New(cfg Config) (*slog.Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", FormatText:
		h = slog.NewTextHandler(w, opts)
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, cfg.Format)
	}

	log := slog.New(h)
	if cfg.Service != "" {
		log = log.With(slog.String("service", cfg.Service))
	}
	return log, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
