// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging configures the console logger of the asn1view command.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
)

// Environment variables overriding the defaults of [Config].
const (
	EnvLogLevel     = "ASN1VIEW_LOG_LEVEL"
	EnvLogTimestamp = "ASN1VIEW_LOG_TIMESTAMP"
	EnvLogNoColor   = "ASN1VIEW_LOG_NOCOLOR"
)

// Config holds the settings of a console logger.
type Config struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
}

// DefaultConfig returns the settings used without environment overrides. If
// verbose is set, debug messages are enabled.
func DefaultConfig(verbose bool) Config {
	cfg := Config{Level: zerolog.WarnLevel}
	if verbose {
		cfg.Level = zerolog.DebugLevel
	}
	return cfg
}

// New returns a logger writing human readable output to stderr. The settings
// are taken from DefaultConfig and the environment.
func New(verbose bool) zerolog.Logger {
	cfg := DefaultConfig(verbose)
	ApplyEnvOverrides(&cfg, os.Getenv)
	return NewWithWriter(colorable.NewColorableStderr(), cfg)
}

// NewWithWriter returns a console logger writing to w.
func NewWithWriter(w io.Writer, cfg Config) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    cfg.NoColor,
		TimeFormat: time.RFC3339,
	}
	if !cfg.Timestamp {
		output.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	ctx := zerolog.New(output).Level(cfg.Level).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger()
}

// ApplyEnvOverrides updates cfg from the environment variables returned by
// getenv. Unset or unparsable variables are ignored.
func ApplyEnvOverrides(cfg *Config, getenv func(string) string) {
	if lvl, ok := parseLevel(getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(getenv(EnvLogTimestamp)); ok {
		cfg.Timestamp = v
	}
	if v, ok := parseBool(getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
