// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/encoding/htmlindex"

	"codello.dev/asn1view/ber"
	"codello.dev/asn1view/oid"
)

const (
	formatText  = "text"
	formatTable = "table"
)

// config holds the effective settings of a run.
type config struct {
	Encoding  string
	MaxDepth  int
	Reparse   bool
	Format    string
	Single    bool
	CryptoPro bool
	OIDFiles  []string
	OIDs      map[string]string
}

func defaultConfig() config {
	return config{
		Encoding:  "utf-8",
		MaxDepth:  ber.DefaultMaxDepth,
		Format:    formatText,
		CryptoPro: true,
	}
}

// asn1view config.toml key mapping to run settings.
type fileConfig struct {
	Encoding  string            `toml:"encoding"`
	MaxDepth  int               `toml:"max_depth"`
	Reparse   bool              `toml:"reparse"`
	Format    string            `toml:"format"`
	Single    bool              `toml:"single"`
	CryptoPro bool              `toml:"cryptopro"`
	OIDFiles  []string          `toml:"oid_files"`
	OIDs      map[string]string `toml:"oids"`
}

// loadConfig overlays the settings of the TOML file at path on the defaults.
// Relative oid_files are resolved against the directory of path. The result is
// not validated; command-line flags are applied first.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("encoding") {
		cfg.Encoding = strings.TrimSpace(raw.Encoding)
	}
	if meta.IsDefined("max_depth") {
		cfg.MaxDepth = raw.MaxDepth
	}
	if meta.IsDefined("reparse") {
		cfg.Reparse = raw.Reparse
	}
	if meta.IsDefined("format") {
		cfg.Format = strings.TrimSpace(raw.Format)
	}
	if meta.IsDefined("single") {
		cfg.Single = raw.Single
	}
	if meta.IsDefined("cryptopro") {
		cfg.CryptoPro = raw.CryptoPro
	}
	for _, f := range raw.OIDFiles {
		f = strings.TrimSpace(f)
		if !filepath.IsAbs(f) {
			f = filepath.Join(filepath.Dir(path), f)
		}
		cfg.OIDFiles = append(cfg.OIDFiles, f)
	}
	cfg.OIDs = raw.OIDs
	return cfg, nil
}

// applyFlags overrides cfg with the flags set on the command line.
func (cfg *config) applyFlags(ctx *cli.Context) {
	if ctx.IsSet(encodingFlag.Name) {
		cfg.Encoding = ctx.String(encodingFlag.Name)
	}
	if ctx.IsSet(maxDepthFlag.Name) {
		cfg.MaxDepth = ctx.Int(maxDepthFlag.Name)
	}
	if ctx.IsSet(reparseFlag.Name) {
		cfg.Reparse = ctx.Bool(reparseFlag.Name)
	}
	if ctx.IsSet(formatFlag.Name) {
		cfg.Format = ctx.String(formatFlag.Name)
	}
	if ctx.IsSet(singleFlag.Name) {
		cfg.Single = ctx.Bool(singleFlag.Name)
	}
	if ctx.IsSet(cryptoProFlag.Name) {
		cfg.CryptoPro = ctx.Bool(cryptoProFlag.Name)
	}
	cfg.OIDFiles = append(cfg.OIDFiles, ctx.StringSlice(oidsFlag.Name)...)
}

func (cfg *config) validate() error {
	switch cfg.Format {
	case formatText, formatTable:
	default:
		return fmt.Errorf("unsupported format %q (expected %s or %s)", cfg.Format, formatText, formatTable)
	}
	if cfg.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive, got %d", cfg.MaxDepth)
	}
	if _, err := htmlindex.Get(cfg.Encoding); err != nil {
		return fmt.Errorf("unsupported text encoding %q", cfg.Encoding)
	}
	return nil
}

// decoder returns a Decoder for the settings of cfg.
func (cfg *config) decoder(logger *zerolog.Logger) (*ber.Decoder, error) {
	enc, err := htmlindex.Get(cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("unsupported text encoding %q", cfg.Encoding)
	}
	return &ber.Decoder{
		TextEncoding: enc,
		MaxDepth:     cfg.MaxDepth,
		Reparse:      cfg.Reparse,
		Logger:       logger,
	}, nil
}

// names assembles the object identifier table. Entries from oid files take
// precedence over the built-in table, inline entries take precedence over
// both.
func (cfg *config) names() (oid.Names, error) {
	var names oid.Names
	if cfg.CryptoPro {
		names = oid.CryptoPro()
	}
	for _, f := range cfg.OIDFiles {
		n, err := oid.LoadFile(f)
		if err != nil {
			return nil, err
		}
		names = names.Merge(n)
	}
	inline, err := oid.FromMap(cfg.OIDs)
	if err != nil {
		return nil, err
	}
	return names.Merge(inline), nil
}
