// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// asn1view dumps BER and DER encoded data in readable form.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"codello.dev/asn1view/ber"
	"codello.dev/asn1view/internal/logging"
	"codello.dev/asn1view/render"
)

// Command line flags.
var (
	hexFlag = &cli.StringFlag{
		Name:  "hex",
		Usage: "Dump the given hex data instead of reading files",
	}
	base64Flag = &cli.BoolFlag{
		Name:  "base64",
		Usage: "Input is base64 or PEM encoded",
	}
	encodingFlag = &cli.StringFlag{
		Name:    "encoding",
		Usage:   "Text encoding of string values (WHATWG encoding label)",
		Value:   "utf-8",
		EnvVars: []string{"ASN1VIEW_ENCODING"},
	}
	maxDepthFlag = &cli.IntFlag{
		Name:  "max-depth",
		Usage: "Maximum nesting depth of constructed values",
		Value: ber.DefaultMaxDepth,
	}
	reparseFlag = &cli.BoolFlag{
		Name:  "reparse",
		Usage: "Try to decode the content of primitive values as nested data",
	}
	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Output format (text or table)",
		Value: formatText,
	}
	singleFlag = &cli.BoolFlag{
		Name:  "single",
		Usage: "Print only the first element of every input, discard the rest",
	}
	oidsFlag = &cli.StringSliceFlag{
		Name:  "oids",
		Usage: "Load object identifier names from a TOML file (repeatable)",
	}
	cryptoProFlag = &cli.BoolFlag{
		Name:  "cryptopro",
		Usage: "Include the built-in CryptoPro object identifier names",
		Value: true,
	}
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "TOML configuration file",
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Enable debug output",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:      "asn1view",
		Usage:     "dump BER/DER encoded data in readable form",
		ArgsUsage: "[file...]",
		Description: `Decodes ASN.1 data without a schema and prints the resulting tree.
If no file is given, data is read from stdin.`,
		Flags: []cli.Flag{
			hexFlag,
			base64Flag,
			encodingFlag,
			maxDepthFlag,
			reparseFlag,
			formatFlag,
			singleFlag,
			oidsFlag,
			cryptoProFlag,
			configFlag,
			verboseFlag,
		},
		Action:    dumpAction,
		Writer:    colorable.NewColorableStdout(),
		ErrWriter: colorable.NewColorableStderr(),
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func dumpAction(ctx *cli.Context) error {
	logger := logging.New(ctx.Bool(verboseFlag.Name))

	cfg := defaultConfig()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = loadConfig(path); err != nil {
			return err
		}
		logger.Debug().Str("path", path).Msg("loaded config")
	}
	cfg.applyFlags(ctx)
	if err := cfg.validate(); err != nil {
		return err
	}

	dec, err := cfg.decoder(&logger)
	if err != nil {
		return err
	}
	names, err := cfg.names()
	if err != nil {
		return err
	}
	inputs, err := readInputs(ctx)
	if err != nil {
		return err
	}

	results, err := decodeInputs(dec, inputs, cfg.Single, logger)
	if err != nil {
		return err
	}
	p := &render.Printer{Names: names}
	return printResults(ctx.App.Writer, p, cfg.Format, inputs, results)
}

// decodeInputs decodes all inputs concurrently. The results are in input
// order. If single is set, only the first element of every input is decoded.
func decodeInputs(dec *ber.Decoder, inputs []input, single bool, logger zerolog.Logger) ([][]*ber.Node, error) {
	results := make([][]*ber.Node, len(inputs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range inputs {
		g.Go(func() error {
			var err error
			if single {
				var n *ber.Node
				if n, err = dec.Decode(in.data); err == nil {
					results[i] = []*ber.Node{n}
					if n.Remains > 0 {
						logger.Debug().Str("input", in.name).Int("bytes", n.Remains).Msg("discarding trailing data")
					}
				}
			} else {
				results[i], err = dec.DecodeAll(in.data)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", in.name, err)
			}
			logger.Debug().Str("input", in.name).Int("size", len(in.data)).Msg("decoded")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// printResults writes the decoded trees to w. With multiple inputs every
// result is preceded by the name of its input.
func printResults(w io.Writer, p *render.Printer, format string, inputs []input, results [][]*ber.Node) error {
	for i, nodes := range results {
		if len(inputs) > 1 {
			if _, err := fmt.Fprintf(w, "# %s\n", inputs[i].name); err != nil {
				return err
			}
		}
		if format == formatTable {
			if err := p.FprintTable(w, nodes...); err != nil {
				return err
			}
			continue
		}
		for _, n := range nodes {
			if err := p.Fprint(w, n); err != nil {
				return err
			}
		}
	}
	return nil
}
