// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
)

// An input is a named buffer to be decoded.
type input struct {
	name string
	data []byte
}

// readInputs collects the buffers selected on the command line: the --hex
// value, the named files or stdin.
func readInputs(ctx *cli.Context) ([]input, error) {
	var inputs []input
	switch {
	case ctx.IsSet(hexFlag.Name):
		data, err := decodeHex(ctx.String(hexFlag.Name))
		if err != nil {
			return nil, err
		}
		return []input{{name: "hex", data: data}}, nil

	case ctx.NArg() == 0:
		data, err := io.ReadAll(ctx.App.Reader)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		inputs = append(inputs, input{name: "-", data: data})

	default:
		for _, name := range ctx.Args().Slice() {
			data, err := os.ReadFile(name)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, input{name: name, data: data})
		}
	}

	if !ctx.Bool(base64Flag.Name) {
		return inputs, nil
	}
	var decoded []input
	for _, in := range inputs {
		ins, err := decodeText(in)
		if err != nil {
			return nil, err
		}
		decoded = append(decoded, ins...)
	}
	return decoded, nil
}

// decodeHex decodes hexadecimal data. Whitespace, colons and a leading 0x are
// ignored.
func decodeHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.ReplaceAll(s, ":", "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}
	return data, nil
}

// decodeText decodes the PEM blocks in in. Every block becomes a separate
// input. If in contains no PEM block its content is decoded as plain base64.
func decodeText(in input) ([]input, error) {
	var out []input
	rest := in.data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		out = append(out, input{
			name: in.name + "[" + strconv.Itoa(len(out)) + " " + block.Type + "]",
			data: block.Bytes,
		})
	}
	if len(out) > 0 {
		return out, nil
	}

	s := string(bytes.Join(bytes.Fields(in.data), nil))
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid base64 data: %w", in.name, err)
	}
	return []input{{name: in.name, data: data}}, nil
}
