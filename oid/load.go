// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oid

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"codello.dev/asn1view"
)

// tableFile is the layout of a TOML name table:
//
//	[oids]
//	"1.2.643.2.2.36.0" = "cryptopro-XchA"
type tableFile struct {
	OIDs map[string]string `toml:"oids"`
}

// Load reads a name table in TOML format from r.
func Load(r io.Reader) (Names, error) {
	var raw tableFile
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("load oid table: %w", err)
	}
	return FromMap(raw.OIDs)
}

// LoadFile reads a name table in TOML format from the named file.
func LoadFile(path string) (Names, error) {
	var raw tableFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("load oid table: %w", err)
	}
	n, err := FromMap(raw.OIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// FromMap validates the keys of m and returns them as a table. Keys are
// normalized, so "1.2.0840" is stored as "1.2.840".
func FromMap(m map[string]string) (Names, error) {
	n := make(Names, len(m))
	for k, v := range m {
		id, ok := asn1view.ParseObjectIdentifier(strings.TrimSpace(k))
		if !ok {
			return nil, fmt.Errorf("load oid table: invalid object identifier %q", k)
		}
		n[id.String()] = v
	}
	return n, nil
}
