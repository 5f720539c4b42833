// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package oid provides tables mapping object identifiers to display names.
//
// A [Names] table is plain data. It is passed to the consumers that need it
// (see [codello.dev/asn1view/render]) instead of being kept in package state.
// Tables can be built in code, taken from [CryptoPro] or loaded from TOML files
// using [Load] and [LoadFile].
package oid

import (
	"maps"

	"codello.dev/asn1view"
)

// Names maps object identifiers in dotted-decimal notation to display names.
// The zero value is an empty table that can be used for lookups.
type Names map[string]string

// Lookup returns the name registered for id.
func (n Names) Lookup(id asn1view.ObjectIdentifier) (string, bool) {
	name, ok := n[id.String()]
	return name, ok
}

// Name returns the name registered for id or the dotted-decimal notation of id
// if there is none.
func (n Names) Name(id asn1view.ObjectIdentifier) string {
	if name, ok := n.Lookup(id); ok {
		return name
	}
	return id.String()
}

// Merge returns a new table holding the entries of n and all others. Later
// tables take precedence.
func (n Names) Merge(others ...Names) Names {
	ret := maps.Clone(n)
	if ret == nil {
		ret = make(Names)
	}
	for _, o := range others {
		maps.Copy(ret, o)
	}
	return ret
}
