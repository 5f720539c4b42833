// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ber decodes data encoded with the ASN.1 Basic Encoding Rules (BER)
// or the Distinguished Encoding Rules (DER) without a schema. The Basic
// Encoding Rules are defined in [Rec. ITU-T X.690].
// See also “[A Layman's Guide to a Subset of ASN.1, BER, and DER]”.
//
// A [Decoder] turns a byte slice into a tree of [Node] values. Constructed
// encodings become inner nodes whose children are decoded from the value
// octets. Primitive encodings become leaves holding a Go representation of
// their value (see [DecodeValue] and the package documentation of
// [codello.dev/asn1view] for the mapping). The following limitations apply:
//
//   - Only the definite length form is understood. A length octet of 0x80 is
//     read as a zero length, so an indefinite-length encoding decodes as an
//     empty constructed node followed by its former contents.
//   - Values are only interpreted for tags in the UNIVERSAL class. Primitive
//     encodings in the other classes carry their content octets as-is.
//   - Nesting is limited by [Decoder.MaxDepth].
//
// Decoded trees share memory with the input. The input must not be modified
// while a tree is in use. Trees are never modified after decoding and can be
// read concurrently.
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
// [A Layman's Guide to a Subset of ASN.1, BER, and DER]: http://luca.ntop.org/Teaching/Appunti/asn1.html
package ber

import (
	"iter"

	"codello.dev/asn1view"
	"codello.dev/asn1view/tlv"
)

// A Node is a single decoded TLV.
type Node struct {
	Header tlv.Header

	// Offset is the position of the identifier octet relative to the start of
	// the buffer passed to the Decoder.
	Offset int
	// HeaderLen is the number of identifier and length octets.
	HeaderLen int

	// Raw holds the exactly Length content octets of the TLV.
	Raw []byte

	// Children holds the nested TLVs of a constructed encoding. It is non-nil
	// but possibly empty for constructed nodes. Primitive nodes only have
	// children if they were decoded by a Decoder with Reparse enabled.
	Children []*Node

	// Value holds the decoded value of a primitive node. It is nil for
	// constructed nodes.
	Value any

	// Remains is the number of bytes left in the enclosing buffer after this
	// TLV. For a child node the enclosing buffer is the content of its parent.
	Remains int
}

// Tag returns the tag of n.
func (n *Node) Tag() asn1view.Tag {
	return n.Header.Tag
}

// Size returns the number of bytes in the complete encoding of n.
func (n *Node) Size() int {
	return n.HeaderLen + len(n.Raw)
}

// All returns an iterator over n and all of its descendants in depth-first
// order. The iterator yields the nesting level of each node relative to n,
// starting with 0 for n itself.
func (n *Node) All() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		n.walk(0, yield)
	}
}

func (n *Node) walk(depth int, yield func(int, *Node) bool) bool {
	if !yield(depth, n) {
		return false
	}
	for _, c := range n.Children {
		if !c.walk(depth+1, yield) {
			return false
		}
	}
	return true
}

// Decode decodes the first TLV in b using the default [Decoder] settings.
func Decode(b []byte) (*Node, error) {
	return new(Decoder).Decode(b)
}

// DecodeAll decodes all TLVs in b using the default [Decoder] settings.
func DecodeAll(b []byte) ([]*Node, error) {
	return new(Decoder).DecodeAll(b)
}
