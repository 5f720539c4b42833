// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tlv implements the syntactic layer of the tag-length-value (TLV)
// format used by the Basic Encoding Rules (BER) and related encoding rules as
// specified in [Rec. ITU-T X.690].
// See also “[A Layman's Guide to a Subset of ASN.1, BER, and DER]”.
//
// A [Cursor] wraps an in-memory buffer and a read position. [ReadTag],
// [ReadLength] and [ReadHeader] consume the identifier and length octets of a
// TLV from a Cursor. Interpreting the value octets is left to other packages
// such as [codello.dev/asn1view/ber].
//
// # Headers
//
// The tag and length of a TLV are represented by the [Header] type. The
// identifier octet splits into the class (top two bits), the constructed bit
// and the tag number (low five bits). Tag numbers of 31 and above use the
// high-tag-number form where the number follows as a base-128 quantity.
//
// Lengths use the short form (a single byte below 0x80) or the long form (a
// count byte 0x80|k followed by k big-endian length bytes). The count k = 127
// is reserved and rejected with [ErrMalformedLength]. A count of zero denotes
// the BER indefinite form which this package does not track; it is read as a
// long-form length without length bytes, that is zero.
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
// [A Layman's Guide to a Subset of ASN.1, BER, and DER]: http://luca.ntop.org/Teaching/Appunti/asn1.html
package tlv

import (
	"strconv"

	"codello.dev/asn1view"
)

// Header represents a TLV header: the tag, the encoding kind and the length of
// the value octets.
type Header struct {
	Tag         asn1view.Tag
	Constructed bool
	Length      int
}

// String returns a string representation of h.
func (h Header) String() string {
	if h == (Header{}) {
		return "EndOfContents"
	}
	s := h.Tag.String()
	if h.Constructed {
		s += "/c"
	} else {
		s += "/p"
	}
	s += ":" + strconv.Itoa(h.Length)
	return s
}

// requireKeyedLiterals can be embedded in a struct to require keyed literals.
type requireKeyedLiterals struct{}

// nonComparable can be embedded in a struct to prevent comparability.
type nonComparable [0]func()
