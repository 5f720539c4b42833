// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asn1view defines the vocabulary shared by the decoding packages of
// this module: ASN.1 tags and classes as defined in [Rec. ITU-T X.680] and Go
// representations for the ASN.1 values that cannot be expressed by a builtin
// Go type.
//
// The module decodes BER or DER encoded data without a schema. The syntactic
// layer (tags, lengths and the byte cursor) lives in package
// [codello.dev/asn1view/tlv]. The tree builder and the primitive value decoders
// live in package [codello.dev/asn1view/ber]. Package
// [codello.dev/asn1view/render] prints decoded trees.
//
// # Mapping of ASN.1 Types to Go Types
//
// Decoded primitive values use the following Go types:
//
//   - BOOLEAN decodes into a Go bool.
//   - INTEGER and ENUMERATED decode into [*math/big.Int]. The size is not
//     limited.
//   - BIT STRING decodes into [BitString].
//   - OBJECT IDENTIFIER decodes into [ObjectIdentifier].
//   - The string types (UTF8String, PrintableString, IA5String, ...) as well as
//     UTCTime and GeneralizedTime decode into a Go string.
//   - OCTET STRING, NULL and any type without a dedicated decoder decode into a
//     byte slice holding the content octets.
//
// [Rec. ITU-T X.680]: https://www.itu.int/rec/T-REC-X.680
package asn1view

import (
	"strconv"
	"strings"
)

// Tag constitutes an ASN.1 tag, consisting of its class and number. For
// details, see Section 8 of Rec. ITU-T X.680.
type Tag struct {
	Class  Class
	Number uint
}

// Class holds the class part of an ASN.1 tag. The class acts as a namespace for
// the tag number. A Class value is an unsigned 2-bit integer. Class values
// whose value exceeds 2 bits are invalid.
//
//go:generate stringer -type=Class -trimprefix=Class
type Class uint8

// IsValid reports whether c is a valid Class value.
func (c Class) IsValid() bool {
	return c <= 3
}

// Abbrev returns the single letter abbreviation of c (U, A, C or P). Invalid
// classes are abbreviated as "?".
func (c Class) Abbrev() string {
	if !c.IsValid() {
		return "?"
	}
	return "UACP"[c : c+1]
}

// Predefined [Class] constants. These are all the possible values that can be
// encoded in the [Class] type.
const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

// String returns a string representation t in a format similar to the one used
// in ASN.1 notation. The tag number is enclosed by square brackets and prefixed
// with the class used. To avoid ambiguity the UNIVERSAL word is used for
// universal tags, although this is not valid ASN.1 syntax.
func (t Tag) String() string {
	if t.Class == ClassContextSpecific {
		return "[" + strconv.FormatUint(uint64(t.Number), 10) + "]"
	}
	return "[" + strings.ToUpper(t.Class.String()) + " " + strconv.FormatUint(uint64(t.Number), 10) + "]"
}

// IsUniversal reports whether t is in the [ClassUniversal] namespace.
func (t Tag) IsUniversal() bool {
	return t.Class == ClassUniversal
}

// TagReserved is a reserved tag number in the [ClassUniversal] namespace to be
// used by encoding rules. This assignment is defined in Rec. ITU-T X.680,
// Section 8, Table 1.
const TagReserved = 0

// These are some ASN.1 tag numbers are defined in the [ClassUniversal]
// namespace. These assignments are defined in Rec. ITU-T X.680, Section 8, Table
// 1.
const (
	TagBoolean          uint = 1
	TagInteger          uint = 2
	TagBitString        uint = 3
	TagOctetString      uint = 4
	TagNull             uint = 5
	TagOID              uint = 6
	TagObjectDescriptor uint = 7
	TagExternal         uint = 8
	TagReal             uint = 9
	TagEnumerated       uint = 10
	TagEmbeddedPDV      uint = 11
	TagUTF8String       uint = 12
	TagRelativeOID      uint = 13
	TagTime             uint = 14
	TagSequence         uint = 16
	TagSet              uint = 17
	TagNumericString    uint = 18
	TagPrintableString  uint = 19
	TagTeletexString    uint = 20
	TagT61String             = TagTeletexString
	TagVideotexString   uint = 21
	TagIA5String        uint = 22
	TagUTCTime          uint = 23
	TagGeneralizedTime  uint = 24
	TagGraphicString    uint = 25
	TagVisibleString    uint = 26
	TagISO646String          = TagVisibleString
	TagGeneralString    uint = 27
	TagUniversalString  uint = 28
	TagCharacterString  uint = 29
	TagBMPString        uint = 30
	TagDate             uint = 31
	TagTimeOfDay        uint = 32
	TagDateTime         uint = 33
	TagDuration         uint = 34
)
