// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"math/big"

	"golang.org/x/text/encoding"

	"codello.dev/asn1view"
	"codello.dev/asn1view/internal/vlq"
	"codello.dev/asn1view/tlv"
)

// DecodeValue decodes the content octets b of a primitive encoding with the
// given tag. Tags in the UNIVERSAL class are decoded according to their type:
//
//   - BOOLEAN yields a bool.
//   - INTEGER and ENUMERATED yield a *big.Int.
//   - BIT STRING yields an [asn1view.BitString].
//   - OBJECT IDENTIFIER yields an [asn1view.ObjectIdentifier].
//   - UTF8String, NumericString, PrintableString, IA5String, VisibleString,
//     UTCTime and GeneralizedTime yield a string decoded using enc. If enc is
//     nil, UTF-8 is used.
//   - BMPString yields a string decoded as UTF-16BE.
//
// All other tags yield b itself. If b is not a valid encoding for the type
// a [*SyntaxError] matching [ErrMalformedValue] is returned.
//
// The returned value may share memory with b.
func DecodeValue(tag asn1view.Tag, b []byte, enc encoding.Encoding) (any, error) {
	if !tag.IsUniversal() {
		return b, nil
	}
	switch tag.Number {
	case asn1view.TagBoolean:
		return decodeBoolean(tag, b)
	case asn1view.TagInteger, asn1view.TagEnumerated:
		return decodeInteger(tag, b)
	case asn1view.TagBitString:
		return decodeBitString(tag, b)
	case asn1view.TagOID:
		return decodeObjectIdentifier(tag, b)
	case asn1view.TagUTF8String, asn1view.TagNumericString, asn1view.TagPrintableString,
		asn1view.TagIA5String, asn1view.TagVisibleString,
		asn1view.TagUTCTime, asn1view.TagGeneralizedTime:
		return decodeText(tag, b, enc)
	case asn1view.TagBMPString:
		return decodeBMPString(tag, b)
	default:
		return b, nil
	}
}

//region [UNIVERSAL 1] BOOLEAN

func decodeBoolean(tag asn1view.Tag, b []byte) (bool, error) {
	if len(b) != 1 {
		return false, malformed(tag, "invalid boolean")
	}
	return b[0] != 0x00, nil
}

//endregion

//region [UNIVERSAL 2] INTEGER and [UNIVERSAL 10] ENUMERATED

var bigOne = big.NewInt(1)

func decodeInteger(tag asn1view.Tag, b []byte) (*big.Int, error) {
	if len(b) == 0 {
		return nil, malformed(tag, "empty integer")
	}
	if len(b) > 1 && ((b[0] == 0x00 && b[1]&0x80 == 0x00) || (b[0] == 0xFF && b[1]&0x80 == 0x80)) {
		return nil, malformed(tag, "integer not minimally-encoded")
	}
	i := new(big.Int)
	if b[0]&0x80 == 0x80 {
		// negative integer, calculate 2s complement
		bs := make([]byte, len(b))
		for j := range b {
			bs[j] = ^b[j]
		}
		i.SetBytes(bs)
		i.Add(i, bigOne)
		i.Neg(i)
	} else {
		i.SetBytes(b)
	}
	return i, nil
}

//endregion

//region [UNIVERSAL 3] BIT STRING

func decodeBitString(tag asn1view.Tag, b []byte) (asn1view.BitString, error) {
	if len(b) == 0 {
		return asn1view.BitString{}, malformed(tag, "zero length BIT STRING")
	}
	padding := b[0]
	if padding > 7 {
		return asn1view.BitString{}, malformed(tag, "invalid padding bits in BIT STRING")
	}
	bs := asn1view.BitString{
		Bytes:   append([]byte(nil), b[1:]...),
		Padding: int(padding),
	}
	if len(bs.Bytes) > 0 {
		// zero out padding bits
		bs.Bytes[len(bs.Bytes)-1] &= ^byte(1<<padding - 1)
	}
	return bs, nil
}

//endregion

//region [UNIVERSAL 6] OBJECT IDENTIFIER

// maxFirstArc is the largest value allowed for the first sub-identifier.
const maxFirstArc = 1599

func decodeObjectIdentifier(tag asn1view.Tag, b []byte) (asn1view.ObjectIdentifier, error) {
	if len(b) == 0 {
		return nil, malformed(tag, "zero length OBJECT IDENTIFIER")
	}
	c := tlv.NewCursor(b)
	// In the worst case, we get two elements from the first byte and then
	// every sub-identifier is a single byte long.
	oid := make(asn1view.ObjectIdentifier, 0, len(b)+1)
	for c.Len() > 0 {
		v, err := vlq.ReadMinimal[uint](c)
		switch {
		case err == vlq.ErrNotMinimal:
			return nil, malformed(tag, "sub-identifier not minimally-encoded")
		case err == vlq.ErrOverflow:
			return nil, malformed(tag, "sub-identifier too large")
		case err != nil:
			return nil, malformed(tag, "truncated sub-identifier")
		}
		if len(oid) > 0 {
			oid = append(oid, v)
			continue
		}
		// The first sub-identifier packs the first two arcs as 40*arc1 + arc2.
		if v > maxFirstArc {
			return nil, malformed(tag, "first sub-identifier too large")
		}
		oid = append(oid, v/40, v%40)
	}
	return oid, nil
}

//endregion
