// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asn1view

import (
	"encoding/hex"
	"slices"
	"strconv"
	"strings"
)

//region [UNIVERSAL 3] BIT STRING

// BitString implements the ASN.1 BIT STRING type. A bit string is padded up to
// the nearest byte in memory and the number of padding bits is recorded. Bytes
// holds the content octets as they were encoded, i.e. the padding bits are the
// least significant bits of the last byte.
//
// Padding is kept as encoded. An encoding without content octets may still
// declare padding bits, in which case the bit string is empty.
//
// See also section 22 of Rec. ITU-T X.680.
type BitString struct {
	Bytes   []byte // bits packed into bytes.
	Padding int    // number of unused bits in the last byte.
}

// Unused returns the number of padding bits declared for s.
func (s BitString) Unused() int {
	return s.Padding
}

// RightAlign returns a slice where the padding bits are at the beginning. The
// slice may share memory with the BitString.
func (s BitString) RightAlign() []byte {
	shift := uint(s.Padding)
	if shift == 0 || len(s.Bytes) == 0 {
		return s.Bytes
	}

	a := make([]byte, len(s.Bytes))
	a[0] = s.Bytes[0] >> shift
	for i := 1; i < len(s.Bytes); i++ {
		a[i] = s.Bytes[i-1] << (8 - shift)
		a[i] |= s.Bytes[i] >> shift
	}

	return a
}

// String returns the right aligned bits of s in hexadecimal notation, followed
// by the number of unused bits if there are any.
func (s BitString) String() string {
	str := hex.EncodeToString(s.RightAlign())
	if u := s.Unused(); u > 0 {
		str += " (Unused bits: " + strconv.Itoa(u) + ")"
	}
	return str
}

//endregion

//region [UNIVERSAL 5] NULL
// Decoded as the (usually empty) content octets.
//endregion

//region [UNIVERSAL 6] OBJECT IDENTIFIER

// An ObjectIdentifier represents an ASN.1 OBJECT IDENTIFIER. The semantics of an object identifier are specified in [Rec. ITU-T X.660].
//
// See also section 32 of Rec. ITU-T X.680.
//
// [Rec. ITU-T X.660]: https://www.itu.int/rec/T-REC-X.660
type ObjectIdentifier []uint

// Equal reports whether oid and other represent the same identifier.
func (oid ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	return slices.Equal(oid, other)
}

// String returns the dot-separated notation of oid.
func (oid ObjectIdentifier) String() string {
	var s strings.Builder
	s.Grow(32)

	buf := make([]byte, 0, 20)
	for i, v := range oid {
		if i > 0 {
			s.WriteByte('.')
		}
		s.Write(strconv.AppendUint(buf, uint64(v), 10))
	}

	return s.String()
}

// ParseObjectIdentifier parses the dot-separated notation of an object
// identifier. It reports false if s is not a sequence of at least two decimal
// numbers separated by dots.
func ParseObjectIdentifier(s string) (ObjectIdentifier, bool) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return nil, false
	}
	oid := make(ObjectIdentifier, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 0)
		if err != nil {
			return nil, false
		}
		oid[i] = uint(v)
	}
	return oid, true
}

//endregion
