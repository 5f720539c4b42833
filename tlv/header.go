// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tlv

import (
	"errors"
	"math"

	"codello.dev/asn1view"
	"codello.dev/asn1view/internal/vlq"
)

// ReadTag reads the identifier octets of a TLV from c. It returns the tag and
// whether the constructed bit is set.
//
// If c runs out of bytes, [ErrTruncated] is returned. A high tag number that
// does not fit into a uint yields [ErrMalformedTag]. Leading zero groups in the
// high-tag-number form are accepted.
func ReadTag(c *Cursor) (tag asn1view.Tag, constructed bool, err error) {
	b, err := c.ReadByte()
	if err != nil {
		return tag, false, err
	}
	tag = asn1view.Tag{Class: asn1view.Class(b >> 6), Number: uint(b & 0x1f)}
	constructed = b&0x20 == 0x20

	// If the bottom five bits are set, then the tag number is actually VLQ-encoded
	if b&0x1f == 0x1f {
		tag.Number, err = vlq.Read[uint](c)
		if errors.Is(err, vlq.ErrOverflow) {
			err = ErrMalformedTag
		}
	}
	return tag, constructed, err
}

// ReadLength reads the length octets of a TLV from c.
//
// In the short form the length is encoded in the bottom 7 bits of a single
// byte. Otherwise the bottom 7 bits give the number of big-endian length bytes
// that follow. The number 127 is reserved and results in [ErrMalformedLength],
// as does a length that does not fit into an int. If c does not hold enough
// bytes, [ErrTruncated] is returned.
func ReadLength(c *Cursor) (int, error) {
	b, err := c.ReadByte()
	if err != nil {
		return 0, err
	}
	if b&0x80 == 0 {
		return int(b), nil
	}
	numBytes := int(b & 0x7f)
	if numBytes == 0x7f {
		return 0, ErrMalformedLength
	}
	bs, err := c.ReadBytes(numBytes)
	if err != nil {
		return 0, err
	}
	l := 0
	for _, b = range bs {
		if l > math.MaxInt>>8 {
			// We can't shift l up without overflowing.
			return 0, ErrMalformedLength
		}
		l = l<<8 | int(b)
	}
	return l, nil
}

// ReadHeader reads a complete TLV header from c. See [ReadTag] and [ReadLength]
// for details.
func ReadHeader(c *Cursor) (h Header, err error) {
	if h.Tag, h.Constructed, err = ReadTag(c); err != nil {
		return h, err
	}
	h.Length, err = ReadLength(c)
	return h, err
}
