// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vlq implements [Variable-length quantity] encoding as used in BER
// for high tag numbers and object identifier sub-identifiers. A VLQ is
// essentially a base-128 representation of an unsigned integer with the
// addition of the eighth bit to mark continuation of bytes. VLQ is identical to
// [LEB128] except in endianness.
//
// [Variable-length quantity]: https://en.wikipedia.org/wiki/Variable-length_quantity
// [LEB128]: https://en.wikipedia.org/wiki/LEB128
package vlq

import (
	"errors"
	"io"
	"math/bits"
	"unsafe"
)

// Unsigned is the set of types a VLQ can be decoded into.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

var (
	// ErrNotMinimal is returned by ReadMinimal if the first byte of a VLQ is 0x80.
	ErrNotMinimal = errors.New("vlq is not minimally encoded")
	// ErrOverflow indicates that a VLQ does not fit into the target type.
	ErrOverflow = errors.New("vlq too large for target type")
)

// Read parses an unsigned VLQ from r. The maximum allowed value is limited by
// the size of T.
//
// Read will only read bytes belonging to the encoded VLQ. If r returns io.EOF
// on the first read, the returned error will be io.EOF as well. If r runs out
// of bytes within the VLQ, io.ErrUnexpectedEOF is returned. Any other error of
// r is passed through.
//
// Read ignores an arbitrary amount of leading zeros (encoded as 0x80 bytes).
// Use [ReadMinimal] to parse a minimally-encoded VLQ.
func Read[T Unsigned](r io.ByteReader) (T, error) {
	return read[T](r, false)
}

// ReadMinimal works like [Read] but returns [ErrNotMinimal] if the VLQ is not
// minimally encoded (i.e. if it starts with a 0x80 byte).
func ReadMinimal[T Unsigned](r io.ByteReader) (T, error) {
	return read[T](r, true)
}

// read implements [Read] and [ReadMinimal]. If minimal is true, the encoded VLQ
// must be minimally encoded.
func read[T Unsigned](r io.ByteReader, minimal bool) (ret T, err error) {
	b, err := r.ReadByte()
	if err != nil {
		// io.EOF stays io.EOF
		return 0, err
	}
	if b == 0x80 && minimal {
		return 0, ErrNotMinimal
	}

	ret = T(b & 0x7f)
	numBits := bits.Len8(b & 0x7f)

	for b&0x80 != 0 {
		if b, err = r.ReadByte(); err != nil {
			break
		}
		if numBits == 0 {
			numBits = bits.Len8(b & 0x7f)
		} else {
			numBits += 7
		}
		if numBits > int(unsafe.Sizeof(ret)*8) {
			return 0, ErrOverflow
		}
		ret <<= 7
		ret |= T(b & 0x7f)
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return ret, err
}

// Size returns the number of bytes needed to encode n as a VLQ.
func Size[T Unsigned](n T) int {
	if n == 0 {
		return 1
	}
	l := 0
	for i := n; i > 0; i >>= 7 {
		l++
	}
	return l
}

// Append appends the minimal VLQ encoding of n to b and returns the extended
// slice.
func Append[T Unsigned](b []byte, n T) []byte {
	for j := Size(n) - 1; j >= 0; j-- {
		c := byte(n>>(j*7)) & 0x7f
		if j > 0 {
			c |= 0x80
		}
		b = append(b, c)
	}
	return b
}
