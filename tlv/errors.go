// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tlv

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	// ErrTruncated indicates that the input ended before a tag, length or value
	// was read completely. ErrTruncated matches io.ErrUnexpectedEOF when used
	// with errors.Is.
	ErrTruncated = fmt.Errorf("truncated input: %w", io.ErrUnexpectedEOF)

	// ErrMalformedLength indicates a length field using the reserved long-form
	// count 127 or a length that does not fit into an int.
	ErrMalformedLength = errors.New("malformed length")

	// ErrMalformedTag indicates a high-tag-number that does not fit into a uint.
	ErrMalformedTag = errors.New("malformed tag")
)

// SyntaxError represents an error in the TLV encoding. The error value contains
// the location of the error within the input as well as the [Header] of the
// surrounding data value.
type SyntaxError struct {
	requireKeyedLiterals
	nonComparable

	Err error // underlying error

	// ByteOffset is the location of the error. The location is the start of the
	// TLV header containing the error.
	ByteOffset int64

	// Header is the TLV header of the constructed TLV whose value contained the
	// malformed data. It is the zero Header for top-level data values.
	Header Header
}

func (e *SyntaxError) Unwrap() error { return e.Err }
func (e *SyntaxError) Error() string {
	b := []byte("tlv: syntax error")
	if e.Header != (Header{}) {
		b = append(b, " within "...)
		b = append(b, e.Header.String()...)
	}
	b = strconv.AppendInt(append(b, " for TLV beginning at offset "...), e.ByteOffset, 10)
	if e.Err != nil {
		b = append(b, ": "...)
		b = append(b, e.Err.Error()...)
	}
	return string(b)
}
