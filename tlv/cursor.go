// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tlv

import "errors"

var errNegativeCount = errors.New("tlv: negative count")

// Cursor reads from an in-memory buffer. It keeps track of the current read
// position. Reads never return partial results: if fewer bytes are available
// than requested, [ErrTruncated] is returned and the position is unchanged.
//
// Slices returned by a Cursor share memory with the underlying buffer. A Cursor
// must not be used concurrently.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor returns a Cursor reading from b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{buf: b}
}

// ReadByte implements [io.ByteReader]. It returns [ErrTruncated] if the buffer
// is exhausted.
func (c *Cursor) ReadByte() (byte, error) {
	if c.off >= len(c.buf) {
		return 0, ErrTruncated
	}
	b := c.buf[c.off]
	c.off++
	return b, nil
}

// ReadBytes returns the next n bytes and advances the position by n. The
// capacity of the returned slice is limited to n so that appending to it does
// not modify the buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errNegativeCount
	}
	if n > c.Len() {
		return nil, ErrTruncated
	}
	b := c.buf[c.off : c.off+n : c.off+n]
	c.off += n
	return b, nil
}

// Remaining returns the unread portion of the buffer without advancing c.
func (c *Cursor) Remaining() []byte {
	return c.buf[c.off:]
}

// Len returns the number of unread bytes.
func (c *Cursor) Len() int {
	return len(c.buf) - c.off
}

// Offset returns the number of bytes read so far.
func (c *Cursor) Offset() int {
	return c.off
}
