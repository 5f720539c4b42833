// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"

	"codello.dev/asn1view"
	"codello.dev/asn1view/tlv"
)

//region error types

var (
	// ErrMalformedValue indicates that the content octets of a primitive
	// encoding violate the encoding rules of its type.
	ErrMalformedValue = errors.New("malformed value")

	// ErrDepthExceeded indicates that constructed encodings were nested deeper
	// than allowed by [Decoder.MaxDepth].
	ErrDepthExceeded = errors.New("maximum nesting depth exceeded")
)

// A SyntaxError suggests that the ASN.1 data is invalid. This can either
// indicate that the nesting of constructed encodings is too deep, or that a
// primitive encoding could not be converted into a valid value.
//
// Errors returned by a [Decoder] are always wrapped in a [tlv.SyntaxError]
// holding the position of the offending TLV.
type SyntaxError struct {
	Tag asn1view.Tag // where the syntax error occurred
	Err error
}

func (e *SyntaxError) Error() string {
	var s strings.Builder
	s.WriteString("decoding ")
	s.WriteString(e.Tag.String())
	if e.Err != nil {
		s.WriteString(": ")
		s.WriteString(e.Err.Error())
	}
	return s.String()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// malformed returns a SyntaxError for tag matching [ErrMalformedValue].
func malformed(tag asn1view.Tag, msg string) error {
	return &SyntaxError{tag, fmt.Errorf("%w: %s", ErrMalformedValue, msg)}
}

//endregion

//region type Decoder

// DefaultMaxDepth is the nesting limit used by a [Decoder] without an explicit
// MaxDepth.
const DefaultMaxDepth = 64

// A Decoder decodes BER-encoded byte slices into trees of [Node] values. The
// zero value is ready to use and decodes text as UTF-8. A Decoder holds only
// configuration and can be used concurrently.
type Decoder struct {
	// TextEncoding is used for the text based string and time types. If nil,
	// UTF-8 is used. BMPString always uses UTF-16BE.
	TextEncoding encoding.Encoding

	// MaxDepth limits the nesting of constructed encodings. A top-level TLV is
	// at depth 0. Values <= 0 select DefaultMaxDepth.
	MaxDepth int

	// Reparse enables legacy output compatibility: The content of every
	// primitive encoding (except its first byte) is first decoded as a sequence
	// of TLVs. If that succeeds, the result is stored as the children of the
	// node. Otherwise the value is decoded as usual.
	Reparse bool

	// Logger receives debug output. If nil, nothing is logged.
	Logger *zerolog.Logger
}

// Decode decodes the first TLV in b. Bytes following the TLV are not
// interpreted, their count is recorded in the Remains field of the returned
// node.
//
// Decode either returns a complete tree or a non-nil error. Errors are of type
// [*tlv.SyntaxError] and match one of [tlv.ErrTruncated],
// [tlv.ErrMalformedLength], [tlv.ErrMalformedTag], [ErrMalformedValue] or
// [ErrDepthExceeded] via errors.Is.
func (d *Decoder) Decode(b []byte) (*Node, error) {
	s := d.state()
	return s.node(tlv.NewCursor(b), 0, 0, tlv.Header{})
}

// DecodeAll decodes b as a sequence of sibling TLVs. An empty b yields an
// empty slice.
func (d *Decoder) DecodeAll(b []byte) ([]*Node, error) {
	s := d.state()
	return s.nodes(b, 0, 0, tlv.Header{})
}

// state returns the effective settings of d.
func (d *Decoder) state() *decodeState {
	s := &decodeState{
		enc:      d.TextEncoding,
		maxDepth: d.MaxDepth,
		reparse:  d.Reparse,
		log:      zerolog.Nop(),
	}
	if s.maxDepth <= 0 {
		s.maxDepth = DefaultMaxDepth
	}
	if d.Logger != nil {
		s.log = *d.Logger
	}
	return s
}

//endregion

//region type decodeState

// decodeState holds the settings of a single Decode call.
type decodeState struct {
	enc      encoding.Encoding
	maxDepth int
	reparse  bool
	log      zerolog.Logger
}

// node decodes a single TLV from c. The buffer of c starts at absolute
// position base. parent is the header of the enclosing constructed encoding.
func (s *decodeState) node(c *tlv.Cursor, base int, depth int, parent tlv.Header) (*Node, error) {
	start := c.Offset()
	wrap := func(err error) error {
		return &tlv.SyntaxError{Err: err, ByteOffset: int64(base + start), Header: parent}
	}

	h, err := tlv.ReadHeader(c)
	if err != nil {
		return nil, wrap(err)
	}
	if depth > s.maxDepth {
		s.log.Debug().Int("offset", base+start).Int("depth", depth).Msg("nesting limit reached")
		return nil, wrap(&SyntaxError{h.Tag, ErrDepthExceeded})
	}
	n := &Node{Header: h, Offset: base + start, HeaderLen: c.Offset() - start}
	if n.Raw, err = c.ReadBytes(h.Length); err != nil {
		return nil, wrap(err)
	}
	n.Remains = c.Len()

	if h.Constructed {
		n.Children, err = s.nodes(n.Raw, n.Offset+n.HeaderLen, depth+1, h)
		if err != nil {
			return nil, err
		}
		return n, nil
	}

	if s.reparse && len(n.Raw) > 1 {
		children, err := s.nodes(n.Raw[1:], n.Offset+n.HeaderLen+1, depth+1, h)
		if err == nil {
			n.Children = children
			return n, nil
		}
		s.log.Trace().Err(err).Int("offset", n.Offset).Stringer("header", h).Msg("content is not nested TLV data")
	}
	if n.Value, err = DecodeValue(h.Tag, n.Raw, s.enc); err != nil {
		return nil, wrap(err)
	}
	return n, nil
}

// nodes decodes b as a sequence of TLVs. The result is never nil.
func (s *decodeState) nodes(b []byte, base int, depth int, parent tlv.Header) ([]*Node, error) {
	c := tlv.NewCursor(b)
	ns := make([]*Node, 0)
	for c.Len() > 0 {
		n, err := s.node(c, base, depth, parent)
		if err != nil {
			return nil, err
		}
		ns = append(ns, n)
	}
	return ns, nil
}

//endregion
