// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"bytes"
	"errors"
	"math/bits"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"codello.dev/asn1view"
	"codello.dev/asn1view/internal/vlq"
	"codello.dev/asn1view/tlv"
)

//region test encoder

// encode returns the minimal BER encoding of a TLV.
func encode(tag asn1view.Tag, constructed bool, value []byte) []byte {
	b0 := byte(tag.Class) << 6
	if constructed {
		b0 |= 0x20
	}
	var b []byte
	if tag.Number < 0x1f {
		b = append(b, b0|byte(tag.Number))
	} else {
		b = vlq.Append(append(b, b0|0x1f), tag.Number)
	}
	if l := len(value); l < 0x80 {
		b = append(b, byte(l))
	} else {
		n := (bits.Len(uint(l)) + 7) / 8
		b = append(b, 0x80|byte(n))
		for i := n - 1; i >= 0; i-- {
			b = append(b, byte(l>>(8*i)))
		}
	}
	return append(b, value...)
}

func seq(children ...[]byte) []byte {
	return encode(universal(asn1view.TagSequence), true, bytes.Join(children, nil))
}

func prim(number uint, value ...byte) []byte {
	return encode(universal(number), false, value)
}

// reencode encodes n and its descendants from their headers and content.
func reencode(n *Node) []byte {
	if !n.Header.Constructed {
		return encode(n.Tag(), false, n.Raw)
	}
	var content []byte
	for _, c := range n.Children {
		content = append(content, reencode(c)...)
	}
	return encode(n.Tag(), true, content)
}

//endregion

// fixture is a small tree exercising most node kinds:
//
//	SEQUENCE {
//	  INTEGER 5
//	  SEQUENCE {}
//	  OCTET STRING DEAD
//	  [0] { BOOLEAN TRUE }
//	}
var fixture = []byte{
	0x30, 0x0E,
	0x02, 0x01, 0x05,
	0x30, 0x00,
	0x04, 0x02, 0xDE, 0xAD,
	0xA0, 0x03, 0x01, 0x01, 0xFF,
}

func TestDecode(t *testing.T) {
	n, err := Decode(append(slices.Clone(fixture), 0x05, 0x00))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if n.Header != (tlv.Header{Tag: universal(asn1view.TagSequence), Constructed: true, Length: 14}) {
		t.Errorf("Decode() Header = %v", n.Header)
	}
	if n.Remains != 2 {
		t.Errorf("Decode() Remains = %d, want 2", n.Remains)
	}
	if n.Value != nil {
		t.Errorf("Decode() Value = %v, want nil", n.Value)
	}
	if len(n.Children) != 4 {
		t.Fatalf("len(Children) = %d, want 4", len(n.Children))
	}

	tests := []struct {
		node      *Node
		offset    int
		headerLen int
		remains   int
	}{
		{n.Children[0], 2, 2, 11},
		{n.Children[1], 5, 2, 9},
		{n.Children[2], 7, 2, 5},
		{n.Children[3], 11, 2, 0},
		{n.Children[3].Children[0], 13, 2, 0},
	}
	for i, tt := range tests {
		if tt.node.Offset != tt.offset || tt.node.HeaderLen != tt.headerLen || tt.node.Remains != tt.remains {
			t.Errorf("node %d: Offset, HeaderLen, Remains = %d, %d, %d, want %d, %d, %d", i,
				tt.node.Offset, tt.node.HeaderLen, tt.node.Remains, tt.offset, tt.headerLen, tt.remains)
		}
		if len(tt.node.Raw) != tt.node.Header.Length {
			t.Errorf("node %d: len(Raw) = %d, want %d", i, len(tt.node.Raw), tt.node.Header.Length)
		}
	}

	if v := n.Children[0].Value; v.(interface{ Int64() int64 }).Int64() != 5 {
		t.Errorf("INTEGER Value = %v, want 5", v)
	}
	if c := n.Children[1].Children; c == nil || len(c) != 0 {
		t.Errorf("empty SEQUENCE Children = %#v, want empty non-nil slice", c)
	}
	if v := n.Children[2].Value; !bytes.Equal(v.([]byte), []byte{0xDE, 0xAD}) {
		t.Errorf("OCTET STRING Value = %v, want DE AD", v)
	}
	explicit := n.Children[3]
	if want := (asn1view.Tag{Class: asn1view.ClassContextSpecific, Number: 0}); explicit.Tag() != want {
		t.Errorf("explicit Tag() = %v, want %v", explicit.Tag(), want)
	}
	if v := explicit.Children[0].Value; v != true {
		t.Errorf("BOOLEAN Value = %v, want true", v)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := map[string]struct {
		data       []byte
		wantErr    error
		wantOffset int64
		wantHeader tlv.Header
	}{
		"Empty":           {[]byte{}, tlv.ErrTruncated, 0, tlv.Header{}},
		"TruncatedLength": {[]byte{0x30, 0x82, 0x01}, tlv.ErrTruncated, 0, tlv.Header{}},
		"TruncatedValue":  {[]byte{0x04, 0x05, 0x01}, tlv.ErrTruncated, 0, tlv.Header{}},
		"ReservedLength":  {[]byte{0x04, 0xFF}, tlv.ErrMalformedLength, 0, tlv.Header{}},
		"TagOverflow":     {[]byte{0x1F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F, 0x00}, tlv.ErrMalformedTag, 0, tlv.Header{}},
		"ChildTruncated": {[]byte{0x30, 0x03, 0x02, 0x05, 0x00}, tlv.ErrTruncated, 2,
			tlv.Header{Tag: universal(asn1view.TagSequence), Constructed: true, Length: 3}},
		"ChildMalformed": {[]byte{0x30, 0x04, 0x02, 0x02, 0x00, 0x7F}, ErrMalformedValue, 2,
			tlv.Header{Tag: universal(asn1view.TagSequence), Constructed: true, Length: 4}},
		"SecondChild": {[]byte{0x30, 0x06, 0x05, 0x00, 0x01, 0x02, 0xFF, 0xFF}, ErrMalformedValue, 4,
			tlv.Header{Tag: universal(asn1view.TagSequence), Constructed: true, Length: 6}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			n, err := Decode(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if n != nil {
				t.Errorf("Decode() returned a partial tree")
			}
			var sErr *tlv.SyntaxError
			if !errors.As(err, &sErr) {
				t.Fatalf("Decode() error = %T, want *tlv.SyntaxError", err)
			}
			if sErr.ByteOffset != tt.wantOffset {
				t.Errorf("ByteOffset = %d, want %d", sErr.ByteOffset, tt.wantOffset)
			}
			if sErr.Header != tt.wantHeader {
				t.Errorf("Header = %v, want %v", sErr.Header, tt.wantHeader)
			}
		})
	}
}

func TestDecode_EmptyBitString(t *testing.T) {
	n, err := Decode(seq(prim(asn1view.TagBitString, 0x04), prim(asn1view.TagNull)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(n.Children) != 2 {
		t.Fatalf("Decode() has %d children, want 2", len(n.Children))
	}
	bs, ok := n.Children[0].Value.(asn1view.BitString)
	if !ok || len(bs.Bytes) != 0 || bs.Unused() != 4 {
		t.Errorf("Children[0].Value = %#v, want empty BitString with 4 unused bits", n.Children[0].Value)
	}
}

func TestDecode_TruncatedLengthField(t *testing.T) {
	data := []byte{0x04, 0x84, 0x00, 0x00, 0x00, 0x01, 0xAA}
	for i := 1; i < 6; i++ {
		_, err := Decode(data[:i])
		if !errors.Is(err, tlv.ErrTruncated) {
			t.Errorf("Decode(% X) error = %v, want %v", data[:i], err, tlv.ErrTruncated)
		}
	}
	if _, err := Decode(data); err != nil {
		t.Errorf("Decode(% X) error = %v", data, err)
	}
}

func TestDecode_DepthExceeded(t *testing.T) {
	nested := func(levels int) []byte {
		b := seq()
		for range levels - 1 {
			b = seq(b)
		}
		return b
	}

	d := &Decoder{MaxDepth: 10}
	if _, err := d.Decode(nested(11)); err != nil {
		t.Errorf("Decode(11 levels) error = %v", err)
	}
	_, err := d.Decode(nested(12))
	if !errors.Is(err, ErrDepthExceeded) {
		t.Errorf("Decode(12 levels) error = %v, want %v", err, ErrDepthExceeded)
	}

	_, err = Decode(nested(2000))
	if !errors.Is(err, ErrDepthExceeded) {
		t.Errorf("Decode(2000 levels) error = %v, want %v", err, ErrDepthExceeded)
	}
}

func TestDecodeAll(t *testing.T) {
	data := slices.Concat(prim(asn1view.TagInteger, 0x01), prim(asn1view.TagNull), seq())
	ns, err := DecodeAll(data)
	if err != nil {
		t.Fatalf("DecodeAll() error = %v", err)
	}
	if len(ns) != 3 {
		t.Fatalf("len(DecodeAll()) = %d, want 3", len(ns))
	}
	for i, want := range []int{4, 2, 0} {
		if ns[i].Remains != want {
			t.Errorf("node %d: Remains = %d, want %d", i, ns[i].Remains, want)
		}
	}
	if ns[2].Offset != 5 {
		t.Errorf("node 2: Offset = %d, want 5", ns[2].Offset)
	}

	ns, err = DecodeAll(nil)
	if err != nil || ns == nil || len(ns) != 0 {
		t.Errorf("DecodeAll(nil) = %v, %v, want empty slice", ns, err)
	}

	_, err = DecodeAll(append(data, 0x02))
	var sErr *tlv.SyntaxError
	if !errors.As(err, &sErr) || sErr.ByteOffset != int64(len(data)) {
		t.Errorf("DecodeAll() error = %v, want error at offset %d", err, len(data))
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	tests := map[string][]byte{
		"Fixture": fixture,
		"Certificate": seq(
			seq(
				encode(asn1view.Tag{Class: asn1view.ClassContextSpecific, Number: 0}, true, prim(asn1view.TagInteger, 0x02)),
				prim(asn1view.TagInteger, 0x00, 0x80),
				seq(prim(asn1view.TagOID, 0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x01, 0x0B), prim(asn1view.TagNull)),
				seq(encode(universal(asn1view.TagSet), true, seq(
					prim(asn1view.TagOID, 0x55, 0x04, 0x03),
					prim(asn1view.TagUTF8String, []byte("Test")...),
				))),
				seq(prim(asn1view.TagUTCTime, []byte("250101120000Z")...), prim(asn1view.TagGeneralizedTime, []byte("20500101120000Z")...)),
			),
			prim(asn1view.TagBitString, 0x04, 0xF0),
		),
		"LongContent": seq(prim(asn1view.TagOctetString, bytes.Repeat([]byte{0x42}, 300)...)),
		"HighTag":     encode(asn1view.Tag{Class: asn1view.ClassPrivate, Number: 1000}, false, []byte{0x01}),
		"Enumerated":  prim(asn1view.TagEnumerated, 0xFF, 0x7F),
		"BMPString":   prim(asn1view.TagBMPString, 0x00, 0x41),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			n, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			b := reencode(n)
			if !bytes.Equal(b, data) {
				t.Fatalf("reencode() = % X, want % X", b, data)
			}
			n2, err := Decode(b)
			if err != nil {
				t.Fatalf("Decode() of re-encoded data error = %v", err)
			}
			if !reflect.DeepEqual(n, n2) {
				t.Errorf("Decode() of re-encoded data yields a different tree")
			}
		})
	}
}

func TestDecode_Concurrent(t *testing.T) {
	data := seq(fixture, prim(asn1view.TagOID, 0x2A, 0x86, 0x48), prim(asn1view.TagUTF8String, []byte("concurrent")...))
	want, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	var g errgroup.Group
	trees := make([]*Node, 16)
	for i := range trees {
		g.Go(func() (err error) {
			trees[i], err = Decode(data)
			return err
		})
	}
	if err = g.Wait(); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	for i, got := range trees {
		if !reflect.DeepEqual(got, want) {
			t.Errorf("tree %d differs from sequential result", i)
		}
	}
}

func TestDecoder_Reparse(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	d := &Decoder{Reparse: true, Logger: &logger}

	// The content of the BIT STRING is an INTEGER after the unused bits byte.
	data := seq(prim(asn1view.TagBitString, 0x00, 0x02, 0x01, 0x05), prim(asn1view.TagOctetString, 0xDE, 0xAD), prim(asn1view.TagBoolean, 0xFF))
	n, err := d.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	bitString := n.Children[0]
	if bitString.Value != nil || len(bitString.Children) != 1 {
		t.Fatalf("BIT STRING = %v, %d children, want nil value and 1 child", bitString.Value, len(bitString.Children))
	}
	if got := bitString.Children[0]; got.Tag() != universal(asn1view.TagInteger) || got.Offset != 5 {
		t.Errorf("reparsed child = %v at %d, want INTEGER at 5", got.Header, got.Offset)
	}
	if v, ok := n.Children[1].Value.([]byte); !ok || !bytes.Equal(v, []byte{0xDE, 0xAD}) {
		t.Errorf("OCTET STRING Value = %v, want fallback to DE AD", n.Children[1].Value)
	}
	if n.Children[2].Value != true {
		t.Errorf("BOOLEAN Value = %v, want true", n.Children[2].Value)
	}
	if !strings.Contains(buf.String(), "content is not nested TLV data") {
		t.Errorf("no fallback logged: %q", buf.String())
	}

	// Without Reparse the same data decodes as plain values.
	n, err = Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if _, ok := n.Children[0].Value.(asn1view.BitString); !ok || n.Children[0].Children != nil {
		t.Errorf("BIT STRING = %T with %d children, want asn1view.BitString", n.Children[0].Value, len(n.Children[0].Children))
	}
}

func TestNode_All(t *testing.T) {
	n, err := Decode(fixture)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	var depths []int
	var offsets []int
	for depth, c := range n.All() {
		depths = append(depths, depth)
		offsets = append(offsets, c.Offset)
	}
	if want := []int{0, 1, 1, 1, 1, 2}; !slices.Equal(depths, want) {
		t.Errorf("All() depths = %v, want %v", depths, want)
	}
	if want := []int{0, 2, 5, 7, 11, 13}; !slices.Equal(offsets, want) {
		t.Errorf("All() offsets = %v, want %v", offsets, want)
	}

	count := 0
	for range n.All() {
		count++
		if count == 2 {
			break
		}
	}
	if n.Size() != len(fixture) {
		t.Errorf("Size() = %d, want %d", n.Size(), len(fixture))
	}
}

func BenchmarkDecode(b *testing.B) {
	data := seq(fixture, fixture, prim(asn1view.TagOID, 0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x01, 0x0B))
	for b.Loop() {
		if _, err := Decode(data); err != nil {
			b.Fatal(err)
		}
	}
}
