// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render prints trees decoded by [codello.dev/asn1view/ber] in human
// readable form.
//
// The text format writes one line per node, indented by its nesting level:
//
//	[U] SEQUENCE (Constructed)
//	    [U] INTEGER (Primitive) = 5
//	    [U] OBJECT (Primitive) = 1.2.840
//
// The table format (see [Printer.FprintTable]) lists the offset, nesting
// level, header length and length of every node in the manner of the OpenSSL
// asn1parse command.
package render

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"codello.dev/asn1view"
	"codello.dev/asn1view/ber"
	"codello.dev/asn1view/oid"
)

// DefaultIndent is the indentation per nesting level used by a [Printer]
// without an explicit Indent.
const DefaultIndent = "    "

// DefaultTagNames returns a new table with names for UNIVERSAL tag numbers.
func DefaultTagNames() map[uint]string {
	return map[uint]string{
		asn1view.TagBoolean:         "BOOLEAN",
		asn1view.TagInteger:         "INTEGER",
		asn1view.TagBitString:       "BIT STRING",
		asn1view.TagOctetString:     "OCTET STRING",
		asn1view.TagNull:            "NULL",
		asn1view.TagOID:             "OBJECT",
		asn1view.TagEnumerated:      "ENUMERATED",
		asn1view.TagUTF8String:      "UTF8STRING",
		asn1view.TagSequence:        "SEQUENCE",
		asn1view.TagSet:             "SET",
		asn1view.TagNumericString:   "NUMERICSTRING",
		asn1view.TagPrintableString: "PRINTABLESTRING",
		asn1view.TagIA5String:       "IA5STRING",
		asn1view.TagUTCTime:         "UTCTIME",
		asn1view.TagGeneralizedTime: "GENERALIZED TIME",
		asn1view.TagVisibleString:   "VISIBLESTRING",
		asn1view.TagBMPString:       "BMPSTRING",
	}
}

// A Printer renders decoded trees. The zero value prints without object
// identifier names. A Printer is not modified by its methods and can be used
// concurrently.
type Printer struct {
	// Names is used to display object identifiers. Identifiers without a name
	// are printed in dotted-decimal notation.
	Names oid.Names

	// TagNames maps UNIVERSAL tag numbers to names. If nil, DefaultTagNames is
	// used. Tags without a name are printed as a hexadecimal number.
	TagNames map[uint]string

	// Indent is written once per nesting level. If empty, DefaultIndent is
	// used.
	Indent string
}

// Render returns the text format of n using a zero Printer.
func Render(n *ber.Node) string {
	return new(Printer).Render(n)
}

// Render returns the text format of n.
func (p *Printer) Render(n *ber.Node) string {
	var buf bytes.Buffer
	p.render(&buf, n)
	return buf.String()
}

// Fprint writes the text format of n to w.
func (p *Printer) Fprint(w io.Writer, n *ber.Node) error {
	var buf bytes.Buffer
	p.render(&buf, n)
	_, err := buf.WriteTo(w)
	return err
}

func (p *Printer) render(buf *bytes.Buffer, n *ber.Node) {
	indent := p.Indent
	if indent == "" {
		indent = DefaultIndent
	}
	tagNames := p.tagNames()
	for depth, c := range n.All() {
		for range depth {
			buf.WriteString(indent)
		}
		buf.WriteByte('[')
		buf.WriteString(c.Tag().Class.Abbrev())
		buf.WriteString("] ")
		buf.WriteString(tagName(tagNames, c.Tag()))
		if c.Header.Constructed {
			buf.WriteString(" (Constructed)")
		} else {
			buf.WriteString(" (Primitive)")
			if c.Value != nil {
				buf.WriteString(" = ")
				buf.WriteString(p.FormatValue(c.Value))
			}
		}
		buf.WriteByte('\n')
	}
}

func (p *Printer) tagNames() map[uint]string {
	if p.TagNames == nil {
		return DefaultTagNames()
	}
	return p.TagNames
}

// TagName returns the display name of tag.
func (p *Printer) TagName(tag asn1view.Tag) string {
	return tagName(p.tagNames(), tag)
}

// tagName looks up UNIVERSAL tags in names. All other tags are printed as
// numbers because their meaning depends on the context.
func tagName(names map[uint]string, tag asn1view.Tag) string {
	if tag.IsUniversal() {
		if name, ok := names[tag.Number]; ok {
			return name
		}
	}
	return "0x" + strconv.FormatUint(uint64(tag.Number), 16)
}

// FormatValue returns the display form of a value decoded by [ber.DecodeValue].
func (p *Printer) FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "True"
		}
		return "False"
	case *big.Int:
		return v.String()
	case []byte:
		return hex.EncodeToString(v)
	case string:
		return v
	case asn1view.BitString:
		return v.String()
	case asn1view.ObjectIdentifier:
		return p.Names.Name(v)
	default:
		return fmt.Sprint(v)
	}
}
