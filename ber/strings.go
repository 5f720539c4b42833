// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"codello.dev/asn1view"
)

// utf16BE decodes BMPString values.
var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// isUTF8 reports whether enc is nil or the UTF-8 encoding.
func isUTF8(enc encoding.Encoding) bool {
	if enc == nil {
		return true
	}
	name, err := htmlindex.Name(enc)
	return err == nil && name == "utf-8"
}

//region [UNIVERSAL 12] UTF8String, [UNIVERSAL 18] NumericString, [UNIVERSAL 19] PrintableString, [UNIVERSAL 22] IA5String, [UNIVERSAL 26] VisibleString, [UNIVERSAL 23] UTCTime, [UNIVERSAL 24] GeneralizedTime

// decodeText decodes b using enc. Decoders of x/text substitute invalid input
// with utf8.RuneError, so its presence in the output marks b as malformed.
func decodeText(tag asn1view.Tag, b []byte, enc encoding.Encoding) (string, error) {
	if isUTF8(enc) {
		if !utf8.Valid(b) {
			return "", malformed(tag, "string contains invalid characters")
		}
		return string(b), nil
	}
	s, err := enc.NewDecoder().Bytes(b)
	if err != nil || bytes.ContainsRune(s, utf8.RuneError) {
		return "", malformed(tag, "string contains invalid characters")
	}
	return string(s), nil
}

//endregion

//region [UNIVERSAL 30] BMPString

func decodeBMPString(tag asn1view.Tag, b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", malformed(tag, "odd length BMPString")
	}
	s, err := utf16BE.NewDecoder().Bytes(b)
	if err != nil || bytes.ContainsRune(s, utf8.RuneError) {
		return "", malformed(tag, "BMPString contains invalid characters")
	}
	return string(s), nil
}

//endregion
