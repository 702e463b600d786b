package scen2html

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported encoding names for Input.Encoding.
const (
	EncodingUTF8      = "utf-8"
	EncodingShiftJIS  = "shift_jis"
	EncodingEUCJP     = "euc-jp"
	EncodingISO2022JP = "iso-2022-jp"
)

// utf8BOM is stripped from UTF-8 input when present.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeSource decodes raw input bytes under the declared encoding and
// returns UTF-8 text. The empty name means UTF-8. UTF-16 input with a
// byte order mark is accepted regardless of the declared name.
//
// Decoding is the only fatal failure in the pipeline: any undecodable
// byte aborts the conversion with ErrEncoding.
func decodeSource(src []byte, name string) (string, error) {
	// A UTF-16 BOM overrides the declared encoding.
	if len(src) >= 2 && (bytes.HasPrefix(src, []byte{0xFE, 0xFF}) || bytes.HasPrefix(src, []byte{0xFF, 0xFE})) {
		return decodeWith(src, unicode.UTF16(unicode.BigEndian, unicode.UseBOM), "utf-16")
	}

	switch normalizeEncodingName(name) {
	case EncodingUTF8:
		src = bytes.TrimPrefix(src, utf8BOM)
		if !utf8.Valid(src) {
			return "", fmt.Errorf("%w: invalid UTF-8 at byte %d", ErrEncoding, invalidOffset(src))
		}
		return string(src), nil
	case EncodingShiftJIS:
		return decodeWith(src, japanese.ShiftJIS, EncodingShiftJIS)
	case EncodingEUCJP:
		return decodeWith(src, japanese.EUCJP, EncodingEUCJP)
	case EncodingISO2022JP:
		return decodeWith(src, japanese.ISO2022JP, EncodingISO2022JP)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// decodeWith runs src through the encoding's decoder. The x/text
// decoders substitute U+FFFD for undecodable bytes instead of failing,
// so a replacement rune in the output that the input did not already
// contain is treated as a decode failure.
func decodeWith(src []byte, enc encoding.Encoding, name string) (string, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), src)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrEncoding, name, err)
	}
	if bytes.ContainsRune(out, utf8.RuneError) && !bytes.Contains(src, []byte(string(utf8.RuneError))) {
		return "", fmt.Errorf("%w: %s: undecodable byte sequence", ErrEncoding, name)
	}
	return string(out), nil
}

// normalizeEncodingName folds common aliases to canonical names.
func normalizeEncodingName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "-")
	switch n {
	case "", "utf8", "utf-8":
		return EncodingUTF8
	case "sjis", "shift-jis", "shiftjis", "cp932", "windows-31j":
		return EncodingShiftJIS
	case "euc-jp", "eucjp":
		return EncodingEUCJP
	case "iso-2022-jp", "jis":
		return EncodingISO2022JP
	}
	return n
}

// invalidOffset finds the first invalid byte offset in malformed UTF-8.
func invalidOffset(src []byte) int {
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(src)
}
