// Package textutil provides byte-level text utilities: binary detection and
// decoding of exports whose encoding is not declared.
package textutil

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// BinarySniffLength is the maximum number of bytes scanned for null-byte
// detection. Matches the heuristic used by Git and most editors.
const BinarySniffLength = 8000

// Encoding names a detected text encoding.
type Encoding string

// Encodings recognized by DetectEncoding.
const (
	EncodingUTF8     Encoding = "utf-8"
	EncodingUTF8BOM  Encoding = "utf-8-bom"
	EncodingUTF16LE  Encoding = "utf-16le"
	EncodingUTF16BE  Encoding = "utf-16be"
	EncodingShiftJIS Encoding = "shift_jis"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// IsBinary returns true if data contains a null byte within the first
// BinarySniffLength bytes. Empty data is not binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	sniff := data
	if len(sniff) > BinarySniffLength {
		sniff = sniff[:BinarySniffLength]
	}

	return bytes.IndexByte(sniff, 0) >= 0
}

// DetectEncoding inspects the byte order mark and, without one, falls back to
// UTF-8 when the data is valid UTF-8 and Shift_JIS otherwise.
func DetectEncoding(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return EncodingUTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		return EncodingUTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return EncodingUTF16BE
	case utf8.Valid(data):
		return EncodingUTF8
	default:
		return EncodingShiftJIS
	}
}

// Decode converts data to UTF-8 and strips any byte order mark.
func Decode(data []byte) ([]byte, Encoding, error) {
	enc := DetectEncoding(data)

	var fallback transform.Transformer = encoding.Nop.NewDecoder()
	if enc == EncodingShiftJIS {
		fallback = japanese.ShiftJIS.NewDecoder()
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(fallback), data)
	if err != nil {
		return nil, enc, fmt.Errorf("decode %s: %w", enc, err)
	}

	return decoded, enc, nil
}
