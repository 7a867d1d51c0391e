package resp

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/bytedance/sonic"
)

const debugIndent = "    "

// jsonAPI encodes like encoding/json with sorted map keys,
// but leaves <, > and & unescaped.
var jsonAPI = sonic.Config{
	CompactMarshaler: true,
	CopyString:       true,
	EscapeHTML:       false,
	SortMapKeys:      true,
	ValidateString:   true,
}.Froze()

// encode marshals v, indenting when indent is true.
func encode(v any, indent bool) ([]byte, error) {
	if indent {
		return jsonAPI.MarshalIndent(v, "", debugIndent)
	}

	return jsonAPI.Marshal(v)
}

// writeASCII writes the JSON in b to w, escaping every non-ASCII rune as \uXXXX.
// Runes outside the Basic Multilingual Plane are written as surrogate pairs.
//
// b must be valid UTF-8; non-ASCII bytes only appear inside JSON strings,
// so escaping them keeps the document valid.
func writeASCII(w io.Writer, b []byte) error {
	buf := bytes.NewBuffer(make([]byte, 0, len(b)))
	for len(b) > 0 {
		if b[0] < utf8.RuneSelf {
			buf.WriteByte(b[0])
			b = b[1:]
			continue
		}

		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(buf, `\u%04x\u%04x`, r1, r2)
			continue
		}

		fmt.Fprintf(buf, `\u%04x`, r)
	}

	_, err := buf.WriteTo(w)
	return err
}
