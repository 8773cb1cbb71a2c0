// Package textenc decodes the four ID3v2 text encodings.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is the value of a frame's text encoding byte.
type Encoding uint8

const (
	Latin1  Encoding = 0
	UTF16   Encoding = 1 // with byte order mark
	UTF16BE Encoding = 2
	UTF8    Encoding = 3
)

var ErrInvalidEncoding = errors.New("textenc: invalid text encoding")

func Parse(b byte) (Encoding, error) {
	e := Encoding(b)
	if !e.Valid() {
		return 0, fmt.Errorf("%w: %#x", ErrInvalidEncoding, b)
	}
	return e, nil
}

// ParseName accepts the names used in config files.
func ParseName(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latin1", "latin-1", "iso-8859-1":
		return Latin1, nil
	case "utf16", "utf-16":
		return UTF16, nil
	case "utf16be", "utf-16be":
		return UTF16BE, nil
	case "utf8", "utf-8":
		return UTF8, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidEncoding, name)
	}
}

func (e Encoding) Valid() bool {
	return e <= UTF8
}

func (e Encoding) String() string {
	switch e {
	case Latin1:
		return "latin1"
	case UTF16:
		return "utf16"
	case UTF16BE:
		return "utf16be"
	case UTF8:
		return "utf8"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
}

// TerminatorLen is 2 for the UTF-16 forms and 1 otherwise.
func (e Encoding) TerminatorLen() int {
	if e == UTF16 || e == UTF16BE {
		return 2
	}
	return 1
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case UTF16:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case UTF8:
		return unicode.UTF8
	default:
		return charmap.ISO8859_1
	}
}

// Decode converts b to a Go string. A trailing terminator is dropped.
func Decode(b []byte, e Encoding) (string, error) {
	if !e.Valid() {
		return "", fmt.Errorf("%w: %d", ErrInvalidEncoding, e)
	}
	b = trimTerminator(b, e)
	if len(b) == 0 {
		return "", nil
	}
	if e.TerminatorLen() == 2 && len(b)%2 != 0 {
		// Odd length UTF-16: drop the dangling byte rather than fail.
		b = b[:len(b)-1]
	}
	out, err := e.codec().NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("textenc: decode %s: %w", e, err)
	}
	return string(out), nil
}

// Cut splits b at the first terminator for e. found is false when b has no
// terminator, in which case field is all of b.
func Cut(b []byte, e Encoding) (field, rest []byte, found bool) {
	i := terminatorIndex(b, e)
	if i < 0 {
		return b, nil, false
	}
	return b[:i], b[i+e.TerminatorLen():], true
}

// Split breaks b into its terminator separated fields. A trailing terminator
// does not produce an empty final field.
func Split(b []byte, e Encoding) [][]byte {
	var fields [][]byte
	for len(b) > 0 {
		field, rest, found := Cut(b, e)
		fields = append(fields, field)
		if !found {
			break
		}
		b = rest
	}
	return fields
}

func terminatorIndex(b []byte, e Encoding) int {
	if e.TerminatorLen() == 1 {
		return bytes.IndexByte(b, 0)
	}
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			return i
		}
	}
	return -1
}

func trimTerminator(b []byte, e Encoding) []byte {
	n := e.TerminatorLen()
	for len(b) >= n {
		tail := b[len(b)-n:]
		if n == 1 && tail[0] == 0 || n == 2 && tail[0] == 0 && tail[1] == 0 {
			b = b[:len(b)-n]
			continue
		}
		break
	}
	return b
}
