package frames

import (
	"errors"
	"fmt"

	"github.com/naota/taglib/internal/id3v2/header"
	"github.com/naota/taglib/internal/id3v2/textenc"
)

var ErrMalformed = errors.New("frames: malformed payload")

// Frame is one decoded tag frame.
type Frame interface {
	ID() string
	Header() header.Header
	String() string
}

// TextBearing is implemented by frames that carry an encoding byte.
type TextBearing interface {
	Frame
	TextEncoding() textenc.Encoding
	SetTextEncoding(textenc.Encoding)
}

// EncodingPolicy is the default encoding handed to interpreters. When Explicit
// is false, parsed frames keep the encoding found in the payload.
type EncodingPolicy struct {
	Encoding textenc.Encoding
	Explicit bool
}

func (p EncodingPolicy) resolve(parsed textenc.Encoding) textenc.Encoding {
	if p.Explicit {
		return p.Encoding
	}
	return parsed
}

type base struct {
	header header.Header
}

func (b *base) ID() string            { return b.header.ID }
func (b *base) Header() header.Header { return b.header }

type textBase struct {
	base
	encoding textenc.Encoding
}

func (t *textBase) TextEncoding() textenc.Encoding     { return t.encoding }
func (t *textBase) SetTextEncoding(e textenc.Encoding) { t.encoding = e }

func malformed(id, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformed, id, fmt.Sprintf(format, args...))
}

// leadingEncoding reads the encoding byte every text-bearing payload starts with.
func leadingEncoding(id string, payload []byte) (textenc.Encoding, []byte, error) {
	if len(payload) < 1 {
		return 0, nil, malformed(id, "empty payload")
	}
	enc, err := textenc.Parse(payload[0])
	if err != nil {
		return 0, nil, malformed(id, "%v", err)
	}
	return enc, payload[1:], nil
}

func decodeText(id string, b []byte, enc textenc.Encoding) (string, error) {
	s, err := textenc.Decode(b, enc)
	if err != nil {
		return "", malformed(id, "%v", err)
	}
	return s, nil
}
