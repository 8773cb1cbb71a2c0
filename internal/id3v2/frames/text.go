package frames

import (
	"fmt"
	"strings"

	"github.com/naota/taglib/internal/id3v2/header"
	"github.com/naota/taglib/internal/id3v2/textenc"
)

// TextFrame is a T*** text information frame other than TXXX.
type TextFrame struct {
	textBase
	values []string
}

// NewTextFrame builds a 2.4 text frame that was not parsed from bytes.
func NewTextFrame(id string, enc textenc.Encoding, values ...string) (*TextFrame, error) {
	if !header.ValidID(id, header.Version4) || !strings.HasPrefix(id, "T") || id == "TXXX" {
		return nil, fmt.Errorf("%w: %q is not a text frame", header.ErrInvalidID, id)
	}
	if !enc.Valid() {
		return nil, fmt.Errorf("%w: %d", textenc.ErrInvalidEncoding, enc)
	}
	f := &TextFrame{values: append([]string(nil), values...)}
	f.header = header.Header{ID: id, Version: header.Version4}
	f.encoding = enc
	return f, nil
}

func ParseText(h header.Header, payload []byte, policy EncodingPolicy) (Frame, error) {
	enc, rest, err := leadingEncoding(h.ID, payload)
	if err != nil {
		return nil, err
	}
	f := &TextFrame{}
	f.header = h
	f.encoding = policy.resolve(enc)
	for _, field := range textenc.Split(rest, enc) {
		s, err := decodeText(h.ID, field, enc)
		if err != nil {
			return nil, err
		}
		f.values = append(f.values, s)
	}
	return f, nil
}

func (f *TextFrame) Values() []string { return append([]string(nil), f.values...) }

// Text joins multiple values the way most players display them.
func (f *TextFrame) Text() string { return strings.Join(f.values, " / ") }

func (f *TextFrame) SetValues(values ...string) { f.values = append([]string(nil), values...) }

func (f *TextFrame) String() string {
	return fmt.Sprintf("%s[%s]: %q", f.ID(), f.encoding, f.values)
}

// UserTextFrame is TXXX: a described, user defined text value.
type UserTextFrame struct {
	textBase
	Description string
	values      []string
}

func ParseUserText(h header.Header, payload []byte, policy EncodingPolicy) (Frame, error) {
	enc, rest, err := leadingEncoding(h.ID, payload)
	if err != nil {
		return nil, err
	}
	desc, rest, _ := textenc.Cut(rest, enc)
	f := &UserTextFrame{}
	f.header = h
	f.encoding = policy.resolve(enc)
	if f.Description, err = decodeText(h.ID, desc, enc); err != nil {
		return nil, err
	}
	for _, field := range textenc.Split(rest, enc) {
		s, err := decodeText(h.ID, field, enc)
		if err != nil {
			return nil, err
		}
		f.values = append(f.values, s)
	}
	return f, nil
}

func (f *UserTextFrame) Values() []string { return append([]string(nil), f.values...) }

func (f *UserTextFrame) String() string {
	return fmt.Sprintf("%s[%s]: %q=%q", f.ID(), f.encoding, f.Description, f.values)
}
