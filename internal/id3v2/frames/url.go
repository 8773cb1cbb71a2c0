package frames

import (
	"fmt"

	"github.com/naota/taglib/internal/id3v2/header"
	"github.com/naota/taglib/internal/id3v2/textenc"
)

// URLFrame is a W*** link frame other than WXXX. URLs are always Latin-1.
type URLFrame struct {
	base
	URL string
}

func ParseURL(h header.Header, payload []byte, _ EncodingPolicy) (Frame, error) {
	field, _, _ := textenc.Cut(payload, textenc.Latin1)
	url, err := decodeText(h.ID, field, textenc.Latin1)
	if err != nil {
		return nil, err
	}
	f := &URLFrame{URL: url}
	f.header = h
	return f, nil
}

func (f *URLFrame) String() string {
	return fmt.Sprintf("%s: %s", f.ID(), f.URL)
}

// UserURLFrame is WXXX. The description follows the encoding byte, the URL
// itself is Latin-1.
type UserURLFrame struct {
	textBase
	Description string
	URL         string
}

func ParseUserURL(h header.Header, payload []byte, policy EncodingPolicy) (Frame, error) {
	enc, rest, err := leadingEncoding(h.ID, payload)
	if err != nil {
		return nil, err
	}
	desc, rest, found := textenc.Cut(rest, enc)
	if !found {
		return nil, malformed(h.ID, "description not terminated")
	}
	f := &UserURLFrame{}
	f.header = h
	f.encoding = policy.resolve(enc)
	if f.Description, err = decodeText(h.ID, desc, enc); err != nil {
		return nil, err
	}
	urlField, _, _ := textenc.Cut(rest, textenc.Latin1)
	if f.URL, err = decodeText(h.ID, urlField, textenc.Latin1); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *UserURLFrame) String() string {
	return fmt.Sprintf("%s[%s]: %q -> %s", f.ID(), f.encoding, f.Description, f.URL)
}
