package frames

import (
	"fmt"

	"github.com/naota/taglib/internal/id3v2/header"
	"github.com/naota/taglib/internal/id3v2/textenc"
)

// LanguageText is the shared layout of COMM and USLT:
// encoding, 3-byte language, description, text.
type LanguageText struct {
	textBase
	Language    string
	Description string
	Text        string
}

func parseLanguageText(h header.Header, payload []byte, policy EncodingPolicy) (LanguageText, error) {
	enc, rest, err := leadingEncoding(h.ID, payload)
	if err != nil {
		return LanguageText{}, err
	}
	if len(rest) < 3 {
		return LanguageText{}, malformed(h.ID, "language needs 3 bytes, got %d", len(rest))
	}
	lt := LanguageText{Language: string(rest[:3])}
	lt.header = h
	lt.encoding = policy.resolve(enc)
	desc, text, _ := textenc.Cut(rest[3:], enc)
	if lt.Description, err = decodeText(h.ID, desc, enc); err != nil {
		return LanguageText{}, err
	}
	if lt.Text, err = decodeText(h.ID, text, enc); err != nil {
		return LanguageText{}, err
	}
	return lt, nil
}

func (lt *LanguageText) String() string {
	return fmt.Sprintf("%s[%s] %s %q: %q", lt.ID(), lt.encoding, lt.Language, lt.Description, lt.Text)
}

// CommentsFrame is COMM.
type CommentsFrame struct {
	LanguageText
}

func ParseComments(h header.Header, payload []byte, policy EncodingPolicy) (Frame, error) {
	lt, err := parseLanguageText(h, payload, policy)
	if err != nil {
		return nil, err
	}
	return &CommentsFrame{LanguageText: lt}, nil
}

// LyricsFrame is USLT.
type LyricsFrame struct {
	LanguageText
}

func ParseLyrics(h header.Header, payload []byte, policy EncodingPolicy) (Frame, error) {
	lt, err := parseLanguageText(h, payload, policy)
	if err != nil {
		return nil, err
	}
	return &LyricsFrame{LanguageText: lt}, nil
}
