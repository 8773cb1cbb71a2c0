package textenc

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeEachEncoding(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		enc  Encoding
		want string
	}{
		{"latin1", []byte("Caf\xe9\x00"), Latin1, "Café"},
		{"utf16 le bom", []byte{0xFF, 0xFE, 'h', 0, 'i', 0, 0, 0}, UTF16, "hi"},
		{"utf16 be bom", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, UTF16, "hi"},
		{"utf16be", []byte{0, 'o', 0, 'k', 0, 0}, UTF16BE, "ok"},
		{"utf8", []byte("na\xc3\xafve"), UTF8, "naïve"},
		{"empty", nil, UTF8, ""},
		{"only terminator", []byte{0, 0}, UTF16BE, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(tc.in, tc.enc)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tc.want {
				t.Fatalf("decode = %q, want %q", got, tc.want)
			}
		})
	}
}

func encode(s string, e Encoding) ([]byte, error) {
	return e.codec().NewEncoder().Bytes([]byte(s))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, e := range []Encoding{Latin1, UTF16, UTF16BE, UTF8} {
		b, err := encode("Björk", e)
		if err != nil {
			t.Fatalf("encode %s: %v", e, err)
		}
		s, err := Decode(b, e)
		if err != nil {
			t.Fatalf("decode %s: %v", e, err)
		}
		if s != "Björk" {
			t.Fatalf("%s round trip = %q", e, s)
		}
	}
}

func TestEncodeLatin1RejectsUnmappable(t *testing.T) {
	if _, err := encode("日本", Latin1); err == nil {
		t.Fatalf("expected error encoding CJK as latin1")
	}
}

func TestSplitSingleByteTerminator(t *testing.T) {
	got := Split([]byte("one\x00two\x00"), Latin1)
	if len(got) != 2 || string(got[0]) != "one" || string(got[1]) != "two" {
		t.Fatalf("split = %q", got)
	}
}

func TestSplitUTF16IsAligned(t *testing.T) {
	// "Ā" is 01 00 in big endian; the 00 00 spanning the pair boundary
	// must not be read as a terminator.
	in := []byte{0x01, 0x00, 0x00, 0x41, 0x00, 0x00, 0x00, 0x42}
	got := Split(in, UTF16BE)
	if len(got) != 2 {
		t.Fatalf("split len = %d: %v", len(got), got)
	}
	if !bytes.Equal(got[0], []byte{0x01, 0x00, 0x00, 0x41}) || !bytes.Equal(got[1], []byte{0x00, 0x42}) {
		t.Fatalf("split = %v", got)
	}
}

func TestCutWithoutTerminator(t *testing.T) {
	field, rest, found := Cut([]byte("abc"), UTF8)
	if found || string(field) != "abc" || rest != nil {
		t.Fatalf("cut = %q %q %v", field, rest, found)
	}
}

func TestParse(t *testing.T) {
	if e, err := Parse(3); err != nil || e != UTF8 {
		t.Fatalf("parse 3 = %v %v", e, err)
	}
	if _, err := Parse(4); !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
	if e, err := ParseName(" UTF-16BE "); err != nil || e != UTF16BE {
		t.Fatalf("parse name = %v %v", e, err)
	}
	if _, err := ParseName("ebcdic"); !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
}
