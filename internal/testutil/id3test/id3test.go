// Package id3test builds raw frames and tags for tests.
package id3test

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/naota/taglib/internal/id3v2/header"
)

// Frame encodes one frame for v with the declared size set to len(payload).
func Frame(t testing.TB, v header.Version, id string, payload []byte) []byte {
	t.Helper()
	return FrameWithFlags(t, v, id, header.Flags{}, payload)
}

func FrameWithFlags(t testing.TB, v header.Version, id string, flags header.Flags, payload []byte) []byte {
	t.Helper()
	hb, err := header.Encode(header.Header{ID: id, Size: uint32(len(payload)), Flags: flags, Version: v})
	if err != nil {
		t.Fatalf("id3test: encode header %s: %v", id, err)
	}
	return append(hb, payload...)
}

// Unsynchronise applies the tag level unsynchronisation scheme: a 0x00 goes
// after every 0xFF that precedes 0x00, a byte with its top three bits set, or
// the end of the buffer.
func Unsynchronise(b []byte) []byte {
	out := make([]byte, 0, len(b)+len(b)/8)
	for i, c := range b {
		out = append(out, c)
		if c != 0xFF {
			continue
		}
		if i+1 == len(b) || b[i+1]&0xE0 == 0xE0 || b[i+1] == 0x00 {
			out = append(out, 0x00)
		}
	}
	return out
}

// Text is a Latin-1 text frame payload.
func Text(values ...string) []byte {
	out := []byte{0x00}
	for i, v := range values {
		if i > 0 {
			out = append(out, 0x00)
		}
		out = append(out, v...)
	}
	return out
}

func Deflate(t testing.TB, b []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(b); err != nil {
		t.Fatalf("id3test: deflate: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("id3test: deflate close: %v", err)
	}
	return buf.Bytes()
}

// Tag wraps frames in a tag header with padding bytes of zero appended.
func Tag(t testing.TB, v header.Version, flags uint8, padding int, frames ...[]byte) []byte {
	t.Helper()
	var body []byte
	for _, f := range frames {
		body = append(body, f...)
	}
	body = append(body, make([]byte, padding)...)
	size, err := header.EncodeSynchSafe(uint32(len(body)))
	if err != nil {
		t.Fatalf("id3test: tag size: %v", err)
	}
	out := []byte{'I', 'D', '3', byte(v), 0, flags}
	out = append(out, size[:]...)
	return append(out, body...)
}
