package frames

import (
	"bytes"
	"fmt"

	"github.com/naota/taglib/internal/id3v2/header"
)

// UnknownFrame keeps a frame that could not be interpreted: its identifier is
// not registered, its flags could not be undone, or its payload was malformed.
// The payload is stored byte for byte as read.
type UnknownFrame struct {
	base
	payload []byte
}

func NewUnknownFrame(h header.Header, payload []byte) *UnknownFrame {
	f := &UnknownFrame{payload: bytes.Clone(payload)}
	if f.payload == nil {
		f.payload = []byte{}
	}
	f.header = h
	return f
}

// Payload returns a copy of the stored payload.
func (f *UnknownFrame) Payload() []byte { return bytes.Clone(f.payload) }

// Bytes re-emits the frame header followed by the stored payload. A 2.2 frame
// that was renamed to a 4-character identifier is written with a 2.4 header.
func (f *UnknownFrame) Bytes() ([]byte, error) {
	h := f.header
	h.Size = uint32(len(f.payload))
	if h.Version == header.Version2 && len(h.ID) != header.Version2.IDLen() {
		h.Version = header.Version4
	}
	hb, err := header.Encode(h)
	if err != nil {
		return nil, err
	}
	return append(hb, f.payload...), nil
}

func (f *UnknownFrame) String() string {
	return fmt.Sprintf("%s: unknown (%d bytes)", f.ID(), len(f.payload))
}
