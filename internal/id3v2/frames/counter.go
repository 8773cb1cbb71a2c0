package frames

import (
	"fmt"

	"github.com/naota/taglib/internal/id3v2/header"
	"github.com/naota/taglib/internal/id3v2/textenc"
)

// PlayCounterFrame is PCNT.
type PlayCounterFrame struct {
	base
	Count uint64
}

func ParsePlayCounter(h header.Header, payload []byte, _ EncodingPolicy) (Frame, error) {
	if len(payload) < 4 {
		return nil, malformed(h.ID, "counter needs at least 4 bytes, got %d", len(payload))
	}
	n, err := counter(h.ID, payload)
	if err != nil {
		return nil, err
	}
	f := &PlayCounterFrame{Count: n}
	f.header = h
	return f, nil
}

func (f *PlayCounterFrame) String() string {
	return fmt.Sprintf("%s: %d", f.ID(), f.Count)
}

// PopularimeterFrame is POPM. Count is zero when the counter is omitted.
type PopularimeterFrame struct {
	base
	Email  string
	Rating uint8
	Count  uint64
}

func ParsePopularimeter(h header.Header, payload []byte, _ EncodingPolicy) (Frame, error) {
	email, rest, found := textenc.Cut(payload, textenc.Latin1)
	if !found {
		return nil, malformed(h.ID, "email not terminated")
	}
	if len(rest) < 1 {
		return nil, malformed(h.ID, "missing rating")
	}
	e, err := decodeText(h.ID, email, textenc.Latin1)
	if err != nil {
		return nil, err
	}
	f := &PopularimeterFrame{Email: e, Rating: rest[0]}
	f.header = h
	if len(rest) > 1 {
		if f.Count, err = counter(h.ID, rest[1:]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (f *PopularimeterFrame) String() string {
	return fmt.Sprintf("%s: %s rating=%d count=%d", f.ID(), f.Email, f.Rating, f.Count)
}

func counter(id string, b []byte) (uint64, error) {
	if len(b) > 8 {
		return 0, malformed(id, "counter of %d bytes overflows", len(b))
	}
	var n uint64
	for _, c := range b {
		n = n<<8 | uint64(c)
	}
	return n, nil
}
