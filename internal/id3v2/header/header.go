package header

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Version is the ID3v2 major revision a frame was written with.
type Version uint8

const (
	Version2 Version = 2
	Version3 Version = 3
	Version4 Version = 4
)

const (
	LegacyLen  = 6
	CurrentLen = 10

	// MaxSynchSafe is the largest value a 4-byte synchsafe integer can carry.
	MaxSynchSafe uint32 = 1<<28 - 1
)

var (
	ErrTruncated          = errors.New("header: truncated frame header")
	ErrUnsupportedVersion = errors.New("header: unsupported version")
	ErrSizeOverflow       = errors.New("header: size does not fit")
	ErrInvalidID          = errors.New("header: invalid frame identifier")
)

// Header is the decoded fixed part of one frame.
type Header struct {
	ID      string
	Size    uint32
	Flags   Flags
	Version Version
}

func (v Version) Supported() bool {
	return v >= Version2 && v <= Version4
}

// IDLen is the identifier width for v.
func (v Version) IDLen() int {
	if v == Version2 {
		return 3
	}
	return 4
}

// Len returns the fixed header width for v, or 0 if v is unsupported.
func Len(v Version) int {
	switch v {
	case Version2:
		return LegacyLen
	case Version3, Version4:
		return CurrentLen
	default:
		return 0
	}
}

// Decode reads the frame header at the start of buf. The declared size is not
// checked against len(buf).
func Decode(buf []byte, v Version) (Header, int, error) {
	n := Len(v)
	if n == 0 {
		return Header{}, 0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	if len(buf) < n {
		return Header{}, 0, fmt.Errorf("%w: need %d bytes, got %d", ErrTruncated, n, len(buf))
	}

	h := Header{Version: v}
	switch v {
	case Version2:
		h.ID = string(buf[0:3])
		h.Size = DecodePlain(buf[3:6])
	case Version3:
		h.ID = string(buf[0:4])
		h.Size = binary.BigEndian.Uint32(buf[4:8])
		h.Flags = Flags{Status: buf[8], Format: buf[9]}
	case Version4:
		h.ID = string(buf[0:4])
		h.Size = DecodeSynchSafe(buf[4:8])
		h.Flags = Flags{Status: buf[8], Format: buf[9]}
	}
	return h, n, nil
}

// Encode is the inverse of Decode.
func Encode(h Header) ([]byte, error) {
	n := Len(h.Version)
	if n == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if len(h.ID) != h.Version.IDLen() {
		return nil, fmt.Errorf("%w: %q for version %d", ErrInvalidID, h.ID, h.Version)
	}

	buf := make([]byte, n)
	copy(buf, h.ID)
	switch h.Version {
	case Version2:
		if h.Size > 0xFFFFFF {
			return nil, fmt.Errorf("%w: %d in 3 bytes", ErrSizeOverflow, h.Size)
		}
		buf[3] = byte(h.Size >> 16)
		buf[4] = byte(h.Size >> 8)
		buf[5] = byte(h.Size)
	case Version3:
		binary.BigEndian.PutUint32(buf[4:8], h.Size)
		buf[8], buf[9] = h.Flags.Status, h.Flags.Format
	case Version4:
		size, err := EncodeSynchSafe(h.Size)
		if err != nil {
			return nil, err
		}
		copy(buf[4:8], size[:])
		buf[8], buf[9] = h.Flags.Status, h.Flags.Format
	}
	return buf, nil
}

// DecodeSynchSafe reassembles up to four 7-bit groups. High bits are ignored.
func DecodeSynchSafe(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<7 | uint32(c&0x7F)
	}
	return v
}

func EncodeSynchSafe(v uint32) ([4]byte, error) {
	var out [4]byte
	if v > MaxSynchSafe {
		return out, fmt.Errorf("%w: %d exceeds 28 bits", ErrSizeOverflow, v)
	}
	for i := 3; i >= 0; i-- {
		out[i] = byte(v & 0x7F)
		v >>= 7
	}
	return out, nil
}

// DecodePlain reads an unsigned big-endian integer of up to four bytes.
func DecodePlain(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

// ValidID reports whether id is a well-formed identifier for v.
func ValidID(id string, v Version) bool {
	if len(id) != v.IDLen() {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

func (h Header) String() string {
	return fmt.Sprintf("Header{ID:%s, Size:%d, Version:2.%d, Flags:%s}", h.ID, h.Size, h.Version, h.Flags)
}
