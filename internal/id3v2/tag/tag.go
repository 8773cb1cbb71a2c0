// Package tag walks a whole ID3v2 tag and hands each frame to a factory.
package tag

import (
	"errors"
	"fmt"
	"os"

	"github.com/naota/taglib/internal/id3v2/frames"
	"github.com/naota/taglib/internal/id3v2/header"
	"github.com/naota/taglib/internal/observability"
	"github.com/rs/zerolog/log"
)

const HeaderLen = 10

// Tag header flags.
const (
	FlagUnsynchronisation uint8 = 0x80
	FlagExtendedHeader    uint8 = 0x40
	FlagExperimental      uint8 = 0x20
	FlagFooter            uint8 = 0x10

	// v22Compression reuses the extended header bit in 2.2. No scheme was
	// ever defined for it.
	v22Compression uint8 = 0x40
)

var (
	ErrNoTag              = errors.New("tag: no ID3v2 tag")
	ErrUnsupportedVersion = errors.New("tag: unsupported ID3v2 version")
	ErrExtendedHeader     = errors.New("tag: invalid extended header")
)

// FrameFactory is what Read needs from a frame factory. Implementations must
// accept every supported version, 2.2 included: Read hands over 2.2 frames
// with their 3-character identifiers and 6-byte headers, which a synchSafe
// flag alone cannot describe. A nil frame with a nil error drops the frame.
type FrameFactory interface {
	CreateFrameVersion(data []byte, v header.Version) (frames.Frame, error)
}

type Tag struct {
	Version  header.Version
	Revision uint8
	Flags    uint8
	// Size is the declared tag body size, excluding header and footer.
	Size   uint32
	Frames []frames.Frame
}

func (t *Tag) Unsynchronised() bool { return t.Flags&FlagUnsynchronisation != 0 }

// FramesByID returns the frames with the given 2.4 identifier in tag order.
func (t *Tag) FramesByID(id string) []frames.Frame {
	var out []frames.Frame
	for _, f := range t.Frames {
		if f.ID() == id {
			out = append(out, f)
		}
	}
	return out
}

// Text returns the text of the first text frame with id, or "".
func (t *Tag) Text(id string) string {
	for _, f := range t.FramesByID(id) {
		if tf, ok := f.(*frames.TextFrame); ok {
			return tf.Text()
		}
	}
	return ""
}

func ReadFile(path string, f FrameFactory) (*Tag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(data, f)
}

// Read parses the tag at the start of data. Frames the factory discards are
// skipped. Padding, a truncated frame header or an invalid identifier ends
// the walk.
func Read(data []byte, f FrameFactory) (*Tag, error) {
	t, body, err := parseHeader(data)
	if err != nil {
		if t != nil {
			observability.RecordTag(int(t.Version), false)
		}
		return nil, err
	}
	if err := t.readFrames(body, f); err != nil {
		observability.RecordTag(int(t.Version), false)
		return t, err
	}
	observability.RecordTag(int(t.Version), true)
	log.Debug().Int("version", int(t.Version)).Uint32("size", t.Size).Int("frames", len(t.Frames)).Msg("tag.Read")
	return t, nil
}

func parseHeader(data []byte) (*Tag, []byte, error) {
	if len(data) < 3 || string(data[:3]) != "ID3" {
		return nil, nil, ErrNoTag
	}
	if len(data) < HeaderLen {
		return nil, nil, fmt.Errorf("%w: tag header is %d bytes", header.ErrTruncated, len(data))
	}
	t := &Tag{
		Version:  header.Version(data[3]),
		Revision: data[4],
		Flags:    data[5],
	}
	if !t.Version.Supported() {
		return t, nil, fmt.Errorf("%w: 2.%d", ErrUnsupportedVersion, data[3])
	}
	for _, b := range data[6:10] {
		if b&0x80 != 0 {
			return t, nil, fmt.Errorf("%w: tag size is not synchsafe", ErrNoTag)
		}
	}
	t.Size = header.DecodeSynchSafe(data[6:10])
	if t.Version == header.Version2 && t.Flags&v22Compression != 0 {
		return t, nil, fmt.Errorf("%w: compressed 2.2 tag", ErrUnsupportedVersion)
	}

	body := data[HeaderLen:]
	if uint64(t.Size) < uint64(len(body)) {
		body = body[:t.Size]
	}
	if t.Version < header.Version4 && t.Unsynchronised() {
		body = header.Resynchronise(body)
	}
	if t.Version > header.Version2 && t.Flags&FlagExtendedHeader != 0 {
		var err error
		if body, err = skipExtendedHeader(body, t.Version); err != nil {
			return t, nil, err
		}
	}
	return t, body, nil
}

// skipExtendedHeader drops the extended header. Its size excludes the size
// field in 2.3 and includes it in 2.4.
func skipExtendedHeader(body []byte, v header.Version) ([]byte, error) {
	if len(body) < 4 {
		return nil, fmt.Errorf("%w: %d bytes", ErrExtendedHeader, len(body))
	}
	var n uint64
	if v == header.Version3 {
		n = uint64(header.DecodePlain(body[:4])) + 4
	} else {
		n = uint64(header.DecodeSynchSafe(body[:4]))
	}
	if n < 4 || n > uint64(len(body)) {
		return nil, fmt.Errorf("%w: declared %d bytes, %d available", ErrExtendedHeader, n, len(body))
	}
	return body[n:], nil
}

func (t *Tag) readFrames(body []byte, f FrameFactory) error {
	hlen := header.Len(t.Version)
	for off := 0; off+hlen <= len(body); {
		if body[off] == 0 {
			break
		}
		h, n, err := header.Decode(body[off:], t.Version)
		if err != nil || !header.ValidID(h.ID, t.Version) {
			log.Debug().Int("offset", off).Str("id", h.ID).Msg("tag.Read stop at garbage")
			break
		}
		end := uint64(off) + uint64(n) + uint64(h.Size)
		if end > uint64(len(body)) {
			end = uint64(len(body))
		}
		frame, err := f.CreateFrameVersion(body[off:end], t.Version)
		if err != nil {
			if errors.Is(err, header.ErrTruncated) {
				break
			}
			return fmt.Errorf("tag: frame at offset %d: %w", off, err)
		}
		if frame != nil {
			t.Frames = append(t.Frames, frame)
		}
		off = int(end)
	}
	return nil
}
