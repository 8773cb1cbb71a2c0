package frames

import (
	"fmt"
	"strings"

	"github.com/naota/taglib/internal/id3v2/header"
	"github.com/naota/taglib/internal/id3v2/textenc"
)

// PictureType is the APIC picture type byte.
type PictureType uint8

const (
	PictureOther      PictureType = 0x00
	PictureFileIcon   PictureType = 0x01
	PictureFrontCover PictureType = 0x03
	PictureBackCover  PictureType = 0x04
	PictureArtist     PictureType = 0x08
)

// PictureFrame is APIC, or a 2.2 PIC frame converted to APIC.
type PictureFrame struct {
	textBase
	MIMEType    string
	Type        PictureType
	Description string
	Data        []byte
}

// legacyImageFormats maps the 3-character PIC image format to a MIME type.
var legacyImageFormats = map[string]string{
	"JPG": "image/jpeg",
	"PNG": "image/png",
	"GIF": "image/gif",
	"BMP": "image/bmp",
}

func ParsePicture(h header.Header, payload []byte, policy EncodingPolicy) (Frame, error) {
	enc, rest, err := leadingEncoding(h.ID, payload)
	if err != nil {
		return nil, err
	}
	f := &PictureFrame{}
	f.header = h
	f.encoding = policy.resolve(enc)

	if h.Version == header.Version2 {
		if len(rest) < 3 {
			return nil, malformed(h.ID, "image format needs 3 bytes, got %d", len(rest))
		}
		format := strings.ToUpper(string(rest[:3]))
		mime, ok := legacyImageFormats[format]
		if !ok {
			mime = "image/" + strings.ToLower(format)
		}
		f.MIMEType = mime
		rest = rest[3:]
	} else {
		mime, after, found := textenc.Cut(rest, textenc.Latin1)
		if !found {
			return nil, malformed(h.ID, "mime type not terminated")
		}
		f.MIMEType = string(mime)
		rest = after
	}

	if len(rest) < 1 {
		return nil, malformed(h.ID, "missing picture type")
	}
	f.Type = PictureType(rest[0])
	desc, data, found := textenc.Cut(rest[1:], enc)
	if !found {
		return nil, malformed(h.ID, "description not terminated")
	}
	if f.Description, err = decodeText(h.ID, desc, enc); err != nil {
		return nil, err
	}
	f.Data = append([]byte(nil), data...)
	return f, nil
}

func (f *PictureFrame) String() string {
	return fmt.Sprintf("%s[%s]: %s type=%#02x %q (%d bytes)", f.ID(), f.encoding, f.MIMEType, uint8(f.Type), f.Description, len(f.Data))
}
