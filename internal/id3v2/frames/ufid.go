package frames

import (
	"fmt"

	"github.com/naota/taglib/internal/id3v2/header"
	"github.com/naota/taglib/internal/id3v2/textenc"
)

const maxUFIDIdentifier = 64

// UniqueFileIDFrame is UFID.
type UniqueFileIDFrame struct {
	base
	Owner      string
	Identifier []byte
}

func ParseUniqueFileID(h header.Header, payload []byte, _ EncodingPolicy) (Frame, error) {
	owner, ident, found := textenc.Cut(payload, textenc.Latin1)
	if !found {
		return nil, malformed(h.ID, "owner not terminated")
	}
	if len(ident) > maxUFIDIdentifier {
		return nil, malformed(h.ID, "identifier is %d bytes, max %d", len(ident), maxUFIDIdentifier)
	}
	o, err := decodeText(h.ID, owner, textenc.Latin1)
	if err != nil {
		return nil, err
	}
	f := &UniqueFileIDFrame{Owner: o, Identifier: append([]byte(nil), ident...)}
	f.header = h
	return f, nil
}

func (f *UniqueFileIDFrame) String() string {
	return fmt.Sprintf("%s: %s %x", f.ID(), f.Owner, f.Identifier)
}
