package factory

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/naota/taglib/internal/id3v2/header"
)

// maxInflated caps a decompressed frame body.
const maxInflated = 16 << 20

var (
	errEncrypted     = errors.New("factory: encrypted frame")
	errShortFlagData = errors.New("factory: frame too short for its flag data")
	errInflate       = errors.New("factory: cannot inflate frame")
)

// unwrap strips the per-frame flag data and undoes compression and
// unsynchronisation, returning the body a constructor expects.
func unwrap(h header.Header, raw []byte) ([]byte, error) {
	if h.Encryption() {
		return nil, errEncrypted
	}
	switch h.Version {
	case header.Version3:
		return unwrapV3(h, raw)
	case header.Version4:
		return unwrapV4(h, raw)
	}
	return raw, nil
}

func unwrapV3(h header.Header, body []byte) ([]byte, error) {
	var expected uint32
	if h.Compression() {
		if len(body) < 4 {
			return nil, errShortFlagData
		}
		expected = header.DecodePlain(body[:4])
		body = body[4:]
	}
	if h.Grouping() {
		if len(body) < 1 {
			return nil, errShortFlagData
		}
		body = body[1:]
	}
	if h.Compression() {
		return inflate(body, expected)
	}
	return body, nil
}

func unwrapV4(h header.Header, body []byte) ([]byte, error) {
	if h.Grouping() {
		if len(body) < 1 {
			return nil, errShortFlagData
		}
		body = body[1:]
	}
	var expected uint32
	if h.DataLengthIndicator() {
		if len(body) < 4 {
			return nil, errShortFlagData
		}
		expected = header.DecodeSynchSafe(body[:4])
		body = body[4:]
	}
	if h.Unsynchronisation() {
		body = header.Resynchronise(body)
	}
	if h.Compression() {
		return inflate(body, expected)
	}
	return body, nil
}

func inflate(body []byte, expected uint32) ([]byte, error) {
	if expected > maxInflated {
		return nil, fmt.Errorf("%w: declared %d bytes", errInflate, expected)
	}
	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInflate, err)
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, maxInflated+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInflate, err)
	}
	if len(out) > maxInflated {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", errInflate, maxInflated)
	}
	return out, nil
}
