package header

import "fmt"

// Flags holds the two raw flag bytes of a 2.3 or 2.4 frame header. The bit
// layout depends on the version, so the typed accessors live on Header.
type Flags struct {
	Status uint8
	Format uint8
}

// 2.4 bits.
const (
	v4TagAlter     uint8 = 0x40
	v4FileAlter    uint8 = 0x20
	v4ReadOnly     uint8 = 0x10
	v4Grouping     uint8 = 0x40
	v4Compression  uint8 = 0x08
	v4Encryption   uint8 = 0x04
	v4Unsync       uint8 = 0x02
	v4DataLenIndic uint8 = 0x01
)

// 2.3 bits.
const (
	v3TagAlter    uint8 = 0x80
	v3FileAlter   uint8 = 0x40
	v3ReadOnly    uint8 = 0x20
	v3Compression uint8 = 0x80
	v3Encryption  uint8 = 0x40
	v3Grouping    uint8 = 0x20
)

func (f Flags) String() string {
	return fmt.Sprintf("%02x%02x", f.Status, f.Format)
}

func (h Header) statusBit(v3, v4 uint8) bool {
	switch h.Version {
	case Version3:
		return h.Flags.Status&v3 != 0
	case Version4:
		return h.Flags.Status&v4 != 0
	}
	return false
}

func (h Header) formatBit(v3, v4 uint8) bool {
	switch h.Version {
	case Version3:
		return h.Flags.Format&v3 != 0
	case Version4:
		return h.Flags.Format&v4 != 0
	}
	return false
}

func (h Header) TagAlterPreservation() bool  { return h.statusBit(v3TagAlter, v4TagAlter) }
func (h Header) FileAlterPreservation() bool { return h.statusBit(v3FileAlter, v4FileAlter) }
func (h Header) ReadOnly() bool              { return h.statusBit(v3ReadOnly, v4ReadOnly) }
func (h Header) Grouping() bool              { return h.formatBit(v3Grouping, v4Grouping) }
func (h Header) Compression() bool           { return h.formatBit(v3Compression, v4Compression) }
func (h Header) Encryption() bool            { return h.formatBit(v3Encryption, v4Encryption) }

// Unsynchronisation is a 2.4-only frame flag. Earlier versions apply it to the
// whole tag.
func (h Header) Unsynchronisation() bool { return h.formatBit(0, v4Unsync) }

// DataLengthIndicator is 2.4 only. In 2.3 a compressed frame always carries
// its decompressed size instead.
func (h Header) DataLengthIndicator() bool { return h.formatBit(0, v4DataLenIndic) }
