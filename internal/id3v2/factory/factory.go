package factory

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/naota/taglib/internal/id3v2/compat"
	"github.com/naota/taglib/internal/id3v2/frames"
	"github.com/naota/taglib/internal/id3v2/header"
	"github.com/naota/taglib/internal/id3v2/registry"
	"github.com/naota/taglib/internal/id3v2/textenc"
	"github.com/naota/taglib/internal/observability"
	"github.com/rs/zerolog/log"
)

var ErrOversizedPayload = errors.New("factory: declared frame size exceeds buffer")

// Config is the construction-time setup of a Factory.
type Config struct {
	// Strict rejects frames whose declared size exceeds the buffer instead of
	// clamping them.
	Strict bool
	// Registry is cloned at construction. Nil means registry.Default().
	Registry *registry.Registry
	// Legacy holds the 2.2/2.3 conversion rules. Nil means compat.DefaultTable().
	Legacy *compat.Table
}

func DefaultConfig() Config {
	return Config{
		Registry: registry.Default(),
		Legacy:   compat.DefaultTable(),
	}
}

// Factory turns raw frame bytes into frames. CreateFrame may be called
// concurrently; the encoding policy is guarded by a read-mostly lock.
type Factory struct {
	strict   bool
	registry *registry.Registry
	legacy   *compat.Table

	mu     sync.RWMutex
	policy frames.EncodingPolicy
}

func New(cfg Config) *Factory {
	reg := cfg.Registry
	if reg == nil {
		reg = registry.Default()
	}
	legacy := cfg.Legacy
	if legacy == nil {
		legacy = compat.DefaultTable()
	}
	return &Factory{
		strict:   cfg.Strict,
		registry: reg.Clone(),
		legacy:   legacy,
		policy:   frames.EncodingPolicy{Encoding: textenc.Latin1},
	}
}

// CreateFrame decodes one frame. synchSafe selects 2.4 (true) or 2.3 (false).
//
// A nil frame with a nil error means the frame was a legacy frame with no 2.4
// equivalent and must be dropped. The only errors are a truncated header and,
// in strict mode, ErrOversizedPayload. Anything else degrades to an
// UnknownFrame.
func (f *Factory) CreateFrame(data []byte, synchSafe bool) (frames.Frame, error) {
	if synchSafe {
		return f.CreateFrameVersion(data, header.Version4)
	}
	return f.CreateFrameVersion(data, header.Version3)
}

// CreateFrameVersion is CreateFrame for an explicit source version, including
// 2.2 with its 3-character identifiers.
func (f *Factory) CreateFrameVersion(data []byte, v header.Version) (frames.Frame, error) {
	if !v.Supported() {
		observability.RecordFrame(int(v), observability.OutcomeUnsupported)
		return nil, fmt.Errorf("factory: %w: %d", header.ErrUnsupportedVersion, v)
	}
	h, n, err := header.Decode(data, v)
	if err != nil {
		observability.RecordFrame(int(v), observability.OutcomeTruncated)
		return nil, fmt.Errorf("factory: decode header: %w", err)
	}

	if v < header.Version4 {
		from := h.ID
		switch f.legacy.Convert(&h) {
		case compat.Discard:
			log.Debug().Str("id", from).Int("version", int(v)).Msg("factory.CreateFrame discard legacy frame")
			observability.RecordFrame(int(v), observability.OutcomeDiscarded)
			return nil, nil
		case compat.Rewritten:
			log.Debug().Str("from", from).Str("to", h.ID).Int("version", int(v)).Msg("factory.CreateFrame rewrite legacy frame")
			observability.RecordFrame(int(v), observability.OutcomeRewritten)
		}
	}

	remaining := len(data) - n
	if uint64(h.Size) > uint64(remaining) {
		if f.strict {
			observability.RecordFrame(int(v), observability.OutcomeOversized)
			return nil, fmt.Errorf("%w: %s declares %d bytes, %d available", ErrOversizedPayload, h.ID, h.Size, remaining)
		}
		log.Debug().Str("id", h.ID).Uint32("declared", h.Size).Int("available", remaining).Msg("factory.CreateFrame clamp payload")
		h.Size = uint32(remaining)
	}
	raw := bytes.Clone(data[n : n+int(h.Size)])

	payload, err := unwrap(h, raw)
	if err != nil {
		log.Debug().Str("id", h.ID).Err(err).Msg("factory.CreateFrame keep frame uninterpreted")
		observability.RecordFrame(int(v), observability.OutcomeUnknown)
		return frames.NewUnknownFrame(h, raw), nil
	}

	ctor, ok := f.registry.Lookup(h.ID)
	if !ok {
		observability.RecordFrame(int(v), observability.OutcomeUnknown)
		return frames.NewUnknownFrame(h, raw), nil
	}
	frame, err := ctor(h, payload, f.encodingPolicy())
	if err != nil {
		log.Debug().Str("id", h.ID).Err(err).Msg("factory.CreateFrame payload malformed")
		observability.RecordFrame(int(v), observability.OutcomeMalformed)
		return frames.NewUnknownFrame(h, raw), nil
	}
	observability.RecordFrame(int(v), observability.OutcomeParsed)
	return frame, nil
}

// NewTextFrame builds a fresh text frame in the current default encoding.
func (f *Factory) NewTextFrame(id string, values ...string) (*frames.TextFrame, error) {
	return frames.NewTextFrame(id, f.DefaultTextEncoding(), values...)
}

// Registry returns a copy of the factory's identifier table.
func (f *Factory) Registry() *registry.Registry {
	return f.registry.Clone()
}

func (f *Factory) Strict() bool {
	return f.strict
}
