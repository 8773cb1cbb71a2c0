package factory

import (
	"github.com/naota/taglib/internal/id3v2/frames"
	"github.com/naota/taglib/internal/id3v2/textenc"
	"github.com/rs/zerolog/log"
)

// DefaultTextEncoding is Latin-1 until SetDefaultTextEncoding is called.
func (f *Factory) DefaultTextEncoding() textenc.Encoding {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.policy.Encoding
}

// SetDefaultTextEncoding applies to text frames created after the call, both
// parsed and built. Once set, parsed frames report this encoding instead of
// the one found in their payload. Existing frames are not touched.
func (f *Factory) SetDefaultTextEncoding(e textenc.Encoding) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.policy = frames.EncodingPolicy{Encoding: e, Explicit: true}
	log.Debug().Str("encoding", e.String()).Msg("factory.SetDefaultTextEncoding")
}

func (f *Factory) encodingPolicy() frames.EncodingPolicy {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.policy
}
