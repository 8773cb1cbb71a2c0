package registry

import (
	"maps"
	"slices"

	"github.com/naota/taglib/internal/id3v2/frames"
	"github.com/naota/taglib/internal/id3v2/header"
)

// Constructor interprets one frame payload.
type Constructor func(h header.Header, payload []byte, policy frames.EncodingPolicy) (frames.Frame, error)

// Registry maps 2.4 frame identifiers to their constructors. It is not safe
// for concurrent Register calls; build it fully before handing it out.
type Registry struct {
	constructors map[string]Constructor
}

func New() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Default returns a registry holding every frame this module interprets.
func Default() *Registry {
	r := New()
	for _, id := range textIDs {
		r.Register(id, frames.ParseText)
	}
	for _, id := range urlIDs {
		r.Register(id, frames.ParseURL)
	}
	r.Register("TXXX", frames.ParseUserText)
	r.Register("WXXX", frames.ParseUserURL)
	r.Register("COMM", frames.ParseComments)
	r.Register("USLT", frames.ParseLyrics)
	r.Register("APIC", frames.ParsePicture)
	r.Register("UFID", frames.ParseUniqueFileID)
	r.Register("PCNT", frames.ParsePlayCounter)
	r.Register("POPM", frames.ParsePopularimeter)
	return r
}

// Register adds or replaces the constructor for id.
func (r *Registry) Register(id string, c Constructor) {
	r.constructors[id] = c
}

// Lookup is an exact match on id.
func (r *Registry) Lookup(id string) (Constructor, bool) {
	c, ok := r.constructors[id]
	return c, ok
}

func (r *Registry) Len() int {
	return len(r.constructors)
}

func (r *Registry) Identifiers() []string {
	return slices.Sorted(maps.Keys(r.constructors))
}

func (r *Registry) Clone() *Registry {
	return &Registry{constructors: maps.Clone(r.constructors)}
}
