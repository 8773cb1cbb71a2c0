package compat

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/naota/taglib/internal/id3v2/header"
	"github.com/rs/zerolog/log"
)

//go:embed legacy.toml
var legacyTOML []byte

// Outcome is the result of converting one legacy header.
type Outcome int

const (
	Unchanged Outcome = iota
	Rewritten
	Discard
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Rewritten:
		return "rewritten"
	case Discard:
		return "discard"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

var ErrInvalidTable = errors.New("compat: invalid legacy table")

type rules struct {
	Discard []string          `toml:"discard"`
	Rename  map[string]string `toml:"rename"`
}

type tableFile struct {
	V2 rules `toml:"v2"`
	V3 rules `toml:"v3"`
}

type versionRules struct {
	discard map[string]struct{}
	rename  map[string]string
}

// Table holds the legacy conversion rules. It is read-only once loaded.
type Table struct {
	versions map[header.Version]versionRules
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := LoadTable(bytes.NewReader(legacyTOML))
	if err != nil {
		panic(err)
	}
	return t
})

// DefaultTable returns the built-in rules for 2.2 and 2.3.
func DefaultTable() *Table {
	return defaultTable()
}

// DefaultTableTOML returns a copy of the built-in rules as TOML, the starting
// point for a custom legacy_table file.
func DefaultTableTOML() []byte {
	return bytes.Clone(legacyTOML)
}

func LoadTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("compat: load legacy table (%s): %w", path, err)
	}
	return LoadTable(bytes.NewReader(data))
}

func LoadTable(r io.Reader) (*Table, error) {
	var raw tableFile
	meta, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unexpected key %q", ErrInvalidTable, undecoded[0].String())
	}

	t := &Table{versions: make(map[header.Version]versionRules, 2)}
	for v, rs := range map[header.Version]rules{header.Version2: raw.V2, header.Version3: raw.V3} {
		vr, err := compile(v, rs)
		if err != nil {
			return nil, err
		}
		t.versions[v] = vr
	}
	log.Debug().
		Int("v2_rename", len(t.versions[header.Version2].rename)).
		Int("v3_rename", len(t.versions[header.Version3].rename)).
		Msg("compat.LoadTable ok")
	return t, nil
}

func compile(v header.Version, rs rules) (versionRules, error) {
	vr := versionRules{
		discard: make(map[string]struct{}, len(rs.Discard)),
		rename:  make(map[string]string, len(rs.Rename)),
	}
	for _, id := range rs.Discard {
		if !header.ValidID(id, v) {
			return versionRules{}, fmt.Errorf("%w: v%d discard %q is not a valid identifier", ErrInvalidTable, v, id)
		}
		vr.discard[id] = struct{}{}
	}
	for from, to := range rs.Rename {
		if !header.ValidID(from, v) {
			return versionRules{}, fmt.Errorf("%w: v%d rename source %q is not a valid identifier", ErrInvalidTable, v, from)
		}
		if !header.ValidID(to, header.Version4) {
			return versionRules{}, fmt.Errorf("%w: v%d rename %s target %q is not a 2.4 identifier", ErrInvalidTable, v, from, to)
		}
		if _, ok := vr.discard[from]; ok {
			return versionRules{}, fmt.Errorf("%w: v%d %s is both renamed and discarded", ErrInvalidTable, v, from)
		}
		vr.rename[from] = to
	}
	return vr, nil
}

// Convert rewrites h.ID to its 2.4 equivalent in place. It only looks at the
// header and never at payload bytes. 2.4 headers are always Unchanged.
func (t *Table) Convert(h *header.Header) Outcome {
	vr, ok := t.versions[h.Version]
	if !ok {
		return Unchanged
	}
	if _, drop := vr.discard[h.ID]; drop {
		return Discard
	}
	if to, ok := vr.rename[h.ID]; ok {
		h.ID = to
		return Rewritten
	}
	return Unchanged
}

// Renames returns a copy of the rename rules for v.
func (t *Table) Renames(v header.Version) map[string]string {
	return maps.Clone(t.versions[v].rename)
}

// Discarded returns the sorted discard list for v.
func (t *Table) Discarded(v header.Version) []string {
	return slices.Sorted(maps.Keys(t.versions[v].discard))
}
