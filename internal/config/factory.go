package config

import (
	"fmt"

	"github.com/naota/taglib/internal/id3v2/compat"
	"github.com/naota/taglib/internal/id3v2/factory"
	"github.com/naota/taglib/internal/id3v2/registry"
	"github.com/naota/taglib/internal/id3v2/textenc"
)

// NewFactory builds a frame factory from cfg. A default_text_encoding is
// applied as an explicit policy only when it differs from latin1, so parsed
// frames keep their own encoding under the stock setup.
func NewFactory(cfg Config) (*factory.Factory, error) {
	enc, err := textenc.ParseName(cfg.DefaultTextEncoding)
	if err != nil {
		return nil, fmt.Errorf("config default_text_encoding: %w", err)
	}
	legacy := compat.DefaultTable()
	if cfg.LegacyTable != "" {
		if legacy, err = compat.LoadTableFile(cfg.LegacyTable); err != nil {
			return nil, fmt.Errorf("config legacy_table: %w", err)
		}
	}
	f := factory.New(factory.Config{
		Strict:   cfg.Strict,
		Registry: registry.Default(),
		Legacy:   legacy,
	})
	if enc != textenc.Latin1 {
		f.SetDefaultTextEncoding(enc)
	}
	return f, nil
}
