package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/naota/taglib/internal/id3v2/textenc"
	"github.com/pelletier/go-toml/v2"
)

// Config is the on-disk setup shared by id3ctl and the inspect server.
type Config struct {
	DefaultTextEncoding string   `toml:"default_text_encoding"`
	Strict              bool     `toml:"strict"`
	LegacyTable         string   `toml:"legacy_table"`
	ListenAddr          string   `toml:"listen_addr"`
	CorsOrigins         []string `toml:"cors_origins"`
}

func Default() Config {
	return Config{
		DefaultTextEncoding: textenc.Latin1.String(),
		ListenAddr:          ":9400",
		CorsOrigins:         []string{"http://localhost:3000"},
	}
}

// fileConfig mirrors Config with pointers so absent keys keep their defaults.
type fileConfig struct {
	DefaultTextEncoding *string   `toml:"default_text_encoding"`
	Strict              *bool     `toml:"strict"`
	LegacyTable         *string   `toml:"legacy_table"`
	ListenAddr          *string   `toml:"listen_addr"`
	CorsOrigins         *[]string `toml:"cors_origins"`
}

// Load layers the keys present in path over Default and validates the
// result. Unknown keys are an error.
func Load(path string) (Config, error) {
	var raw fileConfig
	if err := loadToml(path, &raw); err != nil {
		return Config{}, err
	}
	cfg := Default()
	if raw.DefaultTextEncoding != nil {
		cfg.DefaultTextEncoding = strings.TrimSpace(*raw.DefaultTextEncoding)
	}
	if raw.Strict != nil {
		cfg.Strict = *raw.Strict
	}
	if raw.LegacyTable != nil {
		cfg.LegacyTable = strings.TrimSpace(*raw.LegacyTable)
	}
	if raw.ListenAddr != nil {
		cfg.ListenAddr = strings.TrimSpace(*raw.ListenAddr)
	}
	if raw.CorsOrigins != nil {
		cfg.CorsOrigins = normalizeList(*raw.CorsOrigins)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	defer f.Close()
	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func Validate(cfg Config) error {
	if _, err := textenc.ParseName(cfg.DefaultTextEncoding); err != nil {
		return fmt.Errorf("config default_text_encoding invalid: %w", err)
	}
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return fmt.Errorf("config missing listen_addr")
	}
	if len(cfg.CorsOrigins) == 0 {
		return fmt.Errorf("config cors_origins is empty")
	}
	for i, origin := range cfg.CorsOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("cors_origins[%d] is empty", i)
		}
	}
	if cfg.LegacyTable != "" {
		if _, err := os.Stat(cfg.LegacyTable); err != nil {
			return fmt.Errorf("config legacy_table: %w", err)
		}
	}
	return nil
}
