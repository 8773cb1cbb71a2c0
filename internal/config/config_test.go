package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/naota/taglib/internal/id3v2/header"
	"github.com/naota/taglib/internal/id3v2/textenc"
	"github.com/naota/taglib/internal/testutil/id3test"
	"github.com/naota/taglib/internal/testutil/testlog"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFillsDefaults(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, "id3ctl.toml", "strict = true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Strict {
		t.Fatalf("strict not read")
	}
	if cfg.DefaultTextEncoding != "latin1" || cfg.ListenAddr != ":9400" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadOverlaysPresentKeys(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, "id3ctl.toml", `
default_text_encoding = " utf8 "
listen_addr = "127.0.0.1:9500"
cors_origins = [" http://a.example ", ""]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultTextEncoding != "utf8" || cfg.ListenAddr != "127.0.0.1:9500" {
		t.Fatalf("values not trimmed: %+v", cfg)
	}
	if len(cfg.CorsOrigins) != 1 || cfg.CorsOrigins[0] != "http://a.example" {
		t.Fatalf("unexpected cors origins: %+v", cfg.CorsOrigins)
	}
	if cfg.Strict {
		t.Fatalf("strict should keep its default")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		"bad encoding":  "default_text_encoding = \"ebcdic\"\n",
		"empty origin":  "cors_origins = [\"\"]\n",
		"missing table": "legacy_table = \"/nonexistent/legacy.toml\"\n",
		"bad toml":      "strict = \n",
		"wrong type":    "strict = \"yes\"\n",
		"unknown key":   "heartbeat = \"5s\"\n",
		"empty listen":  "listen_addr = \"  \"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, "id3ctl.toml", body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "id3ctl.toml")
	if err := WriteTemplate(path, "id3ctl", false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, "id3ctl", false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := WriteTemplate(path, "id3ctl", true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.ListenAddr != Default().ListenAddr || cfg.Strict {
		t.Fatalf("template listen addr = %q", cfg.ListenAddr)
	}
	if _, err := Template("bogus"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
	legacy, err := Template("legacy")
	if err != nil || !strings.Contains(legacy, "[v3.rename]") {
		t.Fatalf("legacy template: %v", err)
	}
}

func TestNewFactoryAppliesSettings(t *testing.T) {
	testlog.Start(t)
	table := writeConfig(t, "legacy.toml", "[v3]\ndiscard = [\"TYER\"]\n")
	cfg := Default()
	cfg.Strict = true
	cfg.DefaultTextEncoding = "utf8"
	cfg.LegacyTable = table

	f, err := NewFactory(cfg)
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	if !f.Strict() || f.DefaultTextEncoding() != textenc.UTF8 {
		t.Fatalf("settings not applied: strict=%v enc=%s", f.Strict(), f.DefaultTextEncoding())
	}
	frame, err := f.CreateFrame(id3test.Frame(t, header.Version3, "TYER", id3test.Text("2001")), false)
	if err != nil || frame != nil {
		t.Fatalf("custom legacy table not used: %v %v", frame, err)
	}

	cfg.LegacyTable = writeConfig(t, "broken.toml", "[v3.rename]\nTYER = \"X\"\n")
	if _, err := NewFactory(cfg); err == nil {
		t.Fatalf("expected error for broken legacy table")
	}
}

func TestNewFactoryDefaultKeepsParsedEncoding(t *testing.T) {
	testlog.Start(t)
	f, err := NewFactory(Default())
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	payload := []byte{byte(textenc.UTF8), 'o', 'k'}
	frame, err := f.CreateFrame(id3test.Frame(t, header.Version4, "TIT2", payload), true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	type encoded interface{ TextEncoding() textenc.Encoding }
	if frame.(encoded).TextEncoding() != textenc.UTF8 {
		t.Fatalf("stock config overrode the parsed encoding")
	}
}
