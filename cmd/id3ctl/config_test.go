package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/naota/taglib/internal/config"
	"github.com/naota/taglib/internal/testutil/testlog"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadCLIConfigDefaultsAndOverrides(t *testing.T) {
	testlog.Start(t)
	path := writeFile(t, "id3ctl.toml", `
default_text_encoding = " utf8 "
listen_addr = "127.0.0.1:9500"
cors_origins = [" http://a.example ", ""]
`)
	cfg, err := loadCLIConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DefaultTextEncoding != "utf8" {
		t.Fatalf("unexpected encoding: %q", cfg.DefaultTextEncoding)
	}
	if cfg.ListenAddr != "127.0.0.1:9500" {
		t.Fatalf("unexpected listen addr: %q", cfg.ListenAddr)
	}
	if len(cfg.CorsOrigins) != 1 || cfg.CorsOrigins[0] != "http://a.example" {
		t.Fatalf("unexpected cors origins: %+v", cfg.CorsOrigins)
	}
	if cfg.Strict {
		t.Fatalf("strict should keep its default")
	}
}

func TestLoadCLIConfigEmptyPathIsDefault(t *testing.T) {
	testlog.Start(t)
	cfg, err := loadCLIConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	def := config.Default()
	if cfg.ListenAddr != def.ListenAddr || cfg.DefaultTextEncoding != def.DefaultTextEncoding {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadCLIConfigRejects(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		"unknown key":  "heartbeat = \"5s\"\n",
		"bad encoding": "default_text_encoding = \"koi8\"\n",
		"empty listen": "listen_addr = \"  \"\n",
		"bad syntax":   "strict = = true\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := loadCLIConfig(writeFile(t, "id3ctl.toml", body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
