package compat

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/naota/taglib/internal/id3v2/header"
	"github.com/naota/taglib/internal/testutil/testlog"
)

func TestConvertVersion3(t *testing.T) {
	testlog.Start(t)
	table := DefaultTable()
	cases := []struct {
		id      string
		outcome Outcome
		want    string
	}{
		{"TYER", Rewritten, "TDRC"},
		{"TORY", Rewritten, "TDOR"},
		{"IPLS", Rewritten, "TIPL"},
		{"TDAT", Discard, "TDAT"},
		{"RVAD", Discard, "RVAD"},
		{"TIT2", Unchanged, "TIT2"},
		{"ZZZZ", Unchanged, "ZZZZ"},
	}
	for _, tc := range cases {
		h := header.Header{ID: tc.id, Size: 12, Version: header.Version3}
		got := table.Convert(&h)
		if got != tc.outcome || h.ID != tc.want {
			t.Fatalf("Convert(%s) = %s/%s, want %s/%s", tc.id, got, h.ID, tc.outcome, tc.want)
		}
		if h.Size != 12 || h.Version != header.Version3 {
			t.Fatalf("Convert(%s) touched more than the identifier: %+v", tc.id, h)
		}
	}
}

func TestConvertVersion2(t *testing.T) {
	testlog.Start(t)
	table := DefaultTable()
	for from, to := range map[string]string{"TT2": "TIT2", "PIC": "APIC", "COM": "COMM", "TYE": "TDRC", "TXT": "TEXT"} {
		h := header.Header{ID: from, Version: header.Version2}
		if got := table.Convert(&h); got != Rewritten || h.ID != to {
			t.Fatalf("Convert(%s) = %s/%s, want rewritten/%s", from, got, h.ID, to)
		}
	}
	h := header.Header{ID: "CRM", Version: header.Version2}
	if got := table.Convert(&h); got != Discard {
		t.Fatalf("Convert(CRM) = %s, want discard", got)
	}
}

func TestConvertVersion4IsAlwaysUnchanged(t *testing.T) {
	testlog.Start(t)
	h := header.Header{ID: "TYER", Version: header.Version4}
	if got := DefaultTable().Convert(&h); got != Unchanged || h.ID != "TYER" {
		t.Fatalf("2.4 header converted: %s/%s", got, h.ID)
	}
}

func TestDefaultTableIsConsistent(t *testing.T) {
	testlog.Start(t)
	table := DefaultTable()
	for _, v := range []header.Version{header.Version2, header.Version3} {
		for from, to := range table.Renames(v) {
			if !header.ValidID(from, v) || !header.ValidID(to, header.Version4) {
				t.Fatalf("v%d rename %s->%s not valid", v, from, to)
			}
		}
		if len(table.Discarded(v)) == 0 {
			t.Fatalf("v%d has no discards", v)
		}
	}
	if n := len(table.Renames(header.Version2)); n != 62 {
		t.Fatalf("v2 rename count = %d", n)
	}
}

func TestRenamesReturnsCopy(t *testing.T) {
	testlog.Start(t)
	table := DefaultTable()
	m := table.Renames(header.Version3)
	m["TYER"] = "XXXX"
	h := header.Header{ID: "TYER", Version: header.Version3}
	table.Convert(&h)
	if h.ID != "TDRC" {
		t.Fatalf("caller mutation leaked into the table: %s", h.ID)
	}
}

func TestLoadTableRejectsInvalidData(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		"bad syntax":         "[v3\n",
		"unknown version":    "[v4]\ndiscard = [\"TIT2\"]\n",
		"bad target":         "[v3.rename]\nTYER = \"TDR\"\n",
		"wrong source width": "[v2.rename]\nTYER = \"TDRC\"\n",
		"rename and discard": "[v3]\ndiscard = [\"TYER\"]\n[v3.rename]\nTYER = \"TDRC\"\n",
		"lowercase discard":  "[v3]\ndiscard = [\"tyer\"]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadTable(strings.NewReader(doc))
			if !errors.Is(err, ErrInvalidTable) {
				t.Fatalf("expected ErrInvalidTable, got %v", err)
			}
		})
	}
}

func TestLoadTableFileOverridesRules(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "legacy.toml")
	doc := "[v3]\ndiscard = [\"TYER\"]\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	table, err := LoadTableFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	h := header.Header{ID: "TYER", Version: header.Version3}
	if got := table.Convert(&h); got != Discard {
		t.Fatalf("override not applied: %s", got)
	}
	h = header.Header{ID: "TORY", Version: header.Version3}
	if got := table.Convert(&h); got != Unchanged {
		t.Fatalf("custom table should not carry default renames: %s", got)
	}
}

func TestLoadTableFileMissing(t *testing.T) {
	testlog.Start(t)
	if _, err := LoadTableFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefaultTableTOMLLoads(t *testing.T) {
	testlog.Start(t)
	doc := DefaultTableTOML()
	table, err := LoadTable(strings.NewReader(string(doc)))
	if err != nil {
		t.Fatalf("load built-in toml: %v", err)
	}
	if len(table.Renames(header.Version2)) != len(DefaultTable().Renames(header.Version2)) {
		t.Fatalf("built-in toml differs from default table")
	}
	doc[0] = '!'
	if DefaultTableTOML()[0] == '!' {
		t.Fatalf("caller mutation leaked into embedded table")
	}
}
