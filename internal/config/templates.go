package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/naota/taglib/internal/id3v2/compat"
)

// Template returns the starter file for kind: "id3ctl" or "legacy".
func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "id3ctl":
		return id3ctlTemplate, nil
	case "legacy":
		return string(compat.DefaultTableTOML()), nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const id3ctlTemplate = `# latin1 | utf16 | utf16be | utf8
default_text_encoding = "latin1"
strict = false
# legacy_table = "legacy.toml"
listen_addr = ":9400"
cors_origins = ["http://localhost:3000"]
`
