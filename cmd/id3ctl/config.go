package main

import (
	"strings"

	"github.com/naota/taglib/internal/config"
)

// loadCLIConfig loads path with config.Load. An empty path yields the defaults.
func loadCLIConfig(path string) (config.Config, error) {
	if strings.TrimSpace(path) == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
