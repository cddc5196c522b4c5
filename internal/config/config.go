// Package config loads the tool configuration from ngm.toml in the project
// root. Every field has a default, so a missing file is not an error.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const FileName = "ngm.toml"

type Config struct {
	// Extensions are the template file suffixes the index scans.
	Extensions []string `toml:"extensions"`
	// SchemaPath points at a project element schema merged over the
	// built-in one.
	SchemaPath string `toml:"schema_path"`
	// TrimText makes fmt trim whitespace around text nodes.
	TrimText bool `toml:"trim_text"`
	// CachePath is the index cache database, relative to the project root.
	CachePath string `toml:"cache_path"`
}

func Default() *Config {
	return &Config{
		Extensions: []string{".html", ".ng.html"},
		TrimText:   true,
		CachePath:  ".ngm-cache.db",
	}
}

// Load reads projectRoot/ngm.toml over the defaults. A missing file yields
// the defaults; a malformed one is an error.
func Load(projectRoot string) (*Config, error) {
	cfg := Default()
	content, err := os.ReadFile(filepath.Join(projectRoot, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(content, cfg); err != nil {
		return nil, err
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = Default().Extensions
	}
	return cfg, nil
}
