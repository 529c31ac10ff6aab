package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape. Pointer fields
// distinguish "unset" from zero values so CLI flags can override cleanly.
type FileConfig struct {
	OUIPath      *string  `yaml:"oui"`
	SkiplistPath *string  `yaml:"skiplist"`
	Tables       []string `yaml:"tables"`
	Include      *string  `yaml:"include"`
	Exclude      *string  `yaml:"exclude"`
	MaxBytes     *int64   `yaml:"max_bytes"`
	Enable       *string  `yaml:"enable"`
	Disable      *string  `yaml:"disable"`
	Quiet        *bool    `yaml:"quiet"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a config file next to the scanned dump root. It
// supports .vindex.yml/.yaml and vindex.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".vindex.yml", ".vindex.yaml", "vindex.yml", "vindex.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or
// ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "vindex", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
