package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for corelint. All fields
// are optional; nil means "not set here" so the CLI can apply
// CLI > local > global precedence.
type FileConfig struct {
	Include  *string `yaml:"include"`
	Exclude  *string `yaml:"exclude"`
	MaxBytes *int64  `yaml:"max_bytes"`
	Threads  *int    `yaml:"threads"`
	NoCache  *bool   `yaml:"no_cache"`
	Modules  *bool   `yaml:"modules"`

	// Policy points at a YAML policy file overlaying the built-in rule
	// tables (relative paths resolve against the repo root).
	Policy *string `yaml:"policy"`
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

// LoadLocal searches for a repo-local config file in the given root.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".corelint.yml", ".corelint.yaml", "corelint.yml", "corelint.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config from XDG base directory or ~/.config.
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
	p := filepath.Join(base, "corelint", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
