// Package config handles CLI configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/petal-labs/calla/core"
)

// Config represents the CLI configuration.
type Config struct {
	// DefaultProfile names the capability profile used when --profile is not
	// passed. May name a built-in profile or one defined below.
	DefaultProfile string `yaml:"default_profile"`

	// Profiles defines additional capability profiles by name.
	Profiles map[string]ProfileConfig `yaml:"profiles"`

	// Hints maps tool names to argument-schema hints, applied on top of the
	// selected profile.
	Hints map[string]HintConfig `yaml:"hints"`
}

// ProfileConfig holds one configured capability profile.
type ProfileConfig struct {
	AllowTextFallback bool   `yaml:"allow_text_fallback"`
	LenientJSON       bool   `yaml:"lenient_json"`
	NamePolicy        string `yaml:"name_policy,omitempty"`
}

// Capabilities converts the profile into the pipeline's capability descriptor.
func (p ProfileConfig) Capabilities() (core.Capabilities, error) {
	caps := core.Capabilities{
		AllowTextFallback: p.AllowTextFallback,
		LenientJSON:       p.LenientJSON,
	}
	switch p.NamePolicy {
	case "", "concat":
		caps.NamePolicy = core.NameConcat
	case "last-wins":
		caps.NamePolicy = core.NameLastWins
	default:
		return core.Capabilities{}, fmt.Errorf("unknown name_policy: %q (want concat or last-wins)", p.NamePolicy)
	}
	return caps, nil
}

// HintConfig holds one configured schema hint.
type HintConfig struct {
	Kind      string `yaml:"kind"`
	ListField string `yaml:"list_field,omitempty"`
	ItemField string `yaml:"item_field,omitempty"`
}

// Hint converts the config entry into a schema hint.
func (h HintConfig) Hint() (core.SchemaHint, error) {
	switch h.Kind {
	case "", "structured":
		return core.SchemaHint{Kind: core.SchemaStructured}, nil
	case "list":
		return core.SchemaHint{
			Kind:      core.SchemaList,
			ListField: h.ListField,
			ItemField: h.ItemField,
		}, nil
	default:
		return core.SchemaHint{}, fmt.Errorf("unknown hint kind: %q (want structured or list)", h.Kind)
	}
}

// DefaultConfigPath returns the default configuration file path for the current platform.
// - macOS/Linux: ~/.calla/config.yaml
// - Windows: %USERPROFILE%\.calla\config.yaml
func DefaultConfigPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		// Fallback to current directory
		return "config.yaml"
	}

	return filepath.Join(homeDir, ".calla", "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// If the file doesn't exist, returns an empty config without error.
// Returns an error only if the file exists but cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Profiles: make(map[string]ProfileConfig),
		Hints:    make(map[string]HintConfig),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing config file is not an error
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]ProfileConfig)
	}
	if cfg.Hints == nil {
		cfg.Hints = make(map[string]HintConfig)
	}

	return cfg, nil
}
