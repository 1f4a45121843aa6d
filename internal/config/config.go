package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FLOWLENS_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: FLOWLENS_WORKSPACE -> workspace, etc.
	if err := k.Load(env.Provider("FLOWLENS_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "FLOWLENS_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validFormats is the set of recognized output format values.
var validFormats = map[Format]bool{
	FormatMermaid:     true,
	FormatJSON:        true,
	FormatSummary:     true,
	FormatInteractive: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Workspace == "" {
		return fmt.Errorf("workspace is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must be non-negative")
	}
	if c.MaxWorkers < 0 {
		return fmt.Errorf("max_workers must be non-negative")
	}
	if c.ComplexityThreshold < 1 {
		return fmt.Errorf("complexity_threshold must be at least 1")
	}
	if c.LabelLimit < 1 {
		return fmt.Errorf("label_limit must be at least 1")
	}

	if len(c.Formats) == 0 {
		return fmt.Errorf("at least one output format is required")
	}
	for _, f := range c.Formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format %q: must be one of mermaid, json, summary, interactive", f)
		}
	}

	if c.Store.Enabled && c.Store.Path == "" {
		return fmt.Errorf("store.path is required when the store is enabled")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	return nil
}
