package config

// Format identifies one artifact family written by the exporters.
type Format string

const (
	FormatMermaid     Format = "mermaid"
	FormatJSON        Format = "json"
	FormatSummary     Format = "summary"
	FormatInteractive Format = "interactive"
)

// Config is the top-level flowlens configuration, corresponding to .flowlens.yml.
type Config struct {
	Workspace           string       `yaml:"workspace" koanf:"workspace"`
	OutputDir           string       `yaml:"output_dir" koanf:"output_dir"`
	SourceRoots         []string     `yaml:"source_roots" koanf:"source_roots"`
	Exclude             []string     `yaml:"exclude" koanf:"exclude"`
	MaxFileSize         int64        `yaml:"max_file_size" koanf:"max_file_size"`
	MaxWorkers          int          `yaml:"max_workers" koanf:"max_workers"`
	ComplexityThreshold int          `yaml:"complexity_threshold" koanf:"complexity_threshold"`
	LabelLimit          int          `yaml:"label_limit" koanf:"label_limit"`
	Formats             []Format     `yaml:"formats" koanf:"formats"`
	Store               StoreConfig  `yaml:"store" koanf:"store"`
	Server              ServerConfig `yaml:"server" koanf:"server"`
}

// StoreConfig holds the settings for the on-disk result store.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Path    string `yaml:"path" koanf:"path"`
}

// ServerConfig holds the settings for the analysis HTTP server.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// HasFormat reports whether format is among the configured outputs.
func (c *Config) HasFormat(format Format) bool {
	for _, f := range c.Formats {
		if f == format {
			return true
		}
	}
	return false
}
