package config

import "flowlens/internal/walker"

// DefaultPath is the conventional config file name, resolved relative to
// the working directory.
const DefaultPath = ".flowlens.yml"

// DefaultFormats are the artifact families written when none are configured.
var DefaultFormats = []Format{FormatMermaid, FormatJSON, FormatSummary}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Workspace:           ".",
		OutputDir:           "analysis_output",
		SourceRoots:         append([]string(nil), walker.DefaultSourceRoots...),
		Exclude:             append([]string(nil), walker.DefaultExcludes...),
		MaxFileSize:         walker.DefaultMaxFileSize,
		MaxWorkers:          8,
		ComplexityThreshold: 15,
		LabelLimit:          50,
		Formats:             append([]Format(nil), DefaultFormats...),
		Store: StoreConfig{
			Enabled: false,
			Path:    "analysis_output/flowlens.db",
		},
		Server: ServerConfig{
			Port:            8080,
			AllowAllOrigins: false,
		},
	}
}
