// Package manifest decodes workspace build manifests (Cargo.toml) and
// agent specifications (agents.toml). Decoding is tolerant: unknown keys
// are ignored and missing sections produce empty values.
package manifest

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the manifest filename looked up in every module directory.
const FileName = "Cargo.toml"

// DepSpec is one dependency entry after normalization. TOML allows either
// a bare version string or a table carrying version, path, and workspace
// keys; both forms normalize into this struct.
type DepSpec struct {
	Version   string
	Path      string
	Workspace bool
	Table     bool // true when the entry was written as a table
}

// Manifest is a decoded module or workspace manifest.
type Manifest struct {
	Name        string
	Version     string
	Description string

	// Members is non-empty only for workspace-root manifests.
	Members []string

	Dependencies    map[string]DepSpec
	DevDependencies map[string]DepSpec
}

// rawManifest matches the TOML layout before dependency normalization.
type rawManifest struct {
	Package struct {
		Name        string `toml:"name"`
		Version     string `toml:"version"`
		Description string `toml:"description"`
	} `toml:"package"`
	Workspace struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
	Dependencies    map[string]any `toml:"dependencies"`
	DevDependencies map[string]any `toml:"dev-dependencies"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes manifest TOML.
func Parse(data []byte) (*Manifest, error) {
	var raw rawManifest
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode manifest TOML: %w", err)
	}

	m := &Manifest{
		Name:            raw.Package.Name,
		Version:         raw.Package.Version,
		Description:     raw.Package.Description,
		Members:         raw.Workspace.Members,
		Dependencies:    normalizeDeps(raw.Dependencies),
		DevDependencies: normalizeDeps(raw.DevDependencies),
	}
	return m, nil
}

func normalizeDeps(entries map[string]any) map[string]DepSpec {
	deps := make(map[string]DepSpec, len(entries))
	for name, value := range entries {
		deps[name] = normalizeDep(value)
	}
	return deps
}

func normalizeDep(value any) DepSpec {
	switch v := value.(type) {
	case string:
		return DepSpec{Version: v}
	case map[string]any:
		spec := DepSpec{Table: true}
		if s, ok := v["version"].(string); ok {
			spec.Version = s
		}
		if s, ok := v["path"].(string); ok {
			spec.Path = s
		}
		if b, ok := v["workspace"].(bool); ok {
			spec.Workspace = b
		}
		return spec
	default:
		return DepSpec{Version: fmt.Sprint(v)}
	}
}
