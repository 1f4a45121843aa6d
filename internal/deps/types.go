// Package deps analyzes the dependency structure of a multi-module
// workspace from its manifests. It partitions each module's dependencies
// into workspace-internal and external sets, classifies modules into
// architectural categories, and builds the internal dependency graph.
package deps

import (
	"sort"

	"flowlens/internal/manifest"
)

// Sentinel versions used when a manifest entry carries no version of its
// own: "path" for path-only workspace entries and "workspace" for entries
// inheriting the workspace version.
const (
	VersionPath      = "path"
	VersionWorkspace = "workspace"
)

// AgentSpec re-exports the manifest agent declaration so consumers of
// the analysis do not need to import the manifest package.
type AgentSpec = manifest.AgentSpec

// ModuleInfo describes one workspace member.
type ModuleInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Category    string `json:"category"`

	// WorkspaceDeps maps dependencies resolved inside the workspace to
	// their declared version, or the "path" sentinel. ExternalDeps maps
	// everything else, with the "workspace" sentinel for inherited
	// entries.
	WorkspaceDeps map[string]string `json:"workspace_dependencies"`
	ExternalDeps  map[string]string `json:"external_dependencies"`
	DevDeps       map[string]string `json:"dev_dependencies"`
}

// DependencyCount is the number of regular (non-dev) dependencies.
func (m *ModuleInfo) DependencyCount() int {
	return len(m.WorkspaceDeps) + len(m.ExternalDeps)
}

// WorkspaceDepNames returns the workspace dependency names, sorted.
func (m *ModuleInfo) WorkspaceDepNames() []string {
	return sortedKeys(m.WorkspaceDeps)
}

// ExternalDepNames returns the external dependency names, sorted.
func (m *ModuleInfo) ExternalDepNames() []string {
	return sortedKeys(m.ExternalDeps)
}

// WorkspaceAnalysis is the complete dependency analysis of one workspace.
type WorkspaceAnalysis struct {
	WorkspacePath string                 `json:"workspace_path"`
	Modules       map[string]*ModuleInfo `json:"modules"`
	Agents        []manifest.AgentSpec   `json:"agents"`

	// Graph is the internal dependency adjacency, restricted to known
	// workspace members. Only modules with at least one internal edge
	// appear as keys; value slices are sorted.
	Graph map[string][]string `json:"dependency_graph"`

	Categories map[string]int `json:"category_distribution"`
}

// ModuleNames returns the analyzed module names, sorted.
func (w *WorkspaceAnalysis) ModuleNames() []string {
	names := make([]string, 0, len(w.Modules))
	for name := range w.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GraphKeys returns the dependency graph's source modules, sorted.
func (w *WorkspaceAnalysis) GraphKeys() []string {
	keys := make([]string, 0, len(w.Graph))
	for k := range w.Graph {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// InternalEdgeCount is the total number of internal dependency edges.
func (w *WorkspaceAnalysis) InternalEdgeCount() int {
	n := 0
	for _, targets := range w.Graph {
		n += len(targets)
	}
	return n
}

// ModulesInCategory returns the names of modules in a category, sorted.
func (w *WorkspaceAnalysis) ModulesInCategory(category string) []string {
	var names []string
	for name, info := range w.Modules {
		if info.Category == category {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
