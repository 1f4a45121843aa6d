package deps

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"flowlens/internal/manifest"
)

// Analyzer builds workspace dependency analyses from manifests.
type Analyzer struct {
	logger *log.Logger
}

// NewAnalyzer returns an Analyzer. A nil logger discards output.
func NewAnalyzer(logger *log.Logger) *Analyzer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Analyzer{logger: logger}
}

// Analyze reads the workspace rooted at workspacePath and returns its
// dependency analysis. A missing workspace-root manifest is an error;
// a member without a manifest is logged and skipped.
func (a *Analyzer) Analyze(workspacePath string) (*WorkspaceAnalysis, error) {
	root, err := manifest.Load(filepath.Join(workspacePath, manifest.FileName))
	if err != nil {
		return nil, fmt.Errorf("workspace manifest: %w", err)
	}

	analysis := &WorkspaceAnalysis{
		WorkspacePath: workspacePath,
		Modules:       make(map[string]*ModuleInfo),
		Agents:        []manifest.AgentSpec{},
		Categories:    make(map[string]int),
	}

	for _, member := range a.expandMembers(workspacePath, root.Members) {
		memberDir := filepath.Join(workspacePath, member)
		if info, err := os.Stat(memberDir); err != nil || !info.IsDir() {
			a.logger.Warn("workspace member missing on disk", "member", member)
			continue
		}

		m, err := manifest.Load(filepath.Join(memberDir, manifest.FileName))
		if err != nil {
			a.logger.Warn("skipping member without readable manifest", "member", member, "err", err)
			continue
		}
		mod := buildModule(member, m)
		analysis.Modules[mod.Name] = mod
	}

	analysis.Graph = BuildGraph(analysis.Modules)
	for _, info := range analysis.Modules {
		analysis.Categories[info.Category]++
	}

	agentsPath := filepath.Join(workspacePath, manifest.AgentsPath)
	if _, err := os.Stat(agentsPath); err == nil {
		agents, err := manifest.LoadAgents(agentsPath)
		if err != nil {
			a.logger.Warn("agents file unreadable", "path", agentsPath, "err", err)
		} else {
			analysis.Agents = agents
		}
	} else {
		a.logger.Debug("no agents file", "path", agentsPath)
	}

	a.logger.Info("dependency analysis complete",
		"modules", len(analysis.Modules), "agents", len(analysis.Agents))
	return analysis, nil
}

// expandMembers resolves workspace member entries, expanding glob
// patterns against the workspace root. Results keep the member order of
// the manifest, with glob matches sorted.
func (a *Analyzer) expandMembers(root string, members []string) []string {
	var out []string
	for _, member := range members {
		if !strings.ContainsAny(member, "*?[") {
			out = append(out, filepath.FromSlash(member))
			continue
		}
		matches, err := doublestar.Glob(os.DirFS(root), member)
		if err != nil {
			a.logger.Warn("bad member pattern", "pattern", member, "err", err)
			continue
		}
		sort.Strings(matches)
		for _, match := range matches {
			out = append(out, filepath.FromSlash(match))
		}
	}
	return out
}

// buildModule partitions one member manifest into a ModuleInfo. An entry
// carrying a path is a workspace dependency; everything else is external.
// Entries without an explicit version get the matching sentinel.
func buildModule(member string, m *manifest.Manifest) *ModuleInfo {
	name := m.Name
	if name == "" {
		name = filepath.Base(member)
	}
	mod := &ModuleInfo{
		Name:          name,
		Version:       m.Version,
		Path:          filepath.ToSlash(member),
		Description:   m.Description,
		Category:      Categorize(name, m.Description),
		WorkspaceDeps: make(map[string]string),
		ExternalDeps:  make(map[string]string),
		DevDeps:       make(map[string]string),
	}

	for depName, spec := range m.Dependencies {
		if spec.Path != "" {
			mod.WorkspaceDeps[depName] = versionOr(spec.Version, VersionPath)
		} else if spec.Table {
			mod.ExternalDeps[depName] = versionOr(spec.Version, VersionWorkspace)
		} else {
			mod.ExternalDeps[depName] = spec.Version
		}
	}
	for depName, spec := range m.DevDependencies {
		switch {
		case spec.Path != "":
			mod.DevDeps[depName] = versionOr(spec.Version, VersionPath)
		case spec.Table:
			mod.DevDeps[depName] = versionOr(spec.Version, VersionWorkspace)
		default:
			mod.DevDeps[depName] = spec.Version
		}
	}
	return mod
}

func versionOr(version, fallback string) string {
	if version != "" {
		return version
	}
	return fallback
}

// BuildGraph returns the internal dependency adjacency. Edges only point
// at known workspace members, and modules with no internal edges have no
// entry at all.
func BuildGraph(modules map[string]*ModuleInfo) map[string][]string {
	graph := make(map[string][]string)
	for name, info := range modules {
		var internal []string
		for dep := range info.WorkspaceDeps {
			if _, ok := modules[dep]; ok {
				internal = append(internal, dep)
			}
		}
		if len(internal) > 0 {
			sort.Strings(internal)
			graph[name] = internal
		}
	}
	return graph
}
