package export

import (
	"encoding/json"
	"fmt"
	"sort"

	"flowlens/internal/deps"
	"flowlens/internal/flow"
)

// Location pins a function to its line range.
type Location struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// FlowProperties carries the signature-level facts of a function.
type FlowProperties struct {
	IsAsync    bool   `json:"is_async"`
	ReturnType string `json:"return_type"`
}

// FlowNode is the document form of a graph node. It differs from the
// in-memory node only in the key used for the node type.
type FlowNode struct {
	ID               string `json:"id"`
	Type             string `json:"type"`
	Label            string `json:"label"`
	SourceLine       int    `json:"source_line"`
	SourceFile       string `json:"source_file"`
	ExecutionPattern string `json:"execution_pattern,omitempty"`
}

// FlowPatterns groups the notable node id lists of one function.
type FlowPatterns struct {
	ErrorPaths       []string `json:"error_paths"`
	SpawnPoints      []string `json:"async_spawn_points"`
	StateTransitions []string `json:"state_transitions"`
}

// FlowDocument is the structured JSON form of one function flow.
type FlowDocument struct {
	FunctionName string         `json:"function_name"`
	FilePath     string         `json:"file_path"`
	Location     Location       `json:"location"`
	Properties   FlowProperties `json:"properties"`
	Metrics      flow.Metrics   `json:"complexity_metrics"`
	Nodes        []FlowNode     `json:"nodes"`
	Edges        []flow.Edge    `json:"edges"`
	Patterns     FlowPatterns   `json:"patterns"`
	Summary      string         `json:"analysis_summary"`
}

// NewFlowDocument flattens a function flow into its document form.
func NewFlowDocument(f *flow.FunctionFlow) *FlowDocument {
	doc := &FlowDocument{
		FunctionName: f.Span.Name,
		FilePath:     f.Span.FilePath,
		Location:     Location{StartLine: f.Span.StartLine, EndLine: f.Span.EndLine},
		Properties:   FlowProperties{IsAsync: f.Span.Async, ReturnType: f.Span.ReturnType},
		Metrics:      f.Metrics,
		Nodes:        make([]FlowNode, 0, len(f.Nodes)),
		Edges:        f.SortedEdges(),
		Patterns: FlowPatterns{
			ErrorPaths:       f.ErrorPaths,
			SpawnPoints:      f.SpawnPoints,
			StateTransitions: f.StateTransitions,
		},
		Summary: FlowCharacterization(f),
	}
	for _, n := range f.SortedNodes() {
		doc.Nodes = append(doc.Nodes, FlowNode{
			ID:               n.ID,
			Type:             string(n.Type),
			Label:            n.Label,
			SourceLine:       n.SourceLine,
			SourceFile:       n.SourceFile,
			ExecutionPattern: n.ExecutionPattern,
		})
	}
	return doc
}

// WorkspaceInfo summarizes the scale of an analyzed workspace.
type WorkspaceInfo struct {
	Path              string `json:"path"`
	TotalModules      int    `json:"total_modules"`
	TotalAgents       int    `json:"total_agents"`
	TotalDependencies int    `json:"total_dependencies"`
}

// ModuleDocument is the document form of one workspace module.
type ModuleDocument struct {
	Name               string   `json:"name"`
	Path               string   `json:"path"`
	Version            string   `json:"version"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	WorkspaceDeps      []string `json:"workspace_dependencies"`
	ExternalDeps       []string `json:"external_dependencies"`
	DependencyCount    int      `json:"dependency_count"`
	DevDependencyCount int      `json:"dev_dependency_count"`
}

// DepsDocument is the structured JSON form of a workspace analysis.
type DepsDocument struct {
	WorkspaceInfo WorkspaceInfo             `json:"workspace_info"`
	Modules       map[string]ModuleDocument `json:"modules"`
	Agents        []deps.AgentSpec          `json:"agents"`
	Graph         map[string][]string       `json:"dependency_graph"`
	Categories    map[string]int            `json:"category_distribution"`
	Summary       string                    `json:"analysis_summary"`
}

// NewDepsDocument flattens a workspace analysis into its document form.
func NewDepsDocument(w *deps.WorkspaceAnalysis) *DepsDocument {
	doc := &DepsDocument{
		WorkspaceInfo: WorkspaceInfo{
			Path:              w.WorkspacePath,
			TotalModules:      len(w.Modules),
			TotalAgents:       len(w.Agents),
			TotalDependencies: w.InternalEdgeCount(),
		},
		Modules:    make(map[string]ModuleDocument, len(w.Modules)),
		Agents:     w.Agents,
		Graph:      w.Graph,
		Categories: w.Categories,
		Summary:    DepsCharacterization(w),
	}
	if doc.Agents == nil {
		doc.Agents = []deps.AgentSpec{}
	}
	for name, info := range w.Modules {
		doc.Modules[name] = ModuleDocument{
			Name:               info.Name,
			Path:               info.Path,
			Version:            info.Version,
			Description:        info.Description,
			Category:           info.Category,
			WorkspaceDeps:      info.WorkspaceDepNames(),
			ExternalDeps:       info.ExternalDepNames(),
			DependencyCount:    info.DependencyCount(),
			DevDependencyCount: len(info.DevDeps),
		}
	}
	return doc
}

// DepsCharacterization produces the one-line workspace summary embedded
// in exported documents.
func DepsCharacterization(w *deps.WorkspaceAnalysis) string {
	total := len(w.Modules)
	edges := w.InternalEdgeCount()
	avg := 0.0
	if total > 0 {
		avg = float64(edges) / float64(total)
	}
	s := fmt.Sprintf("Analyzed %d modules with %d internal dependencies. Average %.1f dependencies per module.", total, edges, avg)

	top, count := mostConnected(w)
	if top != "" {
		s += fmt.Sprintf(" Most connected module: %s (%d dependencies).", top, count)
	}
	return s
}

// mostConnected returns the module with the most internal dependencies,
// breaking ties by name.
func mostConnected(w *deps.WorkspaceAnalysis) (string, int) {
	keys := w.GraphKeys()
	if len(keys) == 0 {
		return "", 0
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ci, cj := len(w.Graph[keys[i]]), len(w.Graph[keys[j]])
		if ci != cj {
			return ci > cj
		}
		return keys[i] < keys[j]
	})
	return keys[0], len(w.Graph[keys[0]])
}

// MarshalIndent renders any document with the indentation used across
// all on-disk JSON artifacts.
func MarshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
