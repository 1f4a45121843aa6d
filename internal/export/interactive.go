package export

import (
	"fmt"

	"flowlens/internal/deps"
	"flowlens/internal/flow"
)

// CytoNode wraps node attributes in the element envelope the graph
// viewer consumes.
type CytoNode struct {
	Data CytoNodeData `json:"data"`
}

type CytoNodeData struct {
	ID               string `json:"id"`
	Label            string `json:"label"`
	Type             string `json:"type"`
	SourceLine       int    `json:"source_line"`
	SourceFile       string `json:"source_file"`
	ExecutionPattern string `json:"execution_pattern"`
}

// CytoEdge wraps edge attributes in the element envelope the graph
// viewer consumes.
type CytoEdge struct {
	Data CytoEdgeData `json:"data"`
}

type CytoEdgeData struct {
	ID          string  `json:"id"`
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	Label       string  `json:"label"`
	Condition   string  `json:"condition"`
	EdgeType    string  `json:"edge_type"`
	Probability float64 `json:"probability"`
}

// FlowElements is the element payload behind the interactive flow view.
type FlowElements struct {
	Nodes []CytoNode `json:"nodes"`
	Edges []CytoEdge `json:"edges"`
}

// NewFlowElements converts a function flow into viewer elements. Nodes
// without a recorded execution pattern surface as sequential.
func NewFlowElements(f *flow.FunctionFlow) *FlowElements {
	el := &FlowElements{
		Nodes: make([]CytoNode, 0, len(f.Nodes)),
		Edges: make([]CytoEdge, 0, len(f.Edges)),
	}
	for _, n := range f.SortedNodes() {
		pattern := n.ExecutionPattern
		if pattern == "" {
			pattern = "sequential"
		}
		el.Nodes = append(el.Nodes, CytoNode{Data: CytoNodeData{
			ID:               n.ID,
			Label:            n.Label,
			Type:             string(n.Type),
			SourceLine:       n.SourceLine,
			SourceFile:       n.SourceFile,
			ExecutionPattern: pattern,
		}})
	}
	for _, e := range f.SortedEdges() {
		el.Edges = append(el.Edges, CytoEdge{Data: CytoEdgeData{
			ID:          fmt.Sprintf("%s-%s", e.Source, e.Target),
			Source:      e.Source,
			Target:      e.Target,
			Label:       e.Label,
			Condition:   e.Condition,
			EdgeType:    e.Type,
			Probability: e.Probability,
		}})
	}
	return el
}

// NetworkNode is one module in the interactive dependency view.
type NetworkNode struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	Category      string `json:"category"`
	Version       string `json:"version"`
	Description   string `json:"description"`
	WorkspaceDeps int    `json:"workspace_deps"`
	ExternalDeps  int    `json:"external_deps"`
}

// NetworkEdge is one internal dependency in the interactive view.
type NetworkEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// DepsNetwork is the node/edge payload behind the interactive
// dependency view.
type DepsNetwork struct {
	Nodes []NetworkNode `json:"nodes"`
	Edges []NetworkEdge `json:"edges"`
}

// NewDepsNetwork converts a workspace analysis into viewer elements.
func NewDepsNetwork(w *deps.WorkspaceAnalysis) *DepsNetwork {
	net := &DepsNetwork{
		Nodes: make([]NetworkNode, 0, len(w.Modules)),
		Edges: []NetworkEdge{},
	}
	for _, name := range w.ModuleNames() {
		info := w.Modules[name]
		net.Nodes = append(net.Nodes, NetworkNode{
			ID:            name,
			Label:         name,
			Category:      info.Category,
			Version:       info.Version,
			Description:   info.Description,
			WorkspaceDeps: len(info.WorkspaceDeps),
			ExternalDeps:  len(info.ExternalDeps),
		})
	}
	for _, source := range w.GraphKeys() {
		for _, target := range w.Graph[source] {
			net.Edges = append(net.Edges, NetworkEdge{Source: source, Target: target, Type: "dependency"})
		}
	}
	return net
}
