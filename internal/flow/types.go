// Package flow builds per-function control-flow graphs from source text
// using line-level heuristics. No parsing or AST construction happens here;
// functions are located by signature matching and brace tracking, and each
// significant line becomes one graph node.
package flow

import (
	"fmt"
	"sort"
)

// NodeType classifies what a control-flow node represents.
type NodeType string

const (
	NodeEntry           NodeType = "entry"
	NodeExit            NodeType = "exit"
	NodeStatement       NodeType = "statement"
	NodeCondition       NodeType = "condition"
	NodeLoop            NodeType = "loop"
	NodeFunctionCall    NodeType = "function_call"
	NodeReturnPoint     NodeType = "return_point"
	NodeAsyncPoint      NodeType = "async_point"
	NodeAwaitPoint      NodeType = "await_point"
	NodeSpawnPoint      NodeType = "spawn_point"
	NodeErrorHandler    NodeType = "error_handler"
	NodeStateTransition NodeType = "state_transition"
)

// Edge types. Control is the default; async and error mark suspension and
// propagation edges, inferred marks cross-component interactions derived
// from call-name matching rather than observed control flow.
const (
	EdgeControl  = "control"
	EdgeAsync    = "async"
	EdgeError    = "error"
	EdgeInferred = "inferred"
)

// Node is a single vertex in a function's control-flow graph.
type Node struct {
	ID               string   `json:"id"`
	Type             NodeType `json:"node_type"`
	Label            string   `json:"label"`
	SourceLine       int      `json:"source_line"`
	SourceFile       string   `json:"source_file"`
	ExecutionPattern string   `json:"execution_pattern,omitempty"`
}

// Edge connects two nodes within a function's control-flow graph.
type Edge struct {
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	Type        string  `json:"edge_type"`
	Label       string  `json:"label,omitempty"`
	Condition   string  `json:"condition,omitempty"`
	Probability float64 `json:"probability"`
}

// FunctionSpan locates one function inside a source file.
type FunctionSpan struct {
	Name       string `json:"name"`
	FilePath   string `json:"file_path"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
	Async      bool   `json:"async"`
	ReturnType string `json:"return_type,omitempty"`
}

// Key returns the identity of the span's function.
func (s FunctionSpan) Key() FunctionKey {
	return FunctionKey{FilePath: s.FilePath, Name: s.Name}
}

// FunctionKey identifies a function by file path and name. Two functions
// with the same name in different files are distinct keys.
type FunctionKey struct {
	FilePath string `json:"file_path"`
	Name     string `json:"name"`
}

func (k FunctionKey) String() string {
	return fmt.Sprintf("%s:%s", k.FilePath, k.Name)
}

// Metrics holds the complexity measurements for one function.
type Metrics struct {
	Cyclomatic    int `json:"cyclomatic_complexity"`
	AsyncScore    int `json:"async_complexity"`
	ErrorHandling int `json:"error_handling_complexity"`
	TotalNodes    int `json:"total_nodes"`
	TotalEdges    int `json:"total_edges"`
}

// FunctionFlow is the complete control-flow analysis of one function.
type FunctionFlow struct {
	Span    FunctionSpan     `json:"span"`
	Nodes   map[string]*Node `json:"nodes"`
	Edges   []Edge           `json:"edges"`
	Metrics Metrics          `json:"metrics"`

	// Node id lists for notable line kinds, in source order.
	ErrorPaths       []string `json:"error_paths"`
	SpawnPoints      []string `json:"async_spawn_points"`
	StateTransitions []string `json:"state_transitions"`
}

// SortedNodes returns the flow's nodes in source order, with the entry
// node first and the exit node last. Exporters must never iterate the
// node map directly.
func (f *FunctionFlow) SortedNodes() []*Node {
	nodes := make([]*Node, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		nodes = append(nodes, n)
	}
	rank := func(n *Node) int {
		switch n.Type {
		case NodeEntry:
			return 0
		case NodeExit:
			return 2
		default:
			return 1
		}
	}
	sort.Slice(nodes, func(i, j int) bool {
		if rank(nodes[i]) != rank(nodes[j]) {
			return rank(nodes[i]) < rank(nodes[j])
		}
		if nodes[i].SourceLine != nodes[j].SourceLine {
			return nodes[i].SourceLine < nodes[j].SourceLine
		}
		return nodes[i].ID < nodes[j].ID
	})
	return nodes
}

// SortedEdges returns the flow's edges ordered by (source, target, type).
func (f *FunctionFlow) SortedEdges() []Edge {
	edges := make([]Edge, len(f.Edges))
	copy(edges, f.Edges)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		if edges[i].Target != edges[j].Target {
			return edges[i].Target < edges[j].Target
		}
		return edges[i].Type < edges[j].Type
	})
	return edges
}

// CountNodes returns how many nodes of the given type the flow contains.
func (f *FunctionFlow) CountNodes(t NodeType) int {
	n := 0
	for _, node := range f.Nodes {
		if node.Type == t {
			n++
		}
	}
	return n
}

// AsyncPattern names a recognized concurrency shape for an async function.
type AsyncPattern struct {
	Function    string   `json:"function"`
	FilePath    string   `json:"file_path"`
	AwaitPoints []string `json:"await_points"`
	SpawnPoints []string `json:"spawn_points"`
	Pattern     string   `json:"pattern"`
}

// ComponentEdge is an inferred interaction between two architectural
// components, derived from call-name matching across functions.
type ComponentEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
}

// SystemFlow aggregates the per-function flows of a whole workspace.
type SystemFlow struct {
	Functions  map[FunctionKey]*FunctionFlow `json:"-"`
	Components map[FunctionKey]string        `json:"-"`

	Interactions  []ComponentEdge `json:"component_interactions"`
	AsyncPatterns []AsyncPattern  `json:"async_coordination_patterns"`

	// Reserved extension slots. The baseline analysis leaves them empty.
	ErrorChains       []any `json:"error_propagation_chains"`
	StateMachineFlows []any `json:"state_machine_flows"`
}

// NewSystemFlow returns an empty system flow ready for merging.
func NewSystemFlow() *SystemFlow {
	return &SystemFlow{
		Functions:         make(map[FunctionKey]*FunctionFlow),
		Components:        make(map[FunctionKey]string),
		ErrorChains:       []any{},
		StateMachineFlows: []any{},
	}
}

// SortedKeys returns the system's function keys ordered by file path, then name.
func (s *SystemFlow) SortedKeys() []FunctionKey {
	keys := make([]FunctionKey, 0, len(s.Functions))
	for k := range s.Functions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].FilePath != keys[j].FilePath {
			return keys[i].FilePath < keys[j].FilePath
		}
		return keys[i].Name < keys[j].Name
	})
	return keys
}

// LookupByName returns every flow whose function name matches, ordered by
// file path. Names are not unique across a workspace.
func (s *SystemFlow) LookupByName(name string) []*FunctionFlow {
	var flows []*FunctionFlow
	for k, f := range s.Functions {
		if k.Name == name {
			flows = append(flows, f)
		}
	}
	sort.Slice(flows, func(i, j int) bool {
		return flows[i].Span.FilePath < flows[j].Span.FilePath
	})
	return flows
}
