package export

import (
	"encoding/json"
	"strings"
	"testing"

	"flowlens/internal/deps"
	"flowlens/internal/flow"
)

func sampleFlow(t *testing.T) *flow.FunctionFlow {
	t.Helper()
	src := strings.Join([]string{
		"pub async fn process_event(&mut self, event: Event) -> Result<State> {",
		"    if !event.valid() {",
		"        return Err(Error::Invalid);",
		"    }",
		"    let snapshot = self.store.read(event.key).await?;",
		"    let decoded = serde_json::from_slice(&snapshot.raw)?;",
		"    tokio::spawn(audit(event.clone()));",
		"    for entry in snapshot.entries {",
		"        self.state = transition(entry);",
		"    }",
		"    Ok(self.state)",
		"}",
	}, "\n")

	a := flow.NewAnalyzer(nil, 0)
	flows := a.AnalyzeSource("crates/toka-runtime/src/lib.rs", []byte(src))
	if len(flows) != 1 {
		t.Fatalf("AnalyzeSource() produced %d flows, want 1", len(flows))
	}
	return flows[0]
}

func sampleWorkspace() *deps.WorkspaceAnalysis {
	return &deps.WorkspaceAnalysis{
		WorkspacePath: "/tmp/ws",
		Modules: map[string]*deps.ModuleInfo{
			"toka-kernel": {
				Name:        "toka-kernel",
				Version:     "0.2.1",
				Path:        "crates/toka-kernel",
				Description: "Deterministic core",
				Category:    "core",
				WorkspaceDeps: map[string]string{
					"toka-store": "path",
				},
				ExternalDeps: map[string]string{"serde": "1.0"},
			},
			"toka-store": {
				Name:        "toka-store",
				Version:     "0.2.1",
				Path:        "crates/toka-store",
				Description: "Event persistence",
				Category:    "storage",
				ExternalDeps: map[string]string{
					"sled": "0.34",
				},
			},
		},
		Graph:      map[string][]string{"toka-kernel": {"toka-store"}},
		Categories: map[string]int{"core": 1, "storage": 1},
	}
}

func TestFlowMermaid_ShapesAndMetrics(t *testing.T) {
	f := sampleFlow(t)
	out := FlowMermaid(f)

	if !strings.HasPrefix(out, "flowchart TD\n") {
		t.Fatalf("FlowMermaid() missing header: %q", out[:20])
	}
	for _, want := range []string{
		`N0(["🚀 Function Entry"])`,
		"🔄",
		"⚡",
		"❌",
		`-.->|"await"|`,
		`==>|"error propagation"|`,
		"classDef entryNode fill:#4CAF50",
		"%% Cyclomatic Complexity: 3",
		"%% Async Complexity: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FlowMermaid() missing %q", want)
		}
	}
	if strings.Contains(out, "process_event_entry") {
		t.Error("FlowMermaid() leaked raw node ids, want remapped N* ids")
	}
}

func TestFlowMermaid_ConditionShape(t *testing.T) {
	f := sampleFlow(t)
	out := FlowMermaid(f)
	if !strings.Contains(out, `{"if !event.valid() {"}`) {
		t.Errorf("FlowMermaid() missing condition diamond, got:\n%s", out)
	}
}

func TestFlowMermaid_Deterministic(t *testing.T) {
	f := sampleFlow(t)
	if FlowMermaid(f) != FlowMermaid(f) {
		t.Error("FlowMermaid() output differs between runs")
	}
}

func TestMermaidLabel_EscapesAndTruncates(t *testing.T) {
	if got := mermaidLabel(`say "hi"` + "\n" + "bye"); got != "say 'hi'<br/>bye" {
		t.Errorf("mermaidLabel() = %q", got)
	}
	long := strings.Repeat("x", 70)
	got := mermaidLabel(long)
	if len([]rune(got)) != mermaidLabelLimit || !strings.HasSuffix(got, "...") {
		t.Errorf("mermaidLabel() long label = %q", got)
	}
}

func TestNewFlowDocument_Fields(t *testing.T) {
	f := sampleFlow(t)
	doc := NewFlowDocument(f)

	if doc.FunctionName != "process_event" {
		t.Errorf("FunctionName = %q", doc.FunctionName)
	}
	if !doc.Properties.IsAsync {
		t.Error("Properties.IsAsync = false, want true")
	}
	if doc.Location.StartLine != 1 || doc.Location.EndLine != 12 {
		t.Errorf("Location = %+v", doc.Location)
	}
	if len(doc.Nodes) != len(f.Nodes) || len(doc.Edges) != len(f.Edges) {
		t.Errorf("document has %d/%d nodes/edges, flow has %d/%d",
			len(doc.Nodes), len(doc.Edges), len(f.Nodes), len(f.Edges))
	}
	if doc.Nodes[0].Type != "entry" {
		t.Errorf("first node type = %q, want entry", doc.Nodes[0].Type)
	}
	if !strings.HasPrefix(doc.Summary, "This function exhibits ") {
		t.Errorf("Summary = %q", doc.Summary)
	}

	raw, err := MarshalIndent(doc)
	if err != nil {
		t.Fatalf("MarshalIndent() error: %v", err)
	}
	var round map[string]any
	if err := json.Unmarshal(raw, &round); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	for _, key := range []string{"function_name", "location", "properties", "complexity_metrics", "nodes", "edges", "patterns", "analysis_summary"} {
		if _, ok := round[key]; !ok {
			t.Errorf("document JSON missing key %q", key)
		}
	}
}

func TestNewFlowDocument_PatternListsNeverNull(t *testing.T) {
	src := "fn tiny() {\n}\n"
	a := flow.NewAnalyzer(nil, 0)
	doc := NewFlowDocument(a.AnalyzeSource("src/lib.rs", []byte(src))[0])

	raw, err := MarshalIndent(doc)
	if err != nil {
		t.Fatalf("MarshalIndent() error: %v", err)
	}
	if strings.Contains(string(raw), `"error_paths": null`) {
		t.Error("error_paths serialized as null, want empty list")
	}
}

func TestFlowCharacterization(t *testing.T) {
	f := sampleFlow(t)
	got := FlowCharacterization(f)
	for _, want := range []string{"low complexity", "async operations", "error handling", "iterative logic", "conditional logic", "state management"} {
		if !strings.Contains(got, want) {
			t.Errorf("FlowCharacterization() = %q, missing %q", got, want)
		}
	}
}

func TestFlowSummary_Sections(t *testing.T) {
	f := sampleFlow(t)
	out := FlowSummary(f)

	for _, want := range []string{
		"# Control Flow Analysis: process_event",
		"**Location:** crates/toka-runtime/src/lib.rs:1-12",
		"**Type:** Async Function",
		"## Complexity Metrics",
		"## Control Flow Structure",
		"## Flow Analysis",
		"## Architecture Notes",
		"• **Processor/Handler**: Core business logic execution",
		"• **Concurrency Pattern**: Spawns async tasks for parallel execution",
		"• **State Machine**: Manages state transitions and lifecycle",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FlowSummary() missing %q", want)
		}
	}
}

func TestFlowSummary_UnknownReturnType(t *testing.T) {
	src := "fn plain() {\n    let x = 1;\n}\n"
	a := flow.NewAnalyzer(nil, 0)
	out := FlowSummary(a.AnalyzeSource("src/lib.rs", []byte(src))[0])
	if !strings.Contains(out, "**Return Type:** Unknown") {
		t.Errorf("FlowSummary() = %q, want Unknown return type", out)
	}
	if !strings.Contains(out, "• **Simple Function**: Straightforward control flow") {
		t.Error("FlowSummary() missing simple function note")
	}
}

func TestNewFlowElements_Defaults(t *testing.T) {
	f := sampleFlow(t)
	el := NewFlowElements(f)

	if len(el.Nodes) != len(f.Nodes) {
		t.Fatalf("NewFlowElements() has %d nodes, want %d", len(el.Nodes), len(f.Nodes))
	}
	for _, n := range el.Nodes {
		if n.Data.ExecutionPattern == "" {
			t.Errorf("node %s has empty execution_pattern, want sequential default", n.Data.ID)
		}
	}
	for _, e := range el.Edges {
		want := e.Data.Source + "-" + e.Data.Target
		if e.Data.ID != want {
			t.Errorf("edge id = %q, want %q", e.Data.ID, want)
		}
		if e.Data.Probability != 1.0 {
			t.Errorf("edge %s probability = %v", e.Data.ID, e.Data.Probability)
		}
	}
}

func TestDepsMermaid_NodesEdgesClasses(t *testing.T) {
	w := sampleWorkspace()
	out := DepsMermaid(w)

	for _, want := range []string{
		"graph TD\n",
		`toka_kernel["toka-kernel\n[core]"]`,
		`toka_store["toka-store\n[storage]"]`,
		"toka_kernel --> toka_store",
		"classDef core fill:#FF6B6B",
		"class toka_kernel core",
		"class toka_store storage",
		"%% Total Modules: 2",
		"%% Total Dependencies: 1",
		"%% Total Agents: 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DepsMermaid() missing %q", want)
		}
	}
}

func TestNewDepsDocument_Fields(t *testing.T) {
	w := sampleWorkspace()
	doc := NewDepsDocument(w)

	if doc.WorkspaceInfo.TotalModules != 2 || doc.WorkspaceInfo.TotalDependencies != 1 {
		t.Errorf("WorkspaceInfo = %+v", doc.WorkspaceInfo)
	}
	kernel, ok := doc.Modules["toka-kernel"]
	if !ok {
		t.Fatal("document missing toka-kernel")
	}
	if kernel.DependencyCount != 2 {
		t.Errorf("toka-kernel dependency_count = %d, want 2", kernel.DependencyCount)
	}
	if len(kernel.WorkspaceDeps) != 1 || kernel.WorkspaceDeps[0] != "toka-store" {
		t.Errorf("toka-kernel workspace deps = %v", kernel.WorkspaceDeps)
	}
	if doc.Summary != "Analyzed 2 modules with 1 internal dependencies. Average 0.5 dependencies per module. Most connected module: toka-kernel (1 dependencies)." {
		t.Errorf("Summary = %q", doc.Summary)
	}

	raw, err := MarshalIndent(doc)
	if err != nil {
		t.Fatalf("MarshalIndent() error: %v", err)
	}
	if strings.Contains(string(raw), `"agents": null`) {
		t.Error("agents serialized as null, want empty list")
	}
}

func TestDepsSummary_Sections(t *testing.T) {
	w := sampleWorkspace()
	w.Agents = []deps.AgentSpec{
		{Name: "build-agent", Domain: "build-infra", Priority: "high", Capabilities: []string{"cargo", "cache"}},
	}
	out := DepsSummary(w)

	for _, want := range []string{
		"# Dependency Analysis Summary",
		"**Total Modules:** 2",
		"## Module Categories",
		"- **Core:** 1 modules",
		"- **Storage:** 1 modules",
		"### Core Components",
		"- **toka-kernel**: Deterministic core (depends on 1 internal modules)",
		"### Storage Layer",
		"- **toka-store**: Event persistence (depends on 0 internal modules)",
		"## Agent Composition",
		"### Build Infra",
		"- **build-agent**: 2 capabilities, priority: high",
		"- **Average Dependencies per Module:** 0.5",
		"- **Complexity by Category:**",
		"  - Core: 1.0 avg dependencies",
		"• **Layered Architecture**",
		"• **Agent Orchestration**: 1 agents across 1 domains for specialized tasks",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DepsSummary() missing %q", want)
		}
	}
}

func TestDepsSummary_HighDependencyModules(t *testing.T) {
	w := sampleWorkspace()
	w.Modules["toka-hub"] = &deps.ModuleInfo{
		Name: "toka-hub", Category: "runtime", Description: "Fan-in hub",
		WorkspaceDeps: map[string]string{"toka-kernel": "path", "toka-store": "path"},
	}
	w.Graph["toka-hub"] = []string{"toka-kernel", "toka-store"}
	w.Categories["runtime"] = 1

	out := DepsSummary(w)
	if !strings.Contains(out, "- **High Dependency Modules:**") {
		t.Fatalf("DepsSummary() missing high dependency section:\n%s", out)
	}
	if !strings.Contains(out, "  - toka-hub: 2 dependencies") {
		t.Error("DepsSummary() missing toka-hub entry")
	}
}

func TestDepsInsights_CoreFoundation(t *testing.T) {
	w := sampleWorkspace()
	w.Modules["toka-cli"] = &deps.ModuleInfo{Name: "toka-cli", Category: "tools"}
	w.Graph["toka-cli"] = []string{"toka-kernel"}

	out := depsInsights(w)
	if !strings.Contains(out, "• **Core Foundation**: Core components are used by 1 different categories") {
		t.Errorf("depsInsights() = %q", out)
	}
}

func TestNewDepsNetwork(t *testing.T) {
	w := sampleWorkspace()
	net := NewDepsNetwork(w)

	if len(net.Nodes) != 2 {
		t.Fatalf("NewDepsNetwork() has %d nodes, want 2", len(net.Nodes))
	}
	if net.Nodes[0].ID != "toka-kernel" {
		t.Errorf("first node = %q, want sorted order", net.Nodes[0].ID)
	}
	if len(net.Edges) != 1 || net.Edges[0].Type != "dependency" {
		t.Errorf("edges = %+v", net.Edges)
	}
}

func TestNewOverview(t *testing.T) {
	sys := flow.NewSystemFlow()
	sys.Merge([]*flow.FunctionFlow{sampleFlow(t)})
	sys.Finalize()

	o := NewOverview(sys, sampleWorkspace(), 15)
	if o.TotalFunctions != 1 || o.AsyncFunctions != 1 {
		t.Errorf("Overview = %+v", o)
	}
	if o.TotalModules != 2 {
		t.Errorf("TotalModules = %d", o.TotalModules)
	}
	if o.Complexity.Threshold != 15 {
		t.Errorf("Complexity.Threshold = %d", o.Complexity.Threshold)
	}
	if len(o.PatternCounts) == 0 {
		t.Error("PatternCounts empty, want at least one async pattern")
	}
}

func TestNewOverview_NilInputs(t *testing.T) {
	o := NewOverview(nil, nil, 15)
	if o.TotalFunctions != 0 || o.TotalModules != 0 {
		t.Errorf("Overview = %+v", o)
	}
	if o.PatternCounts == nil || o.Interactions == nil || o.Categories == nil {
		t.Error("nil maps in empty overview")
	}
}
