// Package export renders analysis results into their interchange forms:
// Mermaid diagrams, structured JSON documents, narrative markdown
// summaries, and the node/edge payloads behind the interactive viewers.
// Every exporter iterates nodes and edges in an explicitly sorted order
// so identical inputs always produce identical output.
package export

import (
	"fmt"
	"sort"
	"strings"

	"flowlens/internal/deps"
	"flowlens/internal/flow"
)

// mermaidLabelLimit caps labels inside diagram shapes.
const mermaidLabelLimit = 60

// FlowMermaid renders one function flow as a Mermaid flowchart. Node ids
// are remapped to compact N0..Nn identifiers in sorted node order.
func FlowMermaid(f *flow.FunctionFlow) string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")

	nodes := f.SortedNodes()
	mapping := make(map[string]string, len(nodes))
	for i, node := range nodes {
		cleanID := fmt.Sprintf("N%d", i)
		mapping[node.ID] = cleanID

		label := mermaidLabel(node.Label)
		switch node.Type {
		case flow.NodeEntry:
			fmt.Fprintf(&b, "    %s([\"🚀 %s\"])\n", cleanID, label)
		case flow.NodeExit:
			fmt.Fprintf(&b, "    %s([\"🏁 %s\"])\n", cleanID, label)
		case flow.NodeCondition:
			fmt.Fprintf(&b, "    %s{\"%s\"}\n", cleanID, label)
		case flow.NodeLoop:
			fmt.Fprintf(&b, "    %s[/\"🔄 %s\"\\]\n", cleanID, label)
		case flow.NodeAsyncPoint, flow.NodeAwaitPoint, flow.NodeSpawnPoint:
			fmt.Fprintf(&b, "    %s((\"⚡ %s\"))\n", cleanID, label)
		case flow.NodeErrorHandler:
			fmt.Fprintf(&b, "    %s[[\"❌ %s\"]]\n", cleanID, label)
		default:
			fmt.Fprintf(&b, "    %s[\"%s\"]\n", cleanID, label)
		}
	}

	for _, e := range f.SortedEdges() {
		source := mapping[e.Source]
		target := mapping[e.Target]

		label := e.Label
		if e.Condition != "" {
			if label != "" {
				label = fmt.Sprintf("%s [%s]", label, e.Condition)
			} else {
				label = fmt.Sprintf("[%s]", e.Condition)
			}
		}

		switch {
		case e.Type == flow.EdgeAsync:
			fmt.Fprintf(&b, "    %s -.->|\"%s\"| %s\n", source, label, target)
		case e.Type == flow.EdgeError:
			fmt.Fprintf(&b, "    %s ==>|\"%s\"| %s\n", source, label, target)
		case label != "":
			fmt.Fprintf(&b, "    %s -->|\"%s\"| %s\n", source, label, target)
		default:
			fmt.Fprintf(&b, "    %s --> %s\n", source, target)
		}
	}

	b.WriteString("\n")
	b.WriteString("    %% Styling\n")
	b.WriteString("    classDef entryNode fill:#4CAF50,stroke:#2E7D32,color:#fff\n")
	b.WriteString("    classDef exitNode fill:#F44336,stroke:#C62828,color:#fff\n")
	b.WriteString("    classDef conditionNode fill:#FFF59D,stroke:#F57F17\n")
	b.WriteString("    classDef loopNode fill:#FFECB3,stroke:#E65100\n")
	b.WriteString("    classDef asyncNode fill:#E1BEE7,stroke:#7B1FA2\n")
	b.WriteString("    classDef errorNode fill:#FFCDD2,stroke:#C62828\n")

	m := f.Metrics
	b.WriteString("\n%% Complexity Metrics:\n")
	fmt.Fprintf(&b, "%%%% Cyclomatic Complexity: %d\n", m.Cyclomatic)
	fmt.Fprintf(&b, "%%%% Async Complexity: %d\n", m.AsyncScore)
	fmt.Fprintf(&b, "%%%% Error Handling Complexity: %d\n", m.ErrorHandling)
	return b.String()
}

// DepsMermaid renders the workspace dependency graph as a Mermaid graph.
// Modules are labeled with their category and styled per category.
func DepsMermaid(w *deps.WorkspaceAnalysis) string {
	var b strings.Builder
	b.WriteString("graph TD\n")

	for _, name := range w.ModuleNames() {
		info := w.Modules[name]
		fmt.Fprintf(&b, "    %s[\"%s\\n[%s]\"]\n", sanitizeID(name), name, info.Category)
	}

	for _, source := range w.GraphKeys() {
		for _, target := range w.Graph[source] {
			fmt.Fprintf(&b, "    %s --> %s\n", sanitizeID(source), sanitizeID(target))
		}
	}

	b.WriteString("\n")
	b.WriteString("    %% Styling by category\n")
	b.WriteString("    classDef core fill:#FF6B6B,stroke:#C62828,color:#fff\n")
	b.WriteString("    classDef storage fill:#4ECDC4,stroke:#00695C,color:#fff\n")
	b.WriteString("    classDef security fill:#45B7D1,stroke:#1565C0,color:#fff\n")
	b.WriteString("    classDef runtime fill:#96CEB4,stroke:#2E7D32,color:#fff\n")
	b.WriteString("    classDef tools fill:#FFEAA7,stroke:#F57F17\n")
	b.WriteString("    classDef llm fill:#DDA0DD,stroke:#7B1FA2,color:#fff\n")
	b.WriteString("    classDef consensus fill:#98D8C8,stroke:#00695C,color:#fff\n")
	b.WriteString("    classDef orchestration fill:#F7DC6F,stroke:#F57F17\n")
	b.WriteString("    classDef messaging fill:#AED6F1,stroke:#1565C0\n")

	byCategory := make(map[string][]string)
	for _, name := range w.ModuleNames() {
		category := w.Modules[name].Category
		byCategory[category] = append(byCategory[category], sanitizeID(name))
	}
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Fprintf(&b, "    class %s %s\n", strings.Join(byCategory[category], ","), category)
	}

	b.WriteString("\n%% Dependency Analysis Metadata:\n")
	fmt.Fprintf(&b, "%%%% Total Modules: %d\n", len(w.Modules))
	fmt.Fprintf(&b, "%%%% Total Dependencies: %d\n", w.InternalEdgeCount())
	fmt.Fprintf(&b, "%%%% Total Agents: %d\n", len(w.Agents))
	return b.String()
}

// mermaidLabel makes a node label safe inside a quoted Mermaid shape.
func mermaidLabel(s string) string {
	s = strings.ReplaceAll(s, `"`, "'")
	s = strings.ReplaceAll(s, "\n", "<br/>")
	r := []rune(s)
	if len(r) > mermaidLabelLimit {
		return string(r[:mermaidLabelLimit-3]) + "..."
	}
	return s
}

// sanitizeID turns a module name into a Mermaid-safe identifier.
func sanitizeID(name string) string {
	return strings.NewReplacer("-", "_", ".", "_", "/", "_", " ", "_").Replace(name)
}
