package export

import (
	"fmt"
	"sort"
	"strings"

	"flowlens/internal/deps"
	"flowlens/internal/flow"
)

// FlowCharacterization condenses a function's control flow traits into
// one sentence, suitable for embedding in documents and reports.
func FlowCharacterization(f *flow.FunctionFlow) string {
	var traits []string

	switch {
	case f.Metrics.Cyclomatic > 10:
		traits = append(traits, "high complexity")
	case f.Metrics.Cyclomatic > 5:
		traits = append(traits, "moderate complexity")
	default:
		traits = append(traits, "low complexity")
	}

	if f.Span.Async {
		if f.Metrics.AsyncScore > 3 {
			traits = append(traits, "complex async coordination")
		} else if f.Metrics.AsyncScore > 0 {
			traits = append(traits, "async operations")
		}
	}

	if f.Metrics.ErrorHandling > 3 {
		traits = append(traits, "comprehensive error handling")
	} else if f.Metrics.ErrorHandling > 0 {
		traits = append(traits, "error handling")
	}

	if f.CountNodes(flow.NodeLoop) > 0 {
		traits = append(traits, "iterative logic")
	}
	if f.CountNodes(flow.NodeCondition) > 0 {
		traits = append(traits, "conditional logic")
	}
	if f.CountNodes(flow.NodeStateTransition) > 0 {
		traits = append(traits, "state management")
	}

	return fmt.Sprintf("This function exhibits %s.", strings.Join(traits, ", "))
}

// flowInsights derives role and pattern bullets from a function's name
// and notable nodes.
func flowInsights(f *flow.FunctionFlow) string {
	var insights []string

	name := f.Span.Name
	switch {
	case hasAnyPrefix(name, "init", "new", "create"):
		insights = append(insights, "• **Constructor/Initializer**: Sets up initial state and configuration")
	case hasAnyPrefix(name, "process", "handle", "execute"):
		insights = append(insights, "• **Processor/Handler**: Core business logic execution")
	case hasAnyPrefix(name, "validate", "check", "verify"):
		insights = append(insights, "• **Validator**: Input validation and verification logic")
	}

	if len(f.SpawnPoints) > 0 {
		insights = append(insights, "• **Concurrency Pattern**: Spawns async tasks for parallel execution")
	}
	if len(f.ErrorPaths) > 2 {
		insights = append(insights, "• **Error Resilience**: Multiple error handling strategies")
	}
	if len(f.StateTransitions) > 0 {
		insights = append(insights, "• **State Machine**: Manages state transitions and lifecycle")
	}

	if len(insights) == 0 {
		return "• **Simple Function**: Straightforward control flow"
	}
	return strings.Join(insights, "\n")
}

// FlowSummary renders a human and LLM readable markdown summary of one
// function flow.
func FlowSummary(f *flow.FunctionFlow) string {
	kind := "Sync Function"
	if f.Span.Async {
		kind = "Async Function"
	}
	returnType := f.Span.ReturnType
	if returnType == "" {
		returnType = "Unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Control Flow Analysis: %s\n\n", f.Span.Name)
	fmt.Fprintf(&b, "**Location:** %s:%d-%d\n", f.Span.FilePath, f.Span.StartLine, f.Span.EndLine)
	fmt.Fprintf(&b, "**Type:** %s\n", kind)
	fmt.Fprintf(&b, "**Return Type:** %s\n\n", returnType)

	b.WriteString("## Complexity Metrics\n")
	fmt.Fprintf(&b, "- Cyclomatic Complexity: %d\n", f.Metrics.Cyclomatic)
	fmt.Fprintf(&b, "- Async Complexity: %d\n", f.Metrics.AsyncScore)
	fmt.Fprintf(&b, "- Error Handling Complexity: %d\n\n", f.Metrics.ErrorHandling)

	b.WriteString("## Control Flow Structure\n")
	fmt.Fprintf(&b, "- Total Nodes: %d\n", len(f.Nodes))
	fmt.Fprintf(&b, "- Total Edges: %d\n\n", len(f.Edges))

	b.WriteString("## Flow Analysis\n")
	b.WriteString(FlowCharacterization(f))
	b.WriteString("\n\n")

	b.WriteString("## Architecture Notes\n")
	b.WriteString(flowInsights(f))
	b.WriteString("\n")
	return b.String()
}

// DepsSummary renders a human and LLM readable markdown summary of a
// workspace analysis.
func DepsSummary(w *deps.WorkspaceAnalysis) string {
	var b strings.Builder
	b.WriteString("# Dependency Analysis Summary\n\n")
	fmt.Fprintf(&b, "**Workspace:** %s\n", w.WorkspacePath)
	fmt.Fprintf(&b, "**Total Modules:** %d\n", len(w.Modules))
	fmt.Fprintf(&b, "**Total Agents:** %d\n", len(w.Agents))
	fmt.Fprintf(&b, "**Total Internal Dependencies:** %d\n\n", w.InternalEdgeCount())

	b.WriteString("## Module Categories\n")
	categories := make([]string, 0, len(w.Categories))
	for category := range w.Categories {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Fprintf(&b, "- **%s:** %d modules\n", titleCase(category), w.Categories[category])
	}

	b.WriteString("\n## High-Level Architecture\n\n")
	b.WriteString("### Core Components\n")
	writeCategoryModules(&b, w, "core")
	b.WriteString("\n### Storage Layer\n")
	writeCategoryModules(&b, w, "storage")
	b.WriteString("\n### Runtime & Orchestration\n")
	writeCategoryModules(&b, w, "runtime", "orchestration")

	if len(w.Agents) > 0 {
		b.WriteString("\n## Agent Composition\n")
		byDomain := make(map[string][]deps.AgentSpec)
		for _, agent := range w.Agents {
			byDomain[agent.Domain] = append(byDomain[agent.Domain], agent)
		}
		domains := make([]string, 0, len(byDomain))
		for domain := range byDomain {
			domains = append(domains, domain)
		}
		sort.Strings(domains)
		for _, domain := range domains {
			fmt.Fprintf(&b, "### %s\n", titleCase(strings.ReplaceAll(domain, "-", " ")))
			for _, agent := range byDomain[domain] {
				fmt.Fprintf(&b, "- **%s**: %d capabilities, priority: %s\n", agent.Name, len(agent.Capabilities), agent.Priority)
			}
		}
	}

	b.WriteString("\n## Dependency Complexity Analysis\n")
	b.WriteString(depsComplexity(w))
	b.WriteString("\n\n## Architecture Insights\n")
	b.WriteString(depsInsights(w))
	b.WriteString("\n")
	return b.String()
}

// writeCategoryModules lists every module in the given categories with
// its description and internal dependency count.
func writeCategoryModules(b *strings.Builder, w *deps.WorkspaceAnalysis, categories ...string) {
	var names []string
	for _, category := range categories {
		names = append(names, w.ModulesInCategory(category)...)
	}
	sort.Strings(names)
	for _, name := range names {
		info := w.Modules[name]
		fmt.Fprintf(b, "- **%s**: %s (depends on %d internal modules)\n", name, info.Description, len(w.Graph[name]))
	}
}

// depsComplexity summarizes how dependency weight is distributed across
// modules and categories.
func depsComplexity(w *deps.WorkspaceAnalysis) string {
	total := len(w.Modules)
	if total == 0 {
		return "No modules found for analysis."
	}
	edges := w.InternalEdgeCount()
	avg := float64(edges) / float64(total)

	var lines []string
	lines = append(lines, fmt.Sprintf("- **Average Dependencies per Module:** %.1f", avg))
	lines = append(lines, fmt.Sprintf("- **Total Internal Dependencies:** %d", edges))

	type weighted struct {
		name  string
		count int
	}
	var heavy []weighted
	for _, name := range w.GraphKeys() {
		if count := len(w.Graph[name]); float64(count) > avg*1.5 {
			heavy = append(heavy, weighted{name, count})
		}
	}
	if len(heavy) > 0 {
		sort.SliceStable(heavy, func(i, j int) bool {
			if heavy[i].count != heavy[j].count {
				return heavy[i].count > heavy[j].count
			}
			return heavy[i].name < heavy[j].name
		})
		if len(heavy) > 5 {
			heavy = heavy[:5]
		}
		lines = append(lines, "- **High Dependency Modules:**")
		for _, m := range heavy {
			lines = append(lines, fmt.Sprintf("  - %s: %d dependencies", m.name, m.count))
		}
	}

	perCategory := make(map[string][]int)
	for _, name := range w.ModuleNames() {
		category := w.Modules[name].Category
		perCategory[category] = append(perCategory[category], len(w.Graph[name]))
	}
	categories := make([]string, 0, len(perCategory))
	for category := range perCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	lines = append(lines, "- **Complexity by Category:**")
	for _, category := range categories {
		counts := perCategory[category]
		sum := 0
		for _, c := range counts {
			sum += c
		}
		lines = append(lines, fmt.Sprintf("  - %s: %.1f avg dependencies", titleCase(category), float64(sum)/float64(len(counts))))
	}
	return strings.Join(lines, "\n")
}

// depsInsights derives workspace-level architecture bullets from the
// category layering, agent composition, and module count.
func depsInsights(w *deps.WorkspaceAnalysis) string {
	insights := []string{
		"• **Layered Architecture**: The system follows a layered approach with clear separation of concerns",
	}

	dependsOnCore := make(map[string]bool)
	for source, targets := range w.Graph {
		sourceInfo, ok := w.Modules[source]
		if !ok {
			continue
		}
		for _, target := range targets {
			info, ok := w.Modules[target]
			if ok && info.Category == "core" {
				dependsOnCore[sourceInfo.Category] = true
			}
		}
	}
	if len(dependsOnCore) > 0 {
		insights = append(insights, fmt.Sprintf("• **Core Foundation**: Core components are used by %d different categories", len(dependsOnCore)))
	}

	if len(w.ModulesInCategory("storage")) > 2 {
		insights = append(insights, "• **Storage Abstraction**: Multiple storage implementations suggest pluggable architecture")
	}

	if len(w.Agents) > 0 {
		domains := make(map[string]bool)
		for _, agent := range w.Agents {
			domains[agent.Domain] = true
		}
		insights = append(insights, fmt.Sprintf("• **Agent Orchestration**: %d agents across %d domains for specialized tasks", len(w.Agents), len(domains)))
	}

	if len(w.Modules) > 10 {
		insights = append(insights, "• **Modular Design**: High module count indicates microservices-like modular architecture")
	}

	return strings.Join(insights, "\n")
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
