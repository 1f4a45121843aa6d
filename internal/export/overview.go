package export

import (
	"flowlens/internal/deps"
	"flowlens/internal/flow"
)

// Overview rolls both analysis passes into one system-level snapshot.
type Overview struct {
	Workspace      string                `json:"workspace"`
	TotalFunctions int                   `json:"total_functions"`
	AsyncFunctions int                   `json:"async_functions"`
	TotalModules   int                   `json:"total_modules"`
	TotalAgents    int                   `json:"total_agents"`
	Complexity     flow.ComplexityReport `json:"complexity"`
	PatternCounts  map[string]int        `json:"async_pattern_counts"`
	Interactions   []flow.ComponentEdge  `json:"component_interactions"`
	Categories     map[string]int        `json:"category_distribution"`
	Summary        string                `json:"analysis_summary"`
}

// NewOverview condenses a system flow and a workspace analysis into the
// overview served to dashboards. Either input may be nil when the
// corresponding pass was skipped.
func NewOverview(sys *flow.SystemFlow, w *deps.WorkspaceAnalysis, threshold int) *Overview {
	o := &Overview{
		PatternCounts: map[string]int{},
		Interactions:  []flow.ComponentEdge{},
		Categories:    map[string]int{},
	}
	if sys != nil {
		o.TotalFunctions = len(sys.Functions)
		for _, f := range sys.Functions {
			if f.Span.Async {
				o.AsyncFunctions++
			}
		}
		o.Complexity = sys.Complexity(threshold)
		for _, p := range sys.AsyncPatterns {
			o.PatternCounts[p.Pattern]++
		}
		if sys.Interactions != nil {
			o.Interactions = sys.Interactions
		}
	}
	if w != nil {
		o.Workspace = w.WorkspacePath
		o.TotalModules = len(w.Modules)
		o.TotalAgents = len(w.Agents)
		if w.Categories != nil {
			o.Categories = w.Categories
		}
		o.Summary = DepsCharacterization(w)
	}
	return o
}
