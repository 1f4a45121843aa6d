package analyzer

import (
	"time"

	"flowlens/internal/deps"
	"flowlens/internal/flow"
	"flowlens/internal/walker"
)

// Result is the outcome of one pipeline run. Either analysis half may be
// nil when the corresponding pass was not requested.
type Result struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Workspace string

	Files  []walker.SourceFile
	System *flow.SystemFlow
	Deps   *deps.WorkspaceAnalysis

	FilesFailed int
	Errors      []error
}

// Counts summarizes the run for notifications and persistence.
func (r *Result) Counts() map[string]int {
	counts := map[string]int{
		"files":  len(r.Files),
		"errors": len(r.Errors),
	}
	if r.System != nil {
		counts["functions"] = len(r.System.Functions)
	}
	if r.Deps != nil {
		counts["modules"] = len(r.Deps.Modules)
	}
	return counts
}
