package flow

import "sort"

// ComputeMetrics derives the complexity record for a built flow.
// Cyclomatic complexity counts decision points (conditions and loops) plus
// one; the async score counts suspension and spawn nodes; the error score
// counts error-handling nodes.
func ComputeMetrics(f *FunctionFlow) Metrics {
	return Metrics{
		Cyclomatic:    f.CountNodes(NodeCondition) + f.CountNodes(NodeLoop) + 1,
		AsyncScore:    f.CountNodes(NodeAwaitPoint) + f.CountNodes(NodeSpawnPoint),
		ErrorHandling: f.CountNodes(NodeErrorHandler),
		TotalNodes:    len(f.Nodes),
		TotalEdges:    len(f.Edges),
	}
}

// Async coordination patterns, from strongest coupling to none.
const (
	PatternSpawnAndAwait   = "spawn_and_await"
	PatternFireAndForget   = "fire_and_forget"
	PatternSequentialAsync = "sequential_async"
	PatternSimpleAsync     = "simple_async"
	PatternSyncInAsync     = "sync_in_async"
)

// ClassifyAsyncPattern names the concurrency shape implied by spawn and
// await counts. An async function with neither is sync_in_async.
func ClassifyAsyncPattern(spawns, awaits int) string {
	switch {
	case spawns > 0 && awaits > 0:
		return PatternSpawnAndAwait
	case spawns > 0:
		return PatternFireAndForget
	case awaits > 3:
		return PatternSequentialAsync
	case awaits >= 1:
		return PatternSimpleAsync
	default:
		return PatternSyncInAsync
	}
}

// ComplexityReport summarizes cyclomatic complexity across a system.
type ComplexityReport struct {
	TotalFunctions int           `json:"total_functions"`
	Mean           float64       `json:"mean_cyclomatic"`
	Max            int           `json:"max_cyclomatic"`
	Threshold      int           `json:"threshold"`
	Hotspots       []FunctionKey `json:"hotspots"`
}

// Complexity computes the system-wide complexity summary. Hotspots are the
// functions whose cyclomatic complexity exceeds the threshold, ordered by
// descending complexity and then by key for stable output.
func (s *SystemFlow) Complexity(threshold int) ComplexityReport {
	report := ComplexityReport{Threshold: threshold, Hotspots: []FunctionKey{}}
	if len(s.Functions) == 0 {
		return report
	}

	sum := 0
	for _, key := range s.SortedKeys() {
		c := s.Functions[key].Metrics.Cyclomatic
		sum += c
		if c > report.Max {
			report.Max = c
		}
		if c > threshold {
			report.Hotspots = append(report.Hotspots, key)
		}
	}
	report.TotalFunctions = len(s.Functions)
	report.Mean = float64(sum) / float64(len(s.Functions))

	sort.SliceStable(report.Hotspots, func(i, j int) bool {
		ci := s.Functions[report.Hotspots[i]].Metrics.Cyclomatic
		cj := s.Functions[report.Hotspots[j]].Metrics.Cyclomatic
		if ci != cj {
			return ci > cj
		}
		if report.Hotspots[i].FilePath != report.Hotspots[j].FilePath {
			return report.Hotspots[i].FilePath < report.Hotspots[j].FilePath
		}
		return report.Hotspots[i].Name < report.Hotspots[j].Name
	})
	return report
}
