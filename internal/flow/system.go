package flow

import (
	"regexp"
	"sort"
	"strings"
)

// componentTable maps path fragments to architectural components. Entries
// are checked in order and the first fragment contained in the path wins.
var componentTable = []struct {
	fragment  string
	component string
}{
	{"kernel", "kernel"},
	{"runtime", "runtime"},
	{"orchestration", "orchestration"},
	{"storage", "storage"},
	{"store", "storage"},
	{"bus", "bus"},
	{"auth", "auth"},
	{"llm", "llm"},
	{"cli", "cli"},
}

// ComponentFor maps a file path to its architectural component. Paths that
// match no table fragment belong to no component.
func ComponentFor(path string) (string, bool) {
	for _, e := range componentTable {
		if strings.Contains(path, e.fragment) {
			return e.component, true
		}
	}
	return "", false
}

// Merge adds flows into the system, keyed by (file path, function name).
// A later flow with the same key replaces the earlier one.
func (s *SystemFlow) Merge(flows []*FunctionFlow) {
	for _, f := range flows {
		key := f.Span.Key()
		s.Functions[key] = f
		if comp, ok := ComponentFor(f.Span.FilePath); ok {
			s.Components[key] = comp
		}
	}
}

// Finalize derives the system-level views after all flows are merged.
func (s *SystemFlow) Finalize() {
	s.inferInteractions()
	s.collectAsyncPatterns()
}

var calleeName = regexp.MustCompile(`(\w+)\s*\(`)

// inferInteractions records a cross-component edge for every call-shaped
// node whose callee name belongs to a function in another component.
// Resolution is by bare name and can fan out to several components when
// the name is ambiguous; every pairing is recorded once, sorted. These
// edges are advisory and carry the inferred kind so consumers never
// confuse them with observed control flow.
func (s *SystemFlow) inferInteractions() {
	byName := make(map[string]map[string]struct{})
	for key, comp := range s.Components {
		if byName[key.Name] == nil {
			byName[key.Name] = make(map[string]struct{})
		}
		byName[key.Name][comp] = struct{}{}
	}

	seen := make(map[ComponentEdge]struct{})
	for _, key := range s.SortedKeys() {
		callerComp, ok := s.Components[key]
		if !ok {
			continue
		}
		f := s.Functions[key]
		for _, e := range f.Edges {
			if e.Type != EdgeControl {
				continue
			}
			node := f.Nodes[e.Target]
			if node == nil || node.Type != NodeFunctionCall {
				continue
			}
			m := calleeName.FindStringSubmatch(node.Label)
			if m == nil {
				continue
			}
			for comp := range byName[m[1]] {
				if comp == callerComp {
					continue
				}
				seen[ComponentEdge{Source: callerComp, Target: comp, Kind: EdgeInferred}] = struct{}{}
			}
		}
	}

	edges := make([]ComponentEdge, 0, len(seen))
	for e := range seen {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	s.Interactions = edges
}

// collectAsyncPatterns classifies the concurrency shape of every async
// function, plus any function that contains suspension or spawn nodes
// without being declared async.
func (s *SystemFlow) collectAsyncPatterns() {
	var patterns []AsyncPattern
	for _, key := range s.SortedKeys() {
		f := s.Functions[key]
		awaits, spawns := []string{}, []string{}
		for _, n := range f.SortedNodes() {
			switch n.Type {
			case NodeAwaitPoint:
				awaits = append(awaits, n.ID)
			case NodeSpawnPoint:
				spawns = append(spawns, n.ID)
			}
		}
		if !f.Span.Async && len(awaits) == 0 && len(spawns) == 0 {
			continue
		}
		patterns = append(patterns, AsyncPattern{
			Function:    key.Name,
			FilePath:    key.FilePath,
			AwaitPoints: awaits,
			SpawnPoints: spawns,
			Pattern:     ClassifyAsyncPattern(len(spawns), len(awaits)),
		})
	}
	s.AsyncPatterns = patterns
}
