package flow

import (
	"fmt"
	"strings"
)

// DefaultLabelLimit caps node labels before truncation.
const DefaultLabelLimit = 50

// Builder constructs control-flow graphs from function spans. A zero
// Builder is not usable; construct with NewBuilder.
type Builder struct {
	scanner    Scanner
	labelLimit int
}

// NewBuilder returns a Builder using the given scanner. A nil scanner
// selects the heuristic one, and a non-positive label limit the default.
func NewBuilder(scanner Scanner, labelLimit int) *Builder {
	if scanner == nil {
		scanner = HeuristicScanner{}
	}
	if labelLimit <= 0 {
		labelLimit = DefaultLabelLimit
	}
	return &Builder{scanner: scanner, labelLimit: labelLimit}
}

// Build creates the control-flow graph for one span. fileLines is the full
// file split on newlines; the builder slices out the span itself. Every
// flow has exactly one entry and one exit node, and an empty body links
// them directly.
func (b *Builder) Build(span FunctionSpan, fileLines []string) *FunctionFlow {
	f := &FunctionFlow{
		Span:             span,
		Nodes:            make(map[string]*Node),
		ErrorPaths:       []string{},
		SpawnPoints:      []string{},
		StateTransitions: []string{},
	}

	entryID := span.Name + "_entry"
	exitID := span.Name + "_exit"
	f.Nodes[entryID] = &Node{
		ID:         entryID,
		Type:       NodeEntry,
		Label:      "Function Entry",
		SourceLine: span.StartLine,
		SourceFile: span.FilePath,
	}

	start := span.StartLine - 1
	end := span.EndLine
	if start < 0 {
		start = 0
	}
	if end > len(fileLines) {
		end = len(fileLines)
	}

	current := entryID
	for i, raw := range fileLines[start:end] {
		line := strings.TrimSpace(raw)
		if !Qualifies(line) {
			continue
		}
		id := fmt.Sprintf("%s_%d", span.Name, i)
		node := &Node{
			ID:         id,
			Type:       b.scanner.Classify(line),
			Label:      truncate(line, b.labelLimit),
			SourceLine: span.StartLine + i,
			SourceFile: span.FilePath,
		}
		f.Nodes[id] = node
		f.Edges = append(f.Edges, linkEdge(current, id, line))

		switch node.Type {
		case NodeErrorHandler:
			f.ErrorPaths = append(f.ErrorPaths, id)
		case NodeSpawnPoint:
			f.SpawnPoints = append(f.SpawnPoints, id)
		case NodeStateTransition:
			f.StateTransitions = append(f.StateTransitions, id)
		}
		current = id
	}

	f.Nodes[exitID] = &Node{
		ID:         exitID,
		Type:       NodeExit,
		Label:      "Function Exit",
		SourceLine: span.EndLine,
		SourceFile: span.FilePath,
	}
	f.Edges = append(f.Edges, Edge{Source: current, Target: exitID, Type: EdgeControl, Probability: 1.0})

	f.Metrics = ComputeMetrics(f)
	return f
}

// linkEdge chains a new node to the previous one. The edge kind comes from
// the line's own markers, independent of the node's classified type: a
// suspension marker makes it async, the propagation operator makes it
// error, and a leading branch keyword labels it conditional.
func linkEdge(source, target, line string) Edge {
	e := Edge{Source: source, Target: target, Type: EdgeControl, Probability: 1.0}
	switch {
	case strings.Contains(line, ".await"):
		e.Type = EdgeAsync
		e.Label = "await"
	case strings.Contains(line, "?"):
		e.Type = EdgeError
		e.Label = "error propagation"
	case strings.HasPrefix(line, "if ") || strings.HasPrefix(line, "match "):
		e.Label = "conditional"
	}
	return e
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
