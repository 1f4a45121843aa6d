package flow

// Scanner locates functions and classifies their lines. The graph builder
// depends only on this interface, so a parser-backed implementation can
// replace the text heuristics without touching graph, metric, or export
// code.
type Scanner interface {
	Extract(path string, lines []string) []FunctionSpan
	Classify(line string) NodeType
}

// HeuristicScanner is the default Scanner. It matches function signatures
// with a regular expression and classifies lines by marker priority.
type HeuristicScanner struct{}

func (HeuristicScanner) Extract(path string, lines []string) []FunctionSpan {
	return ExtractFunctions(path, lines)
}

func (HeuristicScanner) Classify(line string) NodeType {
	return Classify(line)
}
