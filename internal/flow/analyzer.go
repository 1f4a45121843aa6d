package flow

import (
	"fmt"
	"os"
	"strings"
)

// Analyzer turns source files into function flows.
type Analyzer struct {
	builder *Builder
	scanner Scanner
}

// NewAnalyzer returns an Analyzer built around the given scanner. A nil
// scanner selects the heuristic implementation.
func NewAnalyzer(scanner Scanner, labelLimit int) *Analyzer {
	if scanner == nil {
		scanner = HeuristicScanner{}
	}
	return &Analyzer{builder: NewBuilder(scanner, labelLimit), scanner: scanner}
}

// AnalyzeFile reads one source file and builds a flow for every function
// in it. A read failure is returned to the caller, which decides whether
// to skip or abort.
func (a *Analyzer) AnalyzeFile(path string) ([]*FunctionFlow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", path, err)
	}
	return a.AnalyzeSource(path, data), nil
}

// AnalyzeSource builds flows for every function found in the source text.
func (a *Analyzer) AnalyzeSource(path string, src []byte) []*FunctionFlow {
	lines := strings.Split(string(src), "\n")
	spans := a.scanner.Extract(path, lines)
	flows := make([]*FunctionFlow, 0, len(spans))
	for _, span := range spans {
		flows = append(flows, a.builder.Build(span, lines))
	}
	return flows
}
