package flow

import (
	"regexp"
	"strings"
)

var (
	returnWord = regexp.MustCompile(`\breturn\b`)
	callShaped = regexp.MustCompile(`\w+\s*\(`)
)

// Classify maps one trimmed source line to a node type. The checks run in a
// fixed priority order; the first match wins. Callers are expected to have
// filtered out blank and comment lines already.
func Classify(line string) NodeType {
	switch {
	case strings.Contains(line, ".await"):
		return NodeAwaitPoint
	case strings.Contains(line, "tokio::spawn") || strings.Contains(line, "std::thread::spawn"):
		return NodeSpawnPoint
	case returnWord.MatchString(line):
		return NodeReturnPoint
	case strings.HasPrefix(line, "if ") || strings.HasPrefix(line, "match "):
		return NodeCondition
	case strings.HasPrefix(line, "for ") || strings.HasPrefix(line, "while ") || strings.HasPrefix(line, "loop"):
		return NodeLoop
	case isStateTransition(line):
		return NodeStateTransition
	case strings.Contains(line, "?") || strings.Contains(line, ".map_err") || strings.Contains(line, ".unwrap"):
		return NodeErrorHandler
	case callShaped.MatchString(line):
		return NodeFunctionCall
	default:
		return NodeStatement
	}
}

func isStateTransition(line string) bool {
	lower := strings.ToLower(line)
	if !strings.Contains(lower, "state") {
		return false
	}
	return strings.Contains(line, "=") || strings.Contains(lower, "transition")
}

// Qualifies reports whether a trimmed line produces a graph node. Blank
// lines and line comments do not.
func Qualifies(line string) bool {
	return line != "" && !strings.HasPrefix(line, "//")
}
