package flow

import (
	"regexp"
	"strings"
)

var (
	signature    = regexp.MustCompile(`^\s*(?:pub(?:\(\w+\))?\s+)?(async\s+)?fn\s+(\w+)\s*\(`)
	returnClause = regexp.MustCompile(`->\s*([^{]+)`)
)

// ExtractFunctions scans source lines for function signatures and returns
// their spans ordered by start line. Lines are 1-based. The end line is
// found by brace counting from the signature line; a function whose braces
// never balance spans to the last line of the file rather than failing.
func ExtractFunctions(path string, lines []string) []FunctionSpan {
	var spans []FunctionSpan
	for i, line := range lines {
		m := signature.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		span := FunctionSpan{
			Name:      m[2],
			FilePath:  path,
			StartLine: i + 1,
			EndLine:   findEnd(lines, i),
			Async:     m[1] != "",
		}
		if rm := returnClause.FindStringSubmatch(line); rm != nil {
			span.ReturnType = strings.TrimSpace(rm[1])
		}
		spans = append(spans, span)
	}
	return spans
}

func findEnd(lines []string, start int) int {
	depth := 0
	for j := start; j < len(lines); j++ {
		depth += strings.Count(lines[j], "{")
		if strings.Contains(lines[j], "}") {
			depth -= strings.Count(lines[j], "}")
			if depth == 0 {
				return j + 1
			}
		}
	}
	return len(lines)
}
