package deps

import "strings"

// categoryTable maps name/description keywords to module categories.
// Rules are checked in order; the first keyword found in either the
// lowercased name or description wins.
var categoryTable = []struct {
	keywords []string
	category string
}{
	{[]string{"store", "storage"}, "storage"},
	{[]string{"auth", "security"}, "security"},
	{[]string{"kernel", "core"}, "core"},
	{[]string{"runtime", "agent"}, "runtime"},
	{[]string{"cli", "tools"}, "tools"},
	{[]string{"llm", "gateway"}, "llm"},
	{[]string{"raft"}, "consensus"},
	{[]string{"orchestration"}, "orchestration"},
	{[]string{"bus"}, "messaging"},
}

// DefaultCategory applies when no keyword matches.
const DefaultCategory = "general"

// Categorize classifies a module from its name and description. The
// result is a pure function of the two inputs.
func Categorize(name, description string) string {
	n := strings.ToLower(name)
	d := strings.ToLower(description)
	for _, rule := range categoryTable {
		for _, kw := range rule.keywords {
			if strings.Contains(n, kw) || strings.Contains(d, kw) {
				return rule.category
			}
		}
	}
	return DefaultCategory
}

// Categories returns every category the table can produce, in rule order,
// with the default category last. Exporters use this for stable styling.
func Categories() []string {
	out := make([]string, 0, len(categoryTable)+1)
	seen := make(map[string]bool)
	for _, rule := range categoryTable {
		if !seen[rule.category] {
			out = append(out, rule.category)
			seen[rule.category] = true
		}
	}
	out = append(out, DefaultCategory)
	return out
}
