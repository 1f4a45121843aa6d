package deps

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name        string
		module      string
		description string
		want        string
	}{
		{"storage by name", "event-store", "", "storage"},
		{"storage alt keyword", "cold-storage", "", "storage"},
		{"security", "auth-tokens", "", "security"},
		{"core", "kernel", "", "core"},
		{"core alt keyword", "core-types", "", "core"},
		{"runtime", "agent-runtime", "", "runtime"},
		{"tools", "cli", "", "tools"},
		{"llm", "llm-gateway", "", "llm"},
		{"consensus", "raft-log", "", "consensus"},
		{"orchestration", "orchestration-engine", "", "orchestration"},
		{"messaging", "event-bus", "", "messaging"},
		{"description match", "widgets", "durable storage layer", "storage"},
		{"name beats later rules", "core-store", "", "storage"},
		{"fallback", "misc-helpers", "utility collection", "general"},
		{"empty", "", "", "general"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.module, tt.description); got != tt.want {
				t.Errorf("Categorize(%q, %q) = %q, want %q", tt.module, tt.description, got, tt.want)
			}
		})
	}
}

func TestCategorize_Deterministic(t *testing.T) {
	// Same inputs must always give the same answer.
	for i := 0; i < 100; i++ {
		if got := Categorize("agent-store", "runtime helper"); got != "storage" {
			t.Fatalf("iteration %d: Categorize = %q, want storage", i, got)
		}
	}
}

func TestCategories_ContainsAllAndDefaultLast(t *testing.T) {
	cats := Categories()
	if len(cats) == 0 {
		t.Fatal("Categories() returned nothing")
	}
	if cats[len(cats)-1] != DefaultCategory {
		t.Errorf("last category = %q, want %q", cats[len(cats)-1], DefaultCategory)
	}
	seen := make(map[string]bool)
	for _, c := range cats {
		if seen[c] {
			t.Errorf("duplicate category %q", c)
		}
		seen[c] = true
	}
	for _, want := range []string{"storage", "security", "core", "runtime", "tools", "llm", "consensus", "orchestration", "messaging"} {
		if !seen[want] {
			t.Errorf("category %q missing from Categories()", want)
		}
	}
}
