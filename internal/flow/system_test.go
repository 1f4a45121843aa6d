package flow

import "testing"

func TestMerge_DuplicateNamesAcrossFiles(t *testing.T) {
	sys := NewSystemFlow()
	src := `fn setup() {
    work();
}`
	sys.Merge(buildFlowNamed(t, "crates/alpha/src/lib.rs", src))
	sys.Merge(buildFlowNamed(t, "crates/beta/src/lib.rs", src))

	if len(sys.Functions) != 2 {
		t.Fatalf("system has %d functions, want 2 (same name, different files)", len(sys.Functions))
	}

	matches := sys.LookupByName("setup")
	if len(matches) != 2 {
		t.Fatalf("LookupByName returned %d flows, want 2", len(matches))
	}
	if matches[0].Span.FilePath != "crates/alpha/src/lib.rs" {
		t.Errorf("matches not sorted by file path: first = %q", matches[0].Span.FilePath)
	}
}

func TestMerge_SameKeyReplaces(t *testing.T) {
	sys := NewSystemFlow()
	sys.Merge(buildFlowNamed(t, "a.rs", "fn f() {\n    one();\n}"))
	sys.Merge(buildFlowNamed(t, "a.rs", "fn f() {\n    one();\n    two();\n}"))

	if len(sys.Functions) != 1 {
		t.Fatalf("system has %d functions, want 1", len(sys.Functions))
	}
}

func TestComponentFor(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"crates/app-kernel/src/lib.rs", "kernel", true},
		{"crates/runtime/src/main.rs", "runtime", true},
		{"crates/event-store/src/lib.rs", "storage", true},
		{"crates/storage-engine/src/lib.rs", "storage", true},
		{"crates/auth-tokens/src/lib.rs", "auth", true},
		{"crates/misc/src/lib.rs", "", false},
	}
	for _, tt := range tests {
		got, ok := ComponentFor(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ComponentFor(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFinalize_InferredInteractions(t *testing.T) {
	sys := NewSystemFlow()

	// A kernel function calls persist, which lives in the storage component.
	caller := `fn dispatch() {
    persist(record);
}`
	callee := `fn persist(r: Record) {
    write(r);
}`
	sys.Merge(buildFlowNamed(t, "crates/kernel/src/lib.rs", caller))
	sys.Merge(buildFlowNamed(t, "crates/store/src/lib.rs", callee))
	sys.Finalize()

	if len(sys.Interactions) == 0 {
		t.Fatal("no component interactions inferred")
	}
	var found bool
	for _, e := range sys.Interactions {
		if e.Kind != EdgeInferred {
			t.Errorf("interaction %s -> %s has kind %q, want %q", e.Source, e.Target, e.Kind, EdgeInferred)
		}
		if e.Source == "kernel" && e.Target == "storage" {
			found = true
		}
	}
	if !found {
		t.Error("missing inferred kernel -> storage interaction")
	}
}

func TestFinalize_NoSelfInteractions(t *testing.T) {
	sys := NewSystemFlow()
	a := `fn alpha() {
    beta();
}`
	b := `fn beta() {
    work();
}`
	sys.Merge(buildFlowNamed(t, "crates/kernel/src/a.rs", a))
	sys.Merge(buildFlowNamed(t, "crates/kernel/src/b.rs", b))
	sys.Finalize()

	for _, e := range sys.Interactions {
		if e.Source == e.Target {
			t.Errorf("self interaction recorded: %s -> %s", e.Source, e.Target)
		}
	}
}

func TestFinalize_AsyncPatterns(t *testing.T) {
	sys := NewSystemFlow()

	sequential := `async fn sequential() {
    a().await;
    b().await;
    c().await;
    d().await;
}`
	spawner := `async fn spawner() {
    tokio::spawn(async move { bg() });
}`
	quiet := `async fn quiet() {
    plain();
}`
	sys.Merge(buildFlowNamed(t, "crates/runtime/src/seq.rs", sequential))
	sys.Merge(buildFlowNamed(t, "crates/runtime/src/spawn.rs", spawner))
	sys.Merge(buildFlowNamed(t, "crates/runtime/src/quiet.rs", quiet))
	sys.Finalize()

	got := make(map[string]string)
	for _, p := range sys.AsyncPatterns {
		got[p.Function] = p.Pattern
	}
	want := map[string]string{
		"sequential": PatternSequentialAsync,
		"spawner":    PatternFireAndForget,
		"quiet":      PatternSyncInAsync,
	}
	for fn, pattern := range want {
		if got[fn] != pattern {
			t.Errorf("pattern for %s = %q, want %q", fn, got[fn], pattern)
		}
	}
}

func TestFinalize_AsyncPatternNodeIDs(t *testing.T) {
	sys := NewSystemFlow()
	src := `async fn tracked() {
    first().await;
    tokio::spawn(async move { bg() });
}`
	sys.Merge(buildFlowNamed(t, "crates/runtime/src/t.rs", src))
	sys.Finalize()

	if len(sys.AsyncPatterns) != 1 {
		t.Fatalf("pattern count = %d, want 1", len(sys.AsyncPatterns))
	}
	p := sys.AsyncPatterns[0]
	if len(p.AwaitPoints) != 1 || len(p.SpawnPoints) != 1 {
		t.Fatalf("await/spawn counts = %d/%d, want 1/1", len(p.AwaitPoints), len(p.SpawnPoints))
	}
	if p.Pattern != PatternSpawnAndAwait {
		t.Errorf("pattern = %q, want %q", p.Pattern, PatternSpawnAndAwait)
	}
	flow := sys.Functions[FunctionKey{FilePath: "crates/runtime/src/t.rs", Name: "tracked"}]
	if flow == nil {
		t.Fatal("tracked flow not found by key")
	}
	if _, ok := flow.Nodes[p.AwaitPoints[0]]; !ok {
		t.Errorf("await point id %q not in node map", p.AwaitPoints[0])
	}
	if _, ok := flow.Nodes[p.SpawnPoints[0]]; !ok {
		t.Errorf("spawn point id %q not in node map", p.SpawnPoints[0])
	}
}
