package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flowlens/internal/analyzer"
	"flowlens/internal/config"
	"flowlens/internal/deps"
	"flowlens/internal/flow"
)

func sampleSystem(t *testing.T) *flow.SystemFlow {
	t.Helper()
	src := strings.Join([]string{
		"pub async fn process_event(&mut self, event: Event) -> Result<State> {",
		"    if !event.valid() {",
		"        return Err(Error::Invalid);",
		"    }",
		"    let snapshot = self.store.read(event.key).await?;",
		"    Ok(self.state)",
		"}",
	}, "\n")

	a := flow.NewAnalyzer(nil, 0)
	system := flow.NewSystemFlow()
	system.Merge(a.AnalyzeSource("crates/toka-runtime/src/lib.rs", []byte(src)))
	system.Finalize()
	return system
}

func sampleDeps() *deps.WorkspaceAnalysis {
	return &deps.WorkspaceAnalysis{
		WorkspacePath: "/tmp/ws",
		Modules: map[string]*deps.ModuleInfo{
			"toka-kernel": {
				Name:          "toka-kernel",
				Version:       "0.2.1",
				Path:          "crates/toka-kernel",
				Description:   "Deterministic core",
				Category:      "core",
				WorkspaceDeps: map[string]string{"toka-store": "path"},
			},
			"toka-store": {
				Name:         "toka-store",
				Version:      "0.2.1",
				Path:         "crates/toka-store",
				Description:  "Event persistence",
				Category:     "storage",
				ExternalDeps: map[string]string{"sled": "0.34"},
			},
		},
		Graph:      map[string][]string{"toka-kernel": {"toka-store"}},
		Categories: map[string]int{"core": 1, "storage": 1},
	}
}

func testWriter(t *testing.T, formats ...config.Format) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.OutputDir = dir
	cfg.Formats = formats
	return NewWriter(cfg, nil), dir
}

func mustExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected artifact %s: %v", path, err)
	}
}

func TestWriteAll_AllFormats(t *testing.T) {
	w, dir := testWriter(t,
		config.FormatMermaid, config.FormatJSON, config.FormatSummary, config.FormatInteractive)

	result := &analyzer.Result{System: sampleSystem(t), Deps: sampleDeps()}
	paths, err := w.WriteAll(result)
	if err != nil {
		t.Fatalf("WriteAll() error: %v", err)
	}

	// 5 flow artifacts for one function plus 5 dependency artifacts.
	if len(paths) != 10 {
		t.Errorf("WriteAll() wrote %d files, want 10: %v", len(paths), paths)
	}

	for _, rel := range []string{
		"control_flow/process_event_flow.mmd",
		"control_flow/process_event_flow.json",
		"control_flow/process_event_summary.md",
		"control_flow/process_event_interactive.html",
		"control_flow/process_event_summary.html",
		"dependency_graphs/dependency_graph.mmd",
		"dependency_graphs/dependency_graph.json",
		"dependency_graphs/dependency_graph_summary.md",
		"dependency_graphs/dependency_graph_interactive.html",
		"dependency_graphs/dependency_graph_summary.html",
	} {
		mustExist(t, filepath.Join(dir, rel))
	}
}

func TestWriteFlow_FormatGating(t *testing.T) {
	w, dir := testWriter(t, config.FormatMermaid)

	paths, err := w.WriteFlow(sampleSystem(t))
	if err != nil {
		t.Fatalf("WriteFlow() error: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("WriteFlow() wrote %d files, want 1: %v", len(paths), paths)
	}
	mustExist(t, filepath.Join(dir, "control_flow/process_event_flow.mmd"))

	if _, err := os.Stat(filepath.Join(dir, "control_flow/process_event_flow.json")); err == nil {
		t.Error("json artifact written without json format enabled")
	}
}

func TestWriteFunction_Unknown(t *testing.T) {
	w, _ := testWriter(t, config.FormatMermaid)

	_, err := w.WriteFunction(sampleSystem(t), "missing")
	if err == nil {
		t.Fatal("WriteFunction() expected error for unknown function")
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error %q should name the function", err)
	}
}

func TestWriteFunction_Match(t *testing.T) {
	w, dir := testWriter(t, config.FormatSummary)

	paths, err := w.WriteFunction(sampleSystem(t), "process_event")
	if err != nil {
		t.Fatalf("WriteFunction() error: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("WriteFunction() wrote %d files, want 1", len(paths))
	}
	mustExist(t, filepath.Join(dir, "control_flow/process_event_summary.md"))
}

func TestArtifactBases_DuplicateNames(t *testing.T) {
	src := "pub fn open(path: &Path) -> Result<Store> {\n    Ok(Store {})\n}\n"

	a := flow.NewAnalyzer(nil, 0)
	system := flow.NewSystemFlow()
	system.Merge(a.AnalyzeSource("crates/toka-store/src/lib.rs", []byte(src)))
	system.Merge(a.AnalyzeSource("crates/toka-vault/src/lib.rs", []byte(src)))
	system.Finalize()

	bases := artifactBases(system)
	want := map[flow.FunctionKey]string{
		{FilePath: "crates/toka-store/src/lib.rs", Name: "open"}: "crates_toka-store_src_lib__open",
		{FilePath: "crates/toka-vault/src/lib.rs", Name: "open"}: "crates_toka-vault_src_lib__open",
	}
	for key, base := range want {
		if bases[key] != base {
			t.Errorf("artifactBases()[%v] = %q, want %q", key, bases[key], base)
		}
	}
}

func TestArtifactBases_UniqueNameStaysBare(t *testing.T) {
	system := sampleSystem(t)
	bases := artifactBases(system)
	key := flow.FunctionKey{FilePath: "crates/toka-runtime/src/lib.rs", Name: "process_event"}
	if bases[key] != "process_event" {
		t.Errorf("artifactBases()[%v] = %q, want process_event", key, bases[key])
	}
}

func TestFlattenPath(t *testing.T) {
	got := flattenPath("crates/toka-kernel/src/lib.rs")
	if got != "crates_toka-kernel_src_lib" {
		t.Errorf("flattenPath() = %q", got)
	}
}

func TestFlowPage_EmbedsPayload(t *testing.T) {
	system := sampleSystem(t)
	key := flow.FunctionKey{FilePath: "crates/toka-runtime/src/lib.rs", Name: "process_event"}

	page, err := flowPage(system.Functions[key])
	if err != nil {
		t.Fatalf("flowPage() error: %v", err)
	}
	html := string(page)

	for _, want := range []string{
		"<title>Control Flow: process_event</title>",
		"crates/toka-runtime/src/lib.rs:1-7 | Async Function",
		"cytoscape@3.23.0",
		`"execution_pattern"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("flowPage() missing %q", want)
		}
	}
	if strings.Contains(html, "/*__GRAPH_DATA__*/null") {
		t.Error("flowPage() left the payload placeholder unreplaced")
	}
	if strings.Contains(html, "__CYCLOMATIC__") {
		t.Error("flowPage() left a metric placeholder unreplaced")
	}
}

func TestDepsPage_EmbedsPayload(t *testing.T) {
	page, err := depsPage(sampleDeps())
	if err != nil {
		t.Fatalf("depsPage() error: %v", err)
	}
	html := string(page)

	for _, want := range []string{
		"vis-network@9.1.2",
		`"toka-kernel"`,
		"Workspace Dependency Graph",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("depsPage() missing %q", want)
		}
	}
	if strings.Contains(html, "/*__GRAPH_DATA__*/null") {
		t.Error("depsPage() left the payload placeholder unreplaced")
	}
	if strings.Contains(html, "__MODULE_COUNT__") {
		t.Error("depsPage() left a stat placeholder unreplaced")
	}
}

func TestRenderSummaryPage(t *testing.T) {
	md := "# Flow Analysis: commit\n\nSome `code` here.\n"
	page, err := RenderSummaryPage("commit", []byte(md))
	if err != nil {
		t.Fatalf("RenderSummaryPage() error: %v", err)
	}
	html := string(page)

	if !strings.Contains(html, "<title>commit</title>") {
		t.Error("RenderSummaryPage() missing title")
	}
	if !strings.Contains(html, "Flow Analysis: commit</h1>") {
		t.Errorf("RenderSummaryPage() did not render the heading: %s", html)
	}
	if !strings.Contains(html, "<code>code</code>") {
		t.Error("RenderSummaryPage() did not render inline code")
	}
}
