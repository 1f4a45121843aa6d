// Package report writes analysis artifacts to the output directory.
// Control-flow artifacts land under <output_dir>/control_flow, one set
// per function; dependency artifacts under <output_dir>/dependency_graphs.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"flowlens/internal/analyzer"
	"flowlens/internal/config"
	"flowlens/internal/deps"
	"flowlens/internal/export"
	"flowlens/internal/flow"
)

const (
	flowDir = "control_flow"
	depsDir = "dependency_graphs"

	depsBase = "dependency_graph"
)

// Writer writes the enabled artifact formats for an analysis run.
type Writer struct {
	outputDir string
	formats   []config.Format
	logger    *log.Logger
}

// NewWriter creates a Writer from the run configuration. A nil logger
// disables logging.
func NewWriter(cfg *config.Config, logger *log.Logger) *Writer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Writer{
		outputDir: cfg.OutputDir,
		formats:   cfg.Formats,
		logger:    logger,
	}
}

func (w *Writer) has(format config.Format) bool {
	for _, f := range w.formats {
		if f == format {
			return true
		}
	}
	return false
}

// WriteAll writes every enabled artifact for the run and returns the
// paths written, in write order.
func (w *Writer) WriteAll(result *analyzer.Result) ([]string, error) {
	var paths []string
	if result.System != nil {
		flowPaths, err := w.WriteFlow(result.System)
		if err != nil {
			return paths, err
		}
		paths = append(paths, flowPaths...)
	}
	if result.Deps != nil {
		depsPaths, err := w.WriteDeps(result.Deps)
		if err != nil {
			return paths, err
		}
		paths = append(paths, depsPaths...)
	}
	return paths, nil
}

// WriteFlow writes per-function artifacts for every function in the
// system, in sorted key order.
func (w *Writer) WriteFlow(system *flow.SystemFlow) ([]string, error) {
	return w.writeFlows(system, system.SortedKeys())
}

// WriteFunction writes artifacts for every function matching name
// across the workspace. It fails when the name is unknown.
func (w *Writer) WriteFunction(system *flow.SystemFlow, name string) ([]string, error) {
	matches := system.LookupByName(name)
	if len(matches) == 0 {
		return nil, fmt.Errorf("function not found: %s", name)
	}
	keys := make([]flow.FunctionKey, 0, len(matches))
	for _, f := range matches {
		keys = append(keys, f.Span.Key())
	}
	return w.writeFlows(system, keys)
}

func (w *Writer) writeFlows(system *flow.SystemFlow, keys []flow.FunctionKey) ([]string, error) {
	dir := filepath.Join(w.outputDir, flowDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	// Base names are derived from the whole system so a filtered write
	// lands on the same files as a full one.
	bases := artifactBases(system)

	var paths []string
	for _, key := range keys {
		f := system.Functions[key]
		base := bases[key]

		if w.has(config.FormatMermaid) {
			path := filepath.Join(dir, base+"_flow.mmd")
			if err := writeFile(path, []byte(export.FlowMermaid(f))); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		if w.has(config.FormatJSON) {
			data, err := export.MarshalIndent(export.NewFlowDocument(f))
			if err != nil {
				return paths, fmt.Errorf("marshal %s: %w", key, err)
			}
			path := filepath.Join(dir, base+"_flow.json")
			if err := writeFile(path, data); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		if w.has(config.FormatSummary) {
			path := filepath.Join(dir, base+"_summary.md")
			if err := writeFile(path, []byte(export.FlowSummary(f))); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		if w.has(config.FormatInteractive) {
			page, err := flowPage(f)
			if err != nil {
				return paths, fmt.Errorf("render %s: %w", key, err)
			}
			path := filepath.Join(dir, base+"_interactive.html")
			if err := writeFile(path, page); err != nil {
				return paths, err
			}
			paths = append(paths, path)

			summaryPage, err := RenderSummaryPage(f.Span.Name, []byte(export.FlowSummary(f)))
			if err != nil {
				return paths, fmt.Errorf("render summary %s: %w", key, err)
			}
			path = filepath.Join(dir, base+"_summary.html")
			if err := writeFile(path, summaryPage); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
	}

	w.logger.Info("wrote control flow artifacts", "functions", len(keys), "files", len(paths))
	return paths, nil
}

// WriteDeps writes the workspace dependency artifacts.
func (w *Writer) WriteDeps(analysis *deps.WorkspaceAnalysis) ([]string, error) {
	dir := filepath.Join(w.outputDir, depsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	var paths []string
	if w.has(config.FormatMermaid) {
		path := filepath.Join(dir, depsBase+".mmd")
		if err := writeFile(path, []byte(export.DepsMermaid(analysis))); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	if w.has(config.FormatJSON) {
		data, err := export.MarshalIndent(export.NewDepsDocument(analysis))
		if err != nil {
			return paths, fmt.Errorf("marshal dependency graph: %w", err)
		}
		path := filepath.Join(dir, depsBase+".json")
		if err := writeFile(path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	if w.has(config.FormatSummary) {
		path := filepath.Join(dir, depsBase+"_summary.md")
		if err := writeFile(path, []byte(export.DepsSummary(analysis))); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	if w.has(config.FormatInteractive) {
		page, err := depsPage(analysis)
		if err != nil {
			return paths, fmt.Errorf("render dependency graph: %w", err)
		}
		path := filepath.Join(dir, depsBase+"_interactive.html")
		if err := writeFile(path, page); err != nil {
			return paths, err
		}
		paths = append(paths, path)

		summaryPage, err := RenderSummaryPage("Dependency Analysis", []byte(export.DepsSummary(analysis)))
		if err != nil {
			return paths, fmt.Errorf("render dependency summary: %w", err)
		}
		path = filepath.Join(dir, depsBase+"_summary.html")
		if err := writeFile(path, summaryPage); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	w.logger.Info("wrote dependency artifacts", "files", len(paths))
	return paths, nil
}

// artifactBases maps every function key to its artifact base name.
// Unique function names keep the bare name; names appearing in more
// than one file are prefixed with their flattened file path.
func artifactBases(system *flow.SystemFlow) map[flow.FunctionKey]string {
	counts := make(map[string]int)
	for _, key := range system.SortedKeys() {
		counts[key.Name]++
	}

	bases := make(map[flow.FunctionKey]string, len(system.Functions))
	for _, key := range system.SortedKeys() {
		if counts[key.Name] > 1 {
			bases[key] = flattenPath(key.FilePath) + "__" + key.Name
		} else {
			bases[key] = key.Name
		}
	}
	return bases
}

// flattenPath turns a workspace-relative source path into a filename
// fragment: crates/toka-kernel/src/lib.rs -> crates_toka-kernel_src_lib.
func flattenPath(path string) string {
	path = strings.TrimSuffix(path, ".rs")
	return strings.NewReplacer("/", "_", ".", "_").Replace(path)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
