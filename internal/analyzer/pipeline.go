// Package analyzer wires the source walker, the per-function flow
// analysis, and the manifest pass into one pipeline: walk -> analyze ->
// merge -> finalize. The CLI, the HTTP server, and the MCP server all
// run analyses through it.
package analyzer

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"flowlens/internal/config"
	"flowlens/internal/deps"
	"flowlens/internal/flow"
	"flowlens/internal/pool"
	"flowlens/internal/walker"
)

// Pipeline orchestrates the analysis passes over one workspace.
type Pipeline struct {
	cfg        *config.Config
	logger     *log.Logger
	onProgress pool.ProgressFunc
}

// NewPipeline creates a Pipeline for the given configuration. A nil
// logger disables logging.
func NewPipeline(cfg *config.Config, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// SetProgressFunc sets the per-file progress callback.
func (p *Pipeline) SetProgressFunc(fn pool.ProgressFunc) {
	p.onProgress = fn
}

// Run executes both analysis passes and returns the combined result.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := p.newResult()
	if err := p.flowPass(ctx, result); err != nil {
		return nil, err
	}
	if err := p.depsPass(result); err != nil {
		return nil, err
	}
	result.Duration = time.Since(start)
	return result, nil
}

// RunFlow executes only the control flow pass.
func (p *Pipeline) RunFlow(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := p.newResult()
	if err := p.flowPass(ctx, result); err != nil {
		return nil, err
	}
	result.Duration = time.Since(start)
	return result, nil
}

// RunDeps executes only the dependency pass.
func (p *Pipeline) RunDeps() (*Result, error) {
	start := time.Now()
	result := p.newResult()
	if err := p.depsPass(result); err != nil {
		return nil, err
	}
	result.Duration = time.Since(start)
	return result, nil
}

func (p *Pipeline) newResult() *Result {
	return &Result{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Workspace: p.cfg.Workspace,
	}
}

// flowPass walks the workspace sources and builds a merged system flow.
// Per-file failures are collected, not fatal.
func (p *Pipeline) flowPass(ctx context.Context, result *Result) error {
	files, err := walker.Walk(walker.Config{
		WorkspaceRoot: p.cfg.Workspace,
		SourceRoots:   p.cfg.SourceRoots,
		Exclude:       p.cfg.Exclude,
		MaxFileSize:   p.cfg.MaxFileSize,
	})
	if err != nil {
		return fmt.Errorf("walk workspace: %w", err)
	}
	result.Files = files

	workers := p.cfg.MaxWorkers
	if workers < 1 {
		workers = 4
	}

	fileAnalyzer := flow.NewAnalyzer(nil, p.cfg.LabelLimit)
	coordinator := pool.NewCoordinator(workers,
		func(f walker.SourceFile) string { return f.RelPath },
		func(_ context.Context, f walker.SourceFile) ([]*flow.FunctionFlow, error) {
			data, err := os.ReadFile(f.Path)
			if err != nil {
				return nil, fmt.Errorf("read source: %w", err)
			}
			return fileAnalyzer.AnalyzeSource(f.RelPath, data), nil
		},
	).OnProgress(p.onProgress)

	batch := coordinator.Run(ctx, files)

	system := flow.NewSystemFlow()
	for _, flows := range batch.Outputs {
		system.Merge(flows)
	}
	system.Finalize()
	result.System = system

	for _, taskErr := range batch.Errors {
		result.Errors = append(result.Errors, taskErr)
	}
	result.FilesFailed = len(batch.Errors)

	p.logger.Info("control flow pass complete",
		"files", len(files),
		"functions", len(system.Functions),
		"failed", result.FilesFailed)
	return nil
}

// depsPass analyzes the workspace manifests. A missing root manifest is
// fatal; per-member problems are logged and skipped downstream.
func (p *Pipeline) depsPass(result *Result) error {
	analysis, err := deps.NewAnalyzer(p.logger).Analyze(p.cfg.Workspace)
	if err != nil {
		return fmt.Errorf("dependency pass: %w", err)
	}
	result.Deps = analysis
	return nil
}
