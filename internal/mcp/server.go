// Package mcp exposes the workspace analysis over the Model Context
// Protocol so coding agents can query control flow and dependencies.
package mcp

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"flowlens/internal/analyzer"
	"flowlens/internal/config"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the analysis tools.
type Server struct {
	cfg      *config.Config
	pipeline *analyzer.Pipeline
	logger   *log.Logger
	mcp      *server.MCPServer

	// The first tool call runs the pipeline; later calls reuse the
	// snapshot.
	mu     sync.Mutex
	result *analyzer.Result
}

// NewServer creates an MCP server around an analysis pipeline. A nil
// logger disables logging.
func NewServer(cfg *config.Config, pipeline *analyzer.Pipeline, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		cfg:      cfg,
		pipeline: pipeline,
		logger:   logger,
	}

	s.mcp = server.NewMCPServer(
		"flowlens-analysis",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(analyzeControlFlowTool, s.handleAnalyzeControlFlow)
	s.mcp.AddTool(analyzeDependenciesTool, s.handleAnalyzeDependencies)
	s.mcp.AddTool(listFunctionsTool, s.handleListFunctions)
	s.mcp.AddTool(complexityReportTool, s.handleComplexityReport)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

// snapshot returns the cached analysis, running the pipeline on first use.
func (s *Server) snapshot(ctx context.Context) (*analyzer.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result != nil {
		return s.result, nil
	}

	s.logger.Info("running workspace analysis for MCP tools", "workspace", s.cfg.Workspace)
	result, err := s.pipeline.Run(ctx)
	if err != nil {
		return nil, err
	}
	s.result = result
	return result, nil
}
