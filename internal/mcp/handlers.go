package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"flowlens/internal/analyzer"
	"flowlens/internal/export"
)

// handleAnalyzeControlFlow renders control-flow analysis for one
// function, or a system overview when no function is named.
func (s *Server) handleAnalyzeControlFlow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	format := request.GetString("format", "summary")
	name := request.GetString("function", "")

	if name == "" {
		if format == "mermaid" {
			return mcp.NewToolResultError("mermaid output requires a function name"), nil
		}
		return mcp.NewToolResultText(formatSystemOverview(result, format, s.cfg.ComplexityThreshold)), nil
	}

	matches := result.System.LookupByName(name)
	if len(matches) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("function not found: %s", name)), nil
	}

	var sb strings.Builder
	for i, f := range matches {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch format {
		case "mermaid":
			fmt.Fprintf(&sb, "## %s\n\n```mermaid\n%s```\n", f.Span.FilePath, export.FlowMermaid(f))
		case "json":
			data, err := export.MarshalIndent(export.NewFlowDocument(f))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("marshal failed: %v", err)), nil
			}
			fmt.Fprintf(&sb, "## %s\n\n```json\n%s\n```\n", f.Span.FilePath, data)
		default:
			sb.WriteString(export.FlowSummary(f))
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleAnalyzeDependencies renders the workspace dependency analysis.
func (s *Server) handleAnalyzeDependencies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if result.Deps == nil {
		return mcp.NewToolResultError("no dependency analysis available for this workspace"), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Dependency Analysis Results\n\n")
	fmt.Fprintf(&sb, "**Workspace:** %s\n", result.Deps.WorkspacePath)
	fmt.Fprintf(&sb, "**Modules Analyzed:** %d\n", len(result.Deps.Modules))
	fmt.Fprintf(&sb, "**Agents Found:** %d\n\n", len(result.Deps.Agents))

	switch request.GetString("format", "summary") {
	case "mermaid":
		fmt.Fprintf(&sb, "## Mermaid Output\n\n```mermaid\n%s```\n", export.DepsMermaid(result.Deps))
	case "json":
		data, err := export.MarshalIndent(export.NewDepsDocument(result.Deps))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal failed: %v", err)), nil
		}
		fmt.Fprintf(&sb, "## Json Output\n\n```json\n%s\n```\n", data)
	default:
		fmt.Fprintf(&sb, "## Summary Output\n\n%s", export.DepsSummary(result.Deps))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleListFunctions lists discovered functions, optionally filtered
// by a name substring.
func (s *Server) handleListFunctions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	filter := strings.ToLower(request.GetString("filter", ""))

	var lines []string
	for _, key := range result.System.SortedKeys() {
		if filter != "" && !strings.Contains(strings.ToLower(key.Name), filter) {
			continue
		}
		f := result.System.Functions[key]
		kind := "sync"
		if f.Span.Async {
			kind = "async"
		}
		lines = append(lines, fmt.Sprintf("- %s (%s:%d-%d) %s, cyclomatic %d",
			key.Name, key.FilePath, f.Span.StartLine, f.Span.EndLine, kind, f.Metrics.Cyclomatic))
	}

	if len(lines) == 0 {
		if filter != "" {
			return mcp.NewToolResultText(fmt.Sprintf("No functions matching %q.", filter)), nil
		}
		return mcp.NewToolResultText("No functions found in the workspace."), nil
	}

	header := fmt.Sprintf("Found %d function(s):\n\n", len(lines))
	return mcp.NewToolResultText(header + strings.Join(lines, "\n") + "\n"), nil
}

// handleComplexityReport summarizes cyclomatic complexity and hotspots.
func (s *Server) handleComplexityReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	threshold := request.GetInt("threshold", s.cfg.ComplexityThreshold)
	if threshold <= 0 {
		threshold = s.cfg.ComplexityThreshold
	}

	report := result.System.Complexity(threshold)

	var sb strings.Builder
	sb.WriteString("# Complexity Report\n\n")
	fmt.Fprintf(&sb, "**Functions:** %d\n", report.TotalFunctions)
	fmt.Fprintf(&sb, "**Mean Cyclomatic:** %.2f\n", report.Mean)
	fmt.Fprintf(&sb, "**Max Cyclomatic:** %d\n", report.Max)
	fmt.Fprintf(&sb, "**Threshold:** %d\n\n", report.Threshold)

	sb.WriteString("## Hotspots\n\n")
	if len(report.Hotspots) == 0 {
		sb.WriteString("No functions exceed the threshold.\n")
	} else {
		for _, key := range report.Hotspots {
			f := result.System.Functions[key]
			fmt.Fprintf(&sb, "- %s (%s) cyclomatic %d\n", key.Name, key.FilePath, f.Metrics.Cyclomatic)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatSystemOverview renders the no-function control-flow result.
func formatSystemOverview(result *analyzer.Result, format string, threshold int) string {
	if format == "json" {
		data, err := export.MarshalIndent(export.NewOverview(result.System, result.Deps, threshold))
		if err != nil {
			return fmt.Sprintf("marshal failed: %v", err)
		}
		return fmt.Sprintf("```json\n%s\n```\n", data)
	}

	report := result.System.Complexity(threshold)
	async := 0
	for _, f := range result.System.Functions {
		if f.Span.Async {
			async++
		}
	}

	var sb strings.Builder
	sb.WriteString("# Control Flow Analysis Results\n\n")
	fmt.Fprintf(&sb, "**Workspace:** %s\n", result.Workspace)
	fmt.Fprintf(&sb, "**Functions Analyzed:** %d\n", len(result.System.Functions))
	fmt.Fprintf(&sb, "**Async Functions:** %d\n", async)
	fmt.Fprintf(&sb, "**Mean Cyclomatic:** %.2f\n", report.Mean)
	fmt.Fprintf(&sb, "**Max Cyclomatic:** %d\n", report.Max)

	if len(report.Hotspots) > 0 {
		sb.WriteString("\n## Hotspots\n\n")
		for _, key := range report.Hotspots {
			f := result.System.Functions[key]
			fmt.Fprintf(&sb, "- %s (%s) cyclomatic %d\n", key.Name, key.FilePath, f.Metrics.Cyclomatic)
		}
	}
	return sb.String()
}
