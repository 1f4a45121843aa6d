package mcp

import "github.com/mark3labs/mcp-go/mcp"

// analyzeControlFlowTool defines the analyze_control_flow MCP tool.
var analyzeControlFlowTool = mcp.NewTool("analyze_control_flow",
	mcp.WithDescription("Analyze control flow of workspace functions. Returns flowcharts, structured data, or markdown summaries."),
	mcp.WithString("function",
		mcp.Description("Function name to analyze. When omitted, returns a system-level overview."),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default summary)"),
		mcp.Enum("mermaid", "json", "summary"),
	),
)

// analyzeDependenciesTool defines the analyze_dependencies MCP tool.
var analyzeDependenciesTool = mcp.NewTool("analyze_dependencies",
	mcp.WithDescription("Analyze the workspace module dependency graph, including categories and declared agents."),
	mcp.WithString("format",
		mcp.Description("Output format (default summary)"),
		mcp.Enum("mermaid", "json", "summary"),
	),
)

// listFunctionsTool defines the list_functions MCP tool.
var listFunctionsTool = mcp.NewTool("list_functions",
	mcp.WithDescription("List every function discovered in the workspace with its location and complexity."),
	mcp.WithString("filter",
		mcp.Description("Case-insensitive substring filter on function names"),
	),
)

// complexityReportTool defines the complexity_report MCP tool.
var complexityReportTool = mcp.NewTool("complexity_report",
	mcp.WithDescription("Report cyclomatic complexity across the workspace and list hotspot functions above a threshold."),
	mcp.WithNumber("threshold",
		mcp.Description("Hotspot threshold for cyclomatic complexity (defaults to the configured value)"),
	),
)
