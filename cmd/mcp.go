package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flowlens/internal/analyzer"
	mcpserver "flowlens/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing control
flow and dependency analysis tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		logger := newLogger()
		pipeline := analyzer.NewPipeline(cfg, logger)

		fmt.Fprintf(os.Stderr, "flowlens MCP server started on stdio (workspace=%s)\n", cfg.Workspace)

		srv := mcpserver.NewServer(cfg, pipeline, logger)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
