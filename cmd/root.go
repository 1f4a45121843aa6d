package cmd

import (
	"github.com/spf13/cobra"

	"flowlens/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "flowlens",
	Short: "Control flow and dependency analysis for Rust workspaces",
	Long: `Flowlens scans a Cargo workspace without compiling it and builds
per-function control flow graphs, an inter-module dependency graph,
complexity metrics, and architectural pattern summaries. Results are
written as mermaid diagrams, JSON documents, markdown narratives, and
interactive HTML visualizations.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
