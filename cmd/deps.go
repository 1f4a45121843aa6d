package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"flowlens/internal/analyzer"
	"flowlens/internal/report"
)

var (
	depsFormats string
	depsStore   bool
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Analyze module dependencies from workspace manifests",
	Long: `Parses the workspace root manifest and every member manifest, splits
dependencies into workspace-internal and external sets, classifies each
module into an architectural category, and builds the internal
dependency graph.`,
	RunE: runDeps,
}

func init() {
	depsCmd.Flags().StringVar(&depsFormats, "formats", "", "comma-separated output formats (overrides config)")
	depsCmd.Flags().BoolVar(&depsStore, "store", false, "save the run to the result store")
	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFormats(cfg, depsFormats); err != nil {
		return err
	}

	logger := newLogger()
	pipeline := analyzer.NewPipeline(cfg, logger)

	result, err := pipeline.RunDeps()
	if err != nil {
		return fmt.Errorf("dependency analysis: %w", err)
	}

	writer := report.NewWriter(cfg, logger)
	paths, err := writer.WriteDeps(result.Deps)
	if err != nil {
		return fmt.Errorf("writing reports: %w", err)
	}

	if depsStore || cfg.Store.Enabled {
		if err := persistRun(cfg, result); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Println("Dependency analysis complete!")
	fmt.Printf("  Modules analyzed:  %d\n", len(result.Deps.Modules))
	fmt.Printf("  Internal edges:    %d\n", result.Deps.InternalEdgeCount())
	fmt.Printf("  Agents found:      %d\n", len(result.Deps.Agents))
	fmt.Printf("  Artifacts written: %d\n", len(paths))
	fmt.Printf("  Duration:          %s\n", result.Duration.Round(time.Millisecond))
	fmt.Printf("  Output:            %s\n", cfg.OutputDir)

	return nil
}
