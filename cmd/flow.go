package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"flowlens/internal/analyzer"
	"flowlens/internal/report"
)

var (
	flowFunction string
	flowFormats  string
	flowStore    bool
)

var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Analyze control flow across the workspace",
	Long: `Scans every source file in the workspace, extracts function bodies with
a line heuristic, and builds a control flow graph per function with
complexity metrics and async coordination patterns.`,
	RunE: runFlow,
}

func init() {
	flowCmd.Flags().StringVar(&flowFunction, "function", "", "write artifacts for a single function by name")
	flowCmd.Flags().StringVar(&flowFormats, "formats", "", "comma-separated output formats (overrides config)")
	flowCmd.Flags().BoolVar(&flowStore, "store", false, "save the run to the result store")
	rootCmd.AddCommand(flowCmd)
}

func runFlow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFormats(cfg, flowFormats); err != nil {
		return err
	}

	logger := newLogger()
	pipeline := analyzer.NewPipeline(cfg, logger)
	reporter := wireProgress(pipeline)

	result, err := pipeline.RunFlow(context.Background())
	reporter.Finish()
	if err != nil {
		return fmt.Errorf("control flow analysis: %w", err)
	}

	writer := report.NewWriter(cfg, logger)
	var paths []string
	if flowFunction != "" {
		matches := result.System.LookupByName(flowFunction)
		if len(matches) == 0 {
			return fmt.Errorf("function not found: %s", flowFunction)
		}
		fmt.Printf("Analyzing function: %s (%s)\n", flowFunction, matches[0].Span.FilePath)
		for _, m := range matches[1:] {
			fmt.Printf("  also defined in %s\n", m.Span.FilePath)
		}
		paths, err = writer.WriteFunction(result.System, flowFunction)
	} else {
		paths, err = writer.WriteFlow(result.System)
	}
	if err != nil {
		return fmt.Errorf("writing reports: %w", err)
	}

	if flowStore || cfg.Store.Enabled {
		if err := persistRun(cfg, result); err != nil {
			return err
		}
	}

	asyncCount := 0
	for _, f := range result.System.Functions {
		if f.Span.Async {
			asyncCount++
		}
	}

	fmt.Println()
	fmt.Println("Control flow analysis complete!")
	fmt.Printf("  Files scanned:      %d\n", len(result.Files))
	fmt.Printf("  Functions analyzed: %d\n", len(result.System.Functions))
	fmt.Printf("  Async functions:    %d\n", asyncCount)
	fmt.Printf("  Artifacts written:  %d\n", len(paths))
	fmt.Printf("  Duration:           %s\n", result.Duration.Round(time.Millisecond))
	fmt.Printf("  Output:             %s\n", cfg.OutputDir)

	printWarnings(result)
	return nil
}
