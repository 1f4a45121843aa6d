package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"flowlens/internal/analyzer"
	"flowlens/internal/report"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run both analyses and write every configured report",
	RunE:  runAll,
}

func init() {
	rootCmd.AddCommand(allCmd)
}

func runAll(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()
	pipeline := analyzer.NewPipeline(cfg, logger)
	reporter := wireProgress(pipeline)

	result, err := pipeline.Run(context.Background())
	reporter.Finish()
	if err != nil {
		return fmt.Errorf("workspace analysis: %w", err)
	}

	writer := report.NewWriter(cfg, logger)
	paths, err := writer.WriteAll(result)
	if err != nil {
		return fmt.Errorf("writing reports: %w", err)
	}

	if cfg.Store.Enabled {
		if err := persistRun(cfg, result); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Println("Workspace analysis complete!")
	fmt.Printf("  Files scanned:      %d\n", len(result.Files))
	fmt.Printf("  Functions analyzed: %d\n", len(result.System.Functions))
	fmt.Printf("  Modules analyzed:   %d\n", len(result.Deps.Modules))
	fmt.Printf("  Artifacts written:  %d\n", len(paths))
	fmt.Printf("  Duration:           %s\n", result.Duration.Round(time.Millisecond))
	fmt.Printf("  Output:             %s\n", cfg.OutputDir)

	printWarnings(result)
	return nil
}
