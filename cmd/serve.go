package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"flowlens/internal/analyzer"
	"flowlens/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis HTTP server",
	Long: `Starts the flowlens HTTP server, exposing analysis results over a JSON
API with on-demand re-analysis and WebSocket completion notifications.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort > 0 {
			cfg.Server.Port = servePort
		}

		logger := newLogger()
		pipeline := analyzer.NewPipeline(cfg, logger)
		srv := server.New(cfg, pipeline, logger)

		fmt.Fprintf(os.Stderr, "Running initial analysis of %s...\n", cfg.Workspace)
		result, err := pipeline.Run(context.Background())
		if err != nil {
			return fmt.Errorf("initial analysis: %w", err)
		}
		srv.SetResult(result)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "flowlens server v%s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Workspace: %s\n", cfg.Workspace)
		fmt.Fprintf(os.Stderr, "  Functions: %d\n", len(result.System.Functions))
		fmt.Fprintf(os.Stderr, "  Modules:   %d\n", len(result.Deps.Modules))

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
