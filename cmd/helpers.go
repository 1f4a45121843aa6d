package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"flowlens/internal/analyzer"
	"flowlens/internal/config"
	"flowlens/internal/progress"
	"flowlens/internal/store"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `flowlens init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the CLI logger. Without --verbose only warnings and
// errors are shown, keeping stdout summaries readable.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "flowlens",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// applyFormats overrides the configured output formats from a
// comma-separated flag value.
func applyFormats(cfg *config.Config, raw string) error {
	if raw == "" {
		return nil
	}
	var formats []config.Format
	for _, part := range strings.Split(raw, ",") {
		if token := strings.TrimSpace(part); token != "" {
			formats = append(formats, config.Format(token))
		}
	}
	cfg.Formats = formats
	return cfg.Validate()
}

// wireProgress attaches a terminal progress reporter to the pipeline.
// The file total is only known once the walker has run, so the reporter
// starts on the first callback. Callers finish it after the run returns.
func wireProgress(pipeline *analyzer.Pipeline) progress.Reporter {
	reporter := progress.NewReporter()
	var once sync.Once
	pipeline.SetProgressFunc(func(done, total int, label string) {
		once.Do(func() { reporter.Start(total) })
		reporter.Update(done, label)
	})
	return reporter
}

// persistRun saves a completed run to the SQLite store.
func persistRun(cfg *config.Config, result *analyzer.Result) error {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	if err := st.SaveRun(result); err != nil {
		return fmt.Errorf("saving run %s: %w", result.RunID, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Run %s saved to %s\n", result.RunID, cfg.Store.Path)
	}
	return nil
}

// printWarnings lists per-file analysis failures on stderr.
func printWarnings(result *analyzer.Result) {
	if len(result.Errors) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "\nWarnings (%d):\n", len(result.Errors))
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "  - %v\n", e)
	}
}
