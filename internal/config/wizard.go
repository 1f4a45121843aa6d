package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// detectWorkspace checks whether dir looks like a Cargo workspace and
// returns a short description of what was found.
func detectWorkspace(dir string) string {
	manifest := filepath.Join(dir, "Cargo.toml")
	data, err := os.ReadFile(manifest)
	if err != nil {
		return ""
	}
	if strings.Contains(string(data), "[workspace]") {
		return "Cargo workspace"
	}
	return "single Cargo package"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .flowlens.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to flowlens! Let's configure your analysis.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Workspace root.
	workspacePrompt := promptui.Prompt{
		Label:   "Workspace root (directory containing Cargo.toml)",
		Default: defaults.Workspace,
	}
	workspace, err := workspacePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("workspace selection: %w", err)
	}
	if kind := detectWorkspace(workspace); kind != "" {
		fmt.Printf("Detected: %s\n\n", kind)
	} else {
		fmt.Printf("Note: no Cargo.toml found under %s; dependency analysis will fail until one exists.\n\n", workspace)
	}

	// 2. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for analysis artifacts",
		Default: defaults.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 3. Output formats.
	formatsPrompt := promptui.Prompt{
		Label:   "Output formats (comma-separated: mermaid, json, summary, interactive)",
		Default: "mermaid,json,summary",
	}
	formatsStr, err := formatsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("format selection: %w", err)
	}
	var formats []Format
	for _, f := range splitAndTrim(formatsStr) {
		formats = append(formats, Format(f))
	}
	if len(formats) == 0 {
		formats = append([]Format(nil), DefaultFormats...)
	}

	// 4. Worker count.
	workersPrompt := promptui.Prompt{
		Label:   "Parallel analysis workers",
		Default: strconv.Itoa(defaults.MaxWorkers),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				return fmt.Errorf("enter a positive number")
			}
			return nil
		},
	}
	workersStr, err := workersPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("worker count: %w", err)
	}
	workers, _ := strconv.Atoi(workersStr)

	// 5. Result store.
	storePrompt := promptui.Select{
		Label: "Persist results to a local SQLite store?",
		Items: []string{"no", "yes"},
	}
	storeIdx, _, err := storePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("store selection: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Workspace = workspace
	cfg.OutputDir = outputDir
	cfg.Formats = formats
	cfg.MaxWorkers = workers
	cfg.Store.Enabled = storeIdx == 1
	cfg.Store.Path = filepath.Join(outputDir, "flowlens.db")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(DefaultPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultPath)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
