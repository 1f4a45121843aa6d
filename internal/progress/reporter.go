// Package progress reports per-file analysis progress. The pipeline's
// callback carries slash-separated workspace-relative paths as labels.
package progress

import (
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Reporter provides progress feedback during workspace analysis.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// NewReporter selects a reporter for the current environment: line output
// when running under CI or when stderr is not a terminal, a progress bar
// otherwise.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{}
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return &CIReporter{}
	}
	return &TerminalReporter{}
}

// TerminalReporter renders a progress bar on stderr. Stdout is left to the
// run summaries.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("analyzing"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar == nil {
		return
	}
	if message != "" {
		r.bar.Describe(pathTail(message))
	}
	_ = r.bar.Set(current)
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// pathTail keeps the last two segments of a workspace-relative path so
// deep crate paths do not resize the bar on every file.
func pathTail(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) <= 2 {
		return path
	}
	return ".../" + strings.Join(parts[len(parts)-2:], "/")
}

// CIReporter prints one line per file, suitable for CI logs and piped
// output.
type CIReporter struct {
	total int
}

func (r *CIReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(os.Stderr, "analyzing %d files\n", total)
}

func (r *CIReporter) Update(current int, message string) {
	fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", current, r.total, message)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(os.Stderr, "analyzed %d files\n", r.total)
}

// NopReporter discards all progress updates. Useful for embedding the
// pipeline where no terminal is attached.
type NopReporter struct{}

func (NopReporter) Start(int)          {}
func (NopReporter) Update(int, string) {}
func (NopReporter) Finish()            {}
