package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"flowlens/internal/deps"
	"flowlens/internal/export"
	"flowlens/internal/flow"
)

// flowPage renders the interactive control-flow page for one function,
// embedding the cytoscape element payload.
func flowPage(f *flow.FunctionFlow) ([]byte, error) {
	elements, err := json.MarshalIndent(export.NewFlowElements(f), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal flow elements: %w", err)
	}

	kind := "Sync"
	if f.Span.Async {
		kind = "Async"
	}
	meta := fmt.Sprintf("%s:%d-%d | %s Function", f.Span.FilePath, f.Span.StartLine, f.Span.EndLine, kind)

	page := strings.NewReplacer(
		"__FUNCTION_NAME__", f.Span.Name,
		"__FUNCTION_META__", meta,
		"__CYCLOMATIC__", strconv.Itoa(f.Metrics.Cyclomatic),
		"__ASYNC_SCORE__", strconv.Itoa(f.Metrics.AsyncScore),
		"__ERROR_SCORE__", strconv.Itoa(f.Metrics.ErrorHandling),
		"__NODE_COUNT__", strconv.Itoa(len(f.Nodes)),
		"__EDGE_COUNT__", strconv.Itoa(len(f.Edges)),
	).Replace(flowPageHTML)

	page = strings.Replace(page, "/*__GRAPH_DATA__*/null", string(elements), 1)
	return []byte(page), nil
}

// depsPage renders the interactive dependency page, embedding the
// vis-network payload.
func depsPage(analysis *deps.WorkspaceAnalysis) ([]byte, error) {
	network, err := json.MarshalIndent(export.NewDepsNetwork(analysis), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal dependency network: %w", err)
	}

	page := strings.NewReplacer(
		"__MODULE_COUNT__", strconv.Itoa(len(analysis.Modules)),
		"__DEPENDENCY_COUNT__", strconv.Itoa(analysis.InternalEdgeCount()),
		"__AGENT_COUNT__", strconv.Itoa(len(analysis.Agents)),
		"__CATEGORY_COUNT__", strconv.Itoa(len(analysis.Categories)),
	).Replace(depsPageHTML)

	page = strings.Replace(page, "/*__GRAPH_DATA__*/null", string(network), 1)
	return []byte(page), nil
}

// summaryPageData holds the data passed to the summary page template.
type summaryPageData struct {
	Title   string
	Content template.HTML
}

var summaryTemplate = template.Must(template.New("summary").Parse(summaryPageHTML))

// RenderSummaryPage converts a markdown summary into a standalone HTML
// page with syntax highlighting.
func RenderSummaryPage(title string, markdown []byte) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithUnsafe(),
		),
	)

	var content bytes.Buffer
	if err := md.Convert(markdown, &content); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	var page bytes.Buffer
	err := summaryTemplate.Execute(&page, summaryPageData{
		Title:   title,
		Content: template.HTML(content.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("executing summary template: %w", err)
	}
	return page.Bytes(), nil
}
