package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"flowlens/internal/export"
)

// summaryResponse wraps the system overview with run metadata.
type summaryResponse struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	DurationMS  int64     `json:"duration_ms"`
	*export.Overview
}

// functionSummary is one row of the function listing.
type functionSummary struct {
	Name       string `json:"name"`
	FilePath   string `json:"file_path"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
	IsAsync    bool   `json:"is_async"`
	Cyclomatic int    `json:"cyclomatic_complexity"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	result := s.snapshot()
	if result == nil {
		writeError(w, http.StatusServiceUnavailable, "no analysis available yet")
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		RunID:       result.RunID,
		GeneratedAt: result.StartedAt,
		DurationMS:  result.Duration.Milliseconds(),
		Overview:    export.NewOverview(result.System, result.Deps, s.cfg.ComplexityThreshold),
	})
}

func (s *Server) handleFunctions(w http.ResponseWriter, r *http.Request) {
	result := s.snapshot()
	if result == nil || result.System == nil {
		writeError(w, http.StatusServiceUnavailable, "no analysis available yet")
		return
	}

	filter := strings.ToLower(r.URL.Query().Get("filter"))
	functions := []functionSummary{}
	for _, key := range result.System.SortedKeys() {
		if filter != "" && !strings.Contains(strings.ToLower(key.Name), filter) {
			continue
		}
		f := result.System.Functions[key]
		functions = append(functions, functionSummary{
			Name:       f.Span.Name,
			FilePath:   f.Span.FilePath,
			StartLine:  f.Span.StartLine,
			EndLine:    f.Span.EndLine,
			IsAsync:    f.Span.Async,
			Cyclomatic: f.Metrics.Cyclomatic,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":     len(functions),
		"functions": functions,
	})
}

func (s *Server) handleFunction(w http.ResponseWriter, r *http.Request) {
	result := s.snapshot()
	if result == nil || result.System == nil {
		writeError(w, http.StatusServiceUnavailable, "no analysis available yet")
		return
	}

	name := chi.URLParam(r, "name")
	matches := result.System.LookupByName(name)
	if len(matches) == 0 {
		writeError(w, http.StatusNotFound, "function not found: "+name)
		return
	}

	docs := make([]*export.FlowDocument, 0, len(matches))
	for _, f := range matches {
		docs = append(docs, export.NewFlowDocument(f))
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": docs})
}

func (s *Server) handleFunctionGraph(w http.ResponseWriter, r *http.Request) {
	result := s.snapshot()
	if result == nil || result.System == nil {
		writeError(w, http.StatusServiceUnavailable, "no analysis available yet")
		return
	}

	name := chi.URLParam(r, "name")
	matches := result.System.LookupByName(name)
	if len(matches) == 0 {
		writeError(w, http.StatusNotFound, "function not found: "+name)
		return
	}

	type graphMatch struct {
		FilePath string               `json:"file_path"`
		Elements *export.FlowElements `json:"elements"`
	}
	graphs := make([]graphMatch, 0, len(matches))
	for _, f := range matches {
		graphs = append(graphs, graphMatch{
			FilePath: f.Span.FilePath,
			Elements: export.NewFlowElements(f),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": graphs})
}

func (s *Server) handleModules(w http.ResponseWriter, r *http.Request) {
	result := s.snapshot()
	if result == nil || result.Deps == nil {
		writeError(w, http.StatusServiceUnavailable, "no dependency analysis available yet")
		return
	}

	doc := export.NewDepsDocument(result.Deps)
	modules := make([]export.ModuleDocument, 0, len(doc.Modules))
	for _, name := range result.Deps.ModuleNames() {
		modules = append(modules, doc.Modules[name])
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":   len(modules),
		"modules": modules,
	})
}

func (s *Server) handleDependencyGraph(w http.ResponseWriter, r *http.Request) {
	result := s.snapshot()
	if result == nil || result.Deps == nil {
		writeError(w, http.StatusServiceUnavailable, "no dependency analysis available yet")
		return
	}

	writeJSON(w, http.StatusOK, export.NewDepsNetwork(result.Deps))
}

// handleReanalyze kicks off a background run. The completion is pushed
// to WebSocket clients rather than returned here.
func (s *Server) handleReanalyze(w http.ResponseWriter, r *http.Request) {
	if !s.analyzing.CompareAndSwap(false, true) {
		writeError(w, http.StatusConflict, "analysis already in progress")
		return
	}

	go func() {
		defer s.analyzing.Store(false)
		result, err := s.pipeline.Run(context.Background())
		if err != nil {
			s.logger.Error("reanalysis failed", "err", err)
			return
		}
		s.SetResult(result)
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
