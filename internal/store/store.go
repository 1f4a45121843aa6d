// Package store persists analysis runs to a local SQLite database. It is
// a write-only sink: the analyzers never read from it, it exists so runs
// can be compared and queried with external tooling.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"flowlens/internal/analyzer"
	"flowlens/internal/export"
)

// Store wraps a sql.DB with run persistence helpers.
type Store struct {
	*sql.DB
	path string
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{DB: sqlDB, path: path}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
func OpenMemory() (*Store, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	s := &Store{DB: sqlDB, path: ":memory:"}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// migrate runs all schema migrations.
func (s *Store) migrate() error {
	_, err := s.Exec(schema)
	return err
}

// SaveRun writes one analysis result in a single transaction: the run
// row, every function with its full document, and the module graph.
func (s *Store) SaveRun(result *analyzer.Result) error {
	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	counts := result.Counts()
	_, err = tx.Exec(
		`INSERT INTO runs (id, workspace, started_at, duration_ms, file_count, function_count, module_count, error_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RunID, result.Workspace, result.StartedAt.UTC(),
		result.Duration.Milliseconds(),
		counts["files"], counts["functions"], counts["modules"], counts["errors"],
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if result.System != nil {
		insert, err := tx.Prepare(
			`INSERT INTO functions (run_id, file_path, name, start_line, end_line, is_async, return_type,
			                        cyclomatic, async_complexity, error_complexity, node_count, edge_count, document)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare function insert: %w", err)
		}
		defer insert.Close()

		for _, key := range result.System.SortedKeys() {
			f := result.System.Functions[key]
			doc, err := json.Marshal(export.NewFlowDocument(f))
			if err != nil {
				return fmt.Errorf("marshal document for %s: %w", key, err)
			}
			_, err = insert.Exec(
				result.RunID, f.Span.FilePath, f.Span.Name, f.Span.StartLine, f.Span.EndLine,
				f.Span.Async, f.Span.ReturnType,
				f.Metrics.Cyclomatic, f.Metrics.AsyncScore, f.Metrics.ErrorHandling,
				len(f.Nodes), len(f.Edges), string(doc),
			)
			if err != nil {
				return fmt.Errorf("insert function %s: %w", key, err)
			}
		}
	}

	if result.Deps != nil {
		for _, name := range result.Deps.ModuleNames() {
			m := result.Deps.Modules[name]
			_, err = tx.Exec(
				`INSERT INTO modules (run_id, name, version, path, description, category, workspace_dep_count, external_dep_count)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				result.RunID, m.Name, m.Version, m.Path, m.Description, m.Category,
				len(m.WorkspaceDeps), len(m.ExternalDeps),
			)
			if err != nil {
				return fmt.Errorf("insert module %s: %w", name, err)
			}
		}
		for _, source := range result.Deps.GraphKeys() {
			for _, target := range result.Deps.Graph[source] {
				_, err = tx.Exec(
					`INSERT INTO module_edges (run_id, source, target) VALUES (?, ?, ?)`,
					result.RunID, source, target,
				)
				if err != nil {
					return fmt.Errorf("insert edge %s -> %s: %w", source, target, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// schema contains the full database schema. New tables are added here.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    workspace TEXT NOT NULL,
    started_at DATETIME NOT NULL,
    duration_ms INTEGER NOT NULL DEFAULT 0,
    file_count INTEGER NOT NULL DEFAULT 0,
    function_count INTEGER NOT NULL DEFAULT 0,
    module_count INTEGER NOT NULL DEFAULT 0,
    error_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS functions (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    file_path TEXT NOT NULL,
    name TEXT NOT NULL,
    start_line INTEGER NOT NULL,
    end_line INTEGER NOT NULL,
    is_async INTEGER NOT NULL DEFAULT 0,
    return_type TEXT NOT NULL DEFAULT '',
    cyclomatic INTEGER NOT NULL DEFAULT 0,
    async_complexity INTEGER NOT NULL DEFAULT 0,
    error_complexity INTEGER NOT NULL DEFAULT 0,
    node_count INTEGER NOT NULL DEFAULT 0,
    edge_count INTEGER NOT NULL DEFAULT 0,
    document TEXT NOT NULL DEFAULT '{}',
    PRIMARY KEY(run_id, file_path, name)
);

CREATE INDEX IF NOT EXISTS idx_functions_name ON functions(name);
CREATE INDEX IF NOT EXISTS idx_functions_cyclomatic ON functions(cyclomatic DESC);

CREATE TABLE IF NOT EXISTS modules (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    version TEXT NOT NULL DEFAULT '',
    path TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT 'general',
    workspace_dep_count INTEGER NOT NULL DEFAULT 0,
    external_dep_count INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY(run_id, name)
);

CREATE INDEX IF NOT EXISTS idx_modules_category ON modules(category);

CREATE TABLE IF NOT EXISTS module_edges (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    source TEXT NOT NULL,
    target TEXT NOT NULL,
    PRIMARY KEY(run_id, source, target)
);
`
