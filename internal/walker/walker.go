// Package walker discovers the source files of a workspace. Only Rust
// sources under the configured source roots are returned; everything else
// is filtered out before analysis starts.
package walker

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultMaxFileSize is the maximum file size to analyze (1 MB).
const DefaultMaxFileSize int64 = 1 << 20

// sourceExt is the extension of analyzable source files.
const sourceExt = ".rs"

// SourceFile holds metadata about one discovered source file.
type SourceFile struct {
	Path    string // Absolute path on disk.
	RelPath string // Slash-separated path relative to the workspace root.
	Size    int64  // File size in bytes.
}

// Config controls workspace traversal.
type Config struct {
	WorkspaceRoot string   // Workspace directory to scan.
	SourceRoots   []string // Subdirectories searched for sources (e.g. crates, src, tests).
	Exclude       []string // Glob patterns; matching relative paths are skipped.
	MaxFileSize   int64    // Files larger than this are skipped (0 = use default).
}

// Walk traverses the configured source roots and returns every source file
// that passes filtering, sorted by relative path. Source roots that do not
// exist are skipped; an unreadable entry is skipped rather than aborting
// the traversal.
func Walk(config Config) ([]SourceFile, error) {
	root, err := filepath.Abs(config.WorkspaceRoot)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve workspace root: %w", err)
	}

	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	roots := config.SourceRoots
	if len(roots) == 0 {
		roots = DefaultSourceRoots
	}

	var files []SourceFile
	for _, sub := range roots {
		base := filepath.Join(root, sub)
		if _, err := os.Stat(base); err != nil {
			continue
		}

		err := filepath.WalkDir(base, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return nil
			}
			if d.IsDir() {
				if shouldExcludeDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !strings.HasSuffix(d.Name(), sourceExt) {
				return nil
			}

			relPath, err := filepath.Rel(root, path)
			if err != nil {
				return nil
			}
			relPath = filepath.ToSlash(relPath)

			if MatchesExclude(relPath, config.Exclude) {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return nil
			}
			if info.Size() > maxSize {
				return nil
			}
			if isBinary(path) {
				return nil
			}

			files = append(files, SourceFile{
				Path:    path,
				RelPath: relPath,
				Size:    info.Size(),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walker: traverse %s: %w", sub, err)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// isBinary reads the first 512 bytes of a file and reports whether a NUL
// byte appears.
func isBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true // treat unreadable files as binary
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return true
	}

	for i := 0; i < n; i++ {
		if buf[i] == 0 {
			return true
		}
	}
	return false
}
