package walker

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultSourceRoots are the workspace subdirectories searched for sources.
var DefaultSourceRoots = []string{"crates", "src", "tests"}

// DefaultExcludes are the patterns excluded when none are configured.
var DefaultExcludes = []string{
	"target/**",
	".git/**",
	"**/*.tmp",
	"**/build.rs",
}

// excludedDirs are directory names skipped wholesale during traversal.
var excludedDirs = []string{
	".git",
	"target",
	"node_modules",
	".idea",
	".vscode",
}

// shouldExcludeDir checks whether a directory name is always skipped.
// Matching directories are pruned from the walk entirely.
func shouldExcludeDir(name string) bool {
	for _, excl := range excludedDirs {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// MatchesExclude returns true if the given relative path matches any of the
// exclude patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		// Doublestar matching for ** support.
		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}

		// Also try the bare filename so patterns like *.tmp work without
		// a leading **/ prefix.
		base := filepath.Base(normalized)
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
