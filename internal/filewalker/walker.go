// Package filewalker discovers source files for one run. Discovery order is
// lexicographic by path so key suffix chains stay reproducible across runs.
package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// SupportedExtensions lists file types handled by the tool.
var SupportedExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
	".ts":  true,
	".tsx": true,
	".mts": true,
	".cts": true,
}

// DefaultIgnore names directories excluded from discovery by default.
var DefaultIgnore = []string{"node_modules", "dist", "build", "out", ".git", "coverage", ".next"}

// Walk discovers all supported files under root. Include globs (matched
// against base names, e.g. "*.tsx") narrow the set; ignore entries name
// directories to skip in addition to DefaultIgnore. Declaration files and
// test files are never included. The result is sorted lexicographically.
func Walk(root string, include []string, ignore []string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	skipDirs := make(map[string]bool)
	for _, name := range DefaultIgnore {
		skipDirs[name] = true
	}
	for _, name := range ignore {
		skipDirs[name] = true
	}

	if err := validateGlobs(include); err != nil {
		return nil, err
	}

	var paths []string

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if info.IsDir() {
			if skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !includeFile(path, include) {
			return nil
		}

		paths = append(paths, path)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	sort.Strings(paths)

	log.Info().Int("count", len(paths)).Str("root", root).Msg("Discovered files")

	return paths, nil
}

// includeFile applies the extension set, the test/declaration filters and
// the user include globs to one file path.
func includeFile(path string, include []string) bool {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))

	if !SupportedExtensions[ext] {
		return false
	}
	if strings.HasSuffix(base, ".d.ts") || strings.HasSuffix(base, ".d.mts") {
		return false
	}
	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return false
	}

	if len(include) == 0 {
		return true
	}

	for _, pattern := range include {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}

	return false
}

// validateGlobs rejects malformed include patterns up front; a bad pattern
// aborts the whole run rather than silently matching nothing.
func validateGlobs(include []string) error {
	for _, pattern := range include {
		if _, err := filepath.Match(pattern, "probe"); err != nil {
			return fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
	}
	return nil
}
