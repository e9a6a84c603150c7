package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/reqext/internal/parsers"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery finds lintable files using include globs and ignore rules.
// Patterns are matched against slash-separated paths relative to rootDir.
type FileDiscovery struct {
	rootDir         string
	includePatterns []compiledPattern
	ignorePatterns  []compiledPattern
}

// NewFileDiscovery creates a new file discovery instance.
func NewFileDiscovery(rootDir string, includePatterns, ignorePatterns []string) (*FileDiscovery, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", rootDir, err)
	}

	fd := &FileDiscovery{
		rootDir: absRoot,
	}

	fd.includePatterns, err = compileAll(includePatterns)
	if err != nil {
		return nil, err
	}
	fd.ignorePatterns, err = compileAll(ignorePatterns)
	if err != nil {
		return nil, err
	}

	return fd, nil
}

func compileAll(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}
	return compiled, nil
}

// RootDir returns the absolute root patterns are relative to.
func (fd *FileDiscovery) RootDir() string {
	return fd.rootDir
}

// Discover expands targets (files or directories) into a sorted, de-duplicated
// list of absolute file paths. With no targets the root directory is walked.
//
// Explicitly named files only need a supported extension; files found by
// walking must also match an include pattern. Ignore patterns apply to both.
func (fd *FileDiscovery) Discover(targets ...string) ([]string, error) {
	if len(targets) == 0 {
		targets = []string{fd.rootDir}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, target := range targets {
		absTarget, err := filepath.Abs(target)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", target, err)
		}

		info, err := os.Stat(absTarget)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", target, err)
		}

		if !info.IsDir() {
			if _, ok := parsers.GrammarFor(absTarget); ok && !fd.shouldIgnore(fd.relPath(absTarget)) {
				add(absTarget)
			}
			continue
		}

		if err := fd.walk(absTarget, add); err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func (fd *FileDiscovery) walk(dir string, add func(string)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath := fd.relPath(path)

		if d.IsDir() {
			if path != dir && fd.shouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if fd.Matches(path) {
			add(path)
		}
		return nil
	})
}

// Matches reports whether an absolute file path would be linted when found
// by walking.
func (fd *FileDiscovery) Matches(path string) bool {
	if _, ok := parsers.GrammarFor(path); !ok {
		return false
	}
	relPath := fd.relPath(path)
	if fd.shouldIgnore(relPath) {
		return false
	}
	return fd.matchesAnyPattern(relPath, fd.includePatterns)
}

// Ignored reports whether an absolute path (file or directory) matches an
// ignore pattern.
func (fd *FileDiscovery) Ignored(path string) bool {
	return fd.shouldIgnore(fd.relPath(path))
}

// relPath returns path relative to the root with forward slashes. Paths
// outside the root are returned as-is.
func (fd *FileDiscovery) relPath(path string) string {
	rel, err := filepath.Rel(fd.rootDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// shouldIgnore checks if a path matches any ignore pattern.
func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	// Always ignore our own config directory
	if strings.HasPrefix(relPath, ".reqext/") || relPath == ".reqext" {
		return true
	}

	if fd.matchesAnyPattern(relPath, fd.ignorePatterns) {
		return true
	}

	// Also check if this is a directory that would match with /** suffix
	// For example, "node_modules" should match pattern "node_modules/**"
	pathWithSuffix := relPath + "/**"
	return fd.matchesAnyPattern(pathWithSuffix, fd.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (fd *FileDiscovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Special handling: if path is in root (no slash), also try matching against
	// patterns with **/ prefix removed. This makes "**/*.js" match both "index.js"
	// and "src/index.js" as users would expect.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}
