// Package scan discovers the files a revision should analyze. It walks the
// project tree once, applies .gitignore plus the project's configured
// include/exclude globs, and hands back a flat file list ready for the
// pipeline to load and hash.
package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/chorus/internal/config"
)

// Scanner walks a project root and filters the files it finds.
type Scanner struct {
	root      string
	include   []string
	exclude   []string
	gitignore *config.GitignoreParser
}

// New returns a Scanner configured from cfg. The project root is read from
// cfg.Project.Root; include/exclude globs come from cfg.Include/cfg.Exclude.
// When cfg.Index.RespectGitignore is set, .gitignore files found while
// walking the tree are loaded and folded into the exclusion set.
func New(cfg *config.Config) *Scanner {
	s := &Scanner{
		root:    cfg.Project.Root,
		include: append([]string(nil), cfg.Include...),
		exclude: append([]string(nil), cfg.Exclude...),
	}

	if cfg.Index.RespectGitignore {
		gp := config.NewGitignoreParser()
		_ = gp.LoadGitignore(cfg.Project.Root)
		s.gitignore = gp
	}

	return s
}

// File is one discovered, filtered file ready for content loading.
type File struct {
	// Path is absolute.
	Path string
	// RelPath is relative to the scan root, always forward-slash separated,
	// the form glob patterns and stored keys use.
	RelPath string
	Size    int64
}

// Walk discovers every file under the scan root that survives the
// include/exclude/gitignore filters. Results are sorted by RelPath so two
// scans of an unchanged tree produce identical output, which keeps
// content-hash-based invalidation deterministic.
func (s *Scanner) Walk() ([]File, error) {
	var files []File

	err := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Skip unreadable entries rather than aborting the whole walk.
			return nil
		}

		if path == s.root {
			return nil
		}

		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if s.isExcluded(rel, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if !s.isIncluded(rel) {
			return nil
		}

		files = append(files, File{
			Path:    path,
			RelPath: rel,
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// isExcluded reports whether rel should be skipped, checking gitignore
// patterns first (cheapest, pre-compiled) and then the configured exclude
// globs.
func (s *Scanner) isExcluded(rel string, isDir bool) bool {
	if s.gitignore != nil && s.gitignore.ShouldIgnore(rel, isDir) {
		return true
	}

	for _, pattern := range s.exclude {
		if matchGlob(pattern, rel) {
			return true
		}
	}

	return false
}

// isIncluded reports whether rel passes the include filter. An empty include
// list means everything not excluded is included.
func (s *Scanner) isIncluded(rel string) bool {
	if len(s.include) == 0 {
		return true
	}

	for _, pattern := range s.include {
		if matchGlob(pattern, rel) {
			return true
		}
	}

	return false
}

// matchGlob evaluates a doublestar pattern against rel, additionally
// matching when rel sits anywhere under a bare directory-style pattern
// (e.g. "vendor" excluding "vendor/pkg/file.go").
func matchGlob(pattern, rel string) bool {
	if ok, _ := doublestar.Match(pattern, rel); ok {
		return true
	}

	if !strings.ContainsAny(pattern, "*?[") {
		if rel == pattern || strings.HasPrefix(rel, pattern+"/") {
			return true
		}
	}

	return false
}
