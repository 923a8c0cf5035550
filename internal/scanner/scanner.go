// Package scanner walks a project tree and builds the file inventory for
// ingestion, including per-file language detection.
package scanner

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/src-d/enry/v2"

	"github.com/gitfolio/gitfolio/internal/contract"
	"github.com/gitfolio/gitfolio/schema"
)

// sniffLimit caps how much of a file is read for language detection.
const sniffLimit = 16 * 1024

// Scanner walks a directory tree and produces the scan's file inventory.
type Scanner struct {
	Excludes []string // Patterns passed to contract.ShouldIgnore
	Workers  int      // Concurrent language-detection workers
}

// New creates a Scanner with the given exclude patterns and worker count.
func New(excludes []string, workers int) *Scanner {
	if workers <= 0 {
		workers = 1
	}
	return &Scanner{Excludes: excludes, Workers: workers}
}

// Scan walks root and returns one FileInput per regular file, ordered by
// repo-relative path. Excluded paths, vendor trees and unreadable files are
// skipped; only the walk itself can fail.
func (s *Scanner) Scan(ctx context.Context, root string) ([]schema.FileInput, error) {
	paths, err := s.collectPaths(ctx, root)
	if err != nil {
		return nil, err
	}

	jobs := make(chan string)
	results := make(chan schema.FileInput, len(paths))

	var wg sync.WaitGroup
	for range s.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rel := range jobs {
				if input, ok := s.inspect(root, rel); ok {
					results <- input
				}
			}
		}()
	}

	for _, rel := range paths {
		jobs <- rel
	}
	close(jobs)
	wg.Wait()
	close(results)

	files := make([]schema.FileInput, 0, len(paths))
	for input := range results {
		files = append(files, input)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// collectPaths walks the tree and returns repo-relative slash paths of the
// regular files that survive the exclude filters.
func (s *Scanner) collectPaths(ctx context.Context, root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if contract.ShouldIgnore(rel+"/", s.Excludes) || enry.IsVendor(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if contract.ShouldIgnore(rel, s.Excludes) || enry.IsVendor(rel) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// inspect stats one file and detects its language. Files that disappear or
// cannot be read between the walk and the stat are dropped.
func (s *Scanner) inspect(root, rel string) (schema.FileInput, bool) {
	abs := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(abs)
	if err != nil {
		return schema.FileInput{}, false
	}

	input := schema.FileInput{
		Name:       filepath.Base(rel),
		Path:       rel,
		Extension:  strings.ToLower(filepath.Ext(rel)),
		SizeBytes:  info.Size(),
		CreatedAt:  info.ModTime().UTC(),
		ModifiedAt: info.ModTime().UTC(),
	}

	if lang := detectLanguage(abs, rel); lang != "" {
		input.Languages = []string{lang}
	}
	return input, true
}

// detectLanguage runs enry over the file name and a bounded content sample.
func detectLanguage(abs, rel string) string {
	content := sniff(abs)
	lang := enry.GetLanguage(filepath.Base(rel), content)
	if lang == enry.OtherLanguage {
		return ""
	}
	return lang
}

// sniff reads up to sniffLimit bytes of a file, returning nil on any error
// so detection falls back to filename heuristics.
func sniff(abs string) []byte {
	f, err := os.Open(abs)
	if err != nil {
		return nil
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, sniffLimit))
	if err != nil {
		return nil
	}
	return content
}
