package core

import (
	"path"
	"strings"

	"github.com/gitfolio/gitfolio/schema"
)

// categoryExtensions maps each category to its extension set. The order of
// this table is significant: the first category whose set contains the
// extension wins, so ".py" resolves to code even though it also appears
// under test (test files are caught earlier by path heuristics).
var categoryExtensions = []struct {
	category   schema.Category
	extensions map[string]bool
}{
	{schema.CategoryCode, map[string]bool{
		".py": true, ".js": true, ".ts": true, ".java": true, ".c": true,
		".cpp": true, ".go": true, ".rb": true, ".rs": true,
	}},
	{schema.CategoryTest, map[string]bool{
		".py": true, ".js": true, ".java": true,
	}},
	{schema.CategoryDocs, map[string]bool{
		".md": true, ".rst": true, ".txt": true, ".docx": true,
	}},
	{schema.CategoryDesign, map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true, ".svg": true,
		".psd": true, ".sketch": true,
	}},
}

// Classify buckets a file path into one of the activity categories.
// Path-based test detection runs first and overrides the extension table:
// a commit touching "tests/app.py" counts as test activity, not code.
func Classify(filePath string) schema.Category {
	p := strings.ReplaceAll(filePath, "\\", "/")
	name := strings.ToLower(path.Base(p))

	if hasTestSegment(p) ||
		strings.HasPrefix(name, "test") ||
		isTestSuffixed(name) {
		return schema.CategoryTest
	}

	ext := strings.ToLower(path.Ext(name))
	for _, entry := range categoryExtensions {
		if entry.extensions[ext] {
			return entry.category
		}
	}
	return schema.CategoryOther
}

// hasTestSegment reports whether any directory segment of the path is
// "test" or "tests".
func hasTestSegment(p string) bool {
	segments := strings.Split(p, "/")
	for _, s := range segments[:max(len(segments)-1, 0)] {
		lower := strings.ToLower(s)
		if lower == "test" || lower == "tests" {
			return true
		}
	}
	return false
}

// isTestSuffixed reports whether the file name ends in "_test.<ext>".
func isTestSuffixed(name string) bool {
	ext := path.Ext(name)
	if ext == "" {
		return false
	}
	return strings.HasSuffix(strings.TrimSuffix(name, ext), "_test")
}
