package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitfolio/gitfolio/schema"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected schema.Category
	}{
		{"go source", "internal/store/ingest.go", schema.CategoryCode},
		{"python source", "app/main.py", schema.CategoryCode},
		{"typescript source", "web/index.ts", schema.CategoryCode},
		{"tests directory wins over extension", "tests/app.py", schema.CategoryTest},
		{"test directory singular", "pkg/test/helper.js", schema.CategoryTest},
		{"nested tests directory", "a/b/tests/c/d.java", schema.CategoryTest},
		{"test name prefix", "src/test_parser.py", schema.CategoryTest},
		{"go test suffix", "core/rank_test.go", schema.CategoryTest},
		{"markdown", "README.md", schema.CategoryDocs},
		{"restructured text", "docs/index.rst", schema.CategoryDocs},
		{"plain text", "NOTES.txt", schema.CategoryDocs},
		{"png asset", "assets/logo.png", schema.CategoryDesign},
		{"sketch file", "design/home.sketch", schema.CategoryDesign},
		{"unknown extension", "Makefile", schema.CategoryOther},
		{"yaml config", "deploy/app.yaml", schema.CategoryOther},
		{"windows separators", `tests\unit\thing.py`, schema.CategoryTest},
		{"bare file with test prefix", "testdata", schema.CategoryTest},
		{"uppercase extension", "SRC/MAIN.GO", schema.CategoryCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.path))
		})
	}
}

func TestClassifyTestHeuristicsBeforeExtensions(t *testing.T) {
	// The same extension lands in different categories depending on the
	// path around it.
	assert.Equal(t, schema.CategoryCode, Classify("pkg/runner.py"))
	assert.Equal(t, schema.CategoryTest, Classify("pkg/tests/runner.py"))
	assert.Equal(t, schema.CategoryTest, Classify("pkg/runner_test.py"))
}
