package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
}

func scanPaths(t *testing.T, s *Scanner, root string) []string {
	t.Helper()
	files, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

func TestScanInventory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n\nfunc main() {}\n")
	writeFile(t, root, "docs/README.md", "# readme\n")
	writeFile(t, root, "src/app.py", "import os\n")

	s := New(nil, 2)
	files, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, files, 3)

	// Output is sorted by repo-relative path.
	assert.Equal(t, "docs/README.md", files[0].Path)
	assert.Equal(t, "main.go", files[1].Path)
	assert.Equal(t, "src/app.py", files[2].Path)

	mainGo := files[1]
	assert.Equal(t, "main.go", mainGo.Name)
	assert.Equal(t, ".go", mainGo.Extension)
	assert.Positive(t, mainGo.SizeBytes)
	assert.False(t, mainGo.ModifiedAt.IsZero())
	assert.Equal(t, []string{"Go"}, mainGo.Languages)
}

func TestScanExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.go", "package keep\n")
	writeFile(t, root, ".git/config", "[core]\n")
	writeFile(t, root, "node_modules/x/index.js", "module.exports = 1\n")
	writeFile(t, root, "app.min.js", "var a=1\n")

	s := New([]string{".git/", "node_modules/", ".min.js"}, 1)
	paths := scanPaths(t, s, root)
	assert.Equal(t, []string{"keep.go"}, paths)
}

func TestScanSkipsVendorTrees(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "cmd/run.go", "package main\n")
	writeFile(t, root, "vendor/lib/lib.go", "package lib\n")

	s := New(nil, 1)
	paths := scanPaths(t, s, root)
	assert.Equal(t, []string{"cmd/run.go"}, paths)
}

func TestScanEmptyTree(t *testing.T) {
	s := New(nil, 4)
	files, err := s.Scan(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanCanceledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", "package a\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil, 1).Scan(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}
