package mcp_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitfolio/gitfolio/internal"
	mcp_internal "github.com/gitfolio/gitfolio/internal/mcp"
	"github.com/gitfolio/gitfolio/internal/store"
	"github.com/gitfolio/gitfolio/schema"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "gitfolio_mcp_test.db")
	require.NoError(t, store.Migrate(schema.SQLiteBackend, dbPath, -1))

	s, err := store.Open(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedStore(t *testing.T, st *store.Store) {
	t.Helper()
	_, err := st.IngestScan(context.Background(), &schema.ScanInput{
		Project: "demo",
		Files: []schema.FileInput{
			{Name: "a.go", Path: "a.go", Contributors: []string{"Alice"}},
			{Name: "b.go", Path: "b.go", Contributors: []string{"Alice"}},
			{Name: "c.go", Path: "c.go", Contributors: []string{"Bob"}},
		},
		Metrics: &schema.ContributionMetrics{
			TotalCommits:     12,
			CommitsPerAuthor: map[string]int{"Alice": 8, "Bob": 4},
		},
	})
	require.NoError(t, err)
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func baseConfig() *internal.Config {
	return &internal.Config{
		Backend:     schema.SQLiteBackend,
		ResultLimit: internal.DefaultResultLimit,
		Order:       schema.OrderDesc,
		Output:      "text",
	}
}

func TestMCPServerRankProjects(t *testing.T) {
	st := newTestStore(t)
	seedStore(t, st)
	s := mcp_internal.NewMCPServer(baseConfig(), st)

	res := callTool(t, s, "rank_projects", map[string]any{})
	require.False(t, res.IsError)

	var results []schema.RankingResult
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "demo", results[0].Project)
	assert.Equal(t, "Alice", results[0].Contributor)
}

func TestMCPServerRankByContributor(t *testing.T) {
	st := newTestStore(t)
	seedStore(t, st)
	s := mcp_internal.NewMCPServer(baseConfig(), st)

	t.Run("missing contributor", func(t *testing.T) {
		res := callTool(t, s, "rank_by_contributor", map[string]any{})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "contributor is required")
	})

	t.Run("variant spelling resolves", func(t *testing.T) {
		res := callTool(t, s, "rank_by_contributor", map[string]any{"contributor": "bob"})
		require.False(t, res.IsError)

		var results []schema.RankingResult
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &results))
		require.Len(t, results, 1)
		assert.Equal(t, "Bob", results[0].Contributor)
	})
}

func TestMCPServerGetProjectMetrics(t *testing.T) {
	st := newTestStore(t)
	seedStore(t, st)
	s := mcp_internal.NewMCPServer(baseConfig(), st)

	t.Run("missing project", func(t *testing.T) {
		res := callTool(t, s, "get_project_metrics", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "project is required")
	})

	t.Run("unknown project", func(t *testing.T) {
		res := callTool(t, s, "get_project_metrics", map[string]any{"project": "nope"})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "project not found")
	})

	t.Run("cached metrics", func(t *testing.T) {
		res := callTool(t, s, "get_project_metrics", map[string]any{"project": "demo"})
		require.False(t, res.IsError)

		var metrics schema.ContributionMetrics
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &metrics))
		assert.Equal(t, 12, metrics.TotalCommits)
	})
}
