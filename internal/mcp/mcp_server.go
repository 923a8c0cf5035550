// Package mcp provides the Model Context Protocol (MCP) server
// implementation exposing ranking and metrics over stdio.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gitfolio/gitfolio/internal"
	"github.com/gitfolio/gitfolio/internal/store"
)

// NewMCPServer initializes and configures the gitfolio MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *internal.Config, st *store.Store) *server.MCPServer {
	s := server.NewMCPServer(
		"Gitfolio Ranking Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   st,
	}

	// --- 1. Tool: rank_projects ---
	s.AddTool(mcp.NewTool("rank_projects",
		mcp.WithDescription("Rank scanned projects by contribution concentration: each project's top contributor with a composite ownership score."),
		mcp.WithString("order", mcp.Description("Sort direction over the composite score. Defaults to 'desc'."), mcp.Enum("asc", "desc")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleRankProjects)

	// --- 2. Tool: rank_by_contributor ---
	s.AddTool(mcp.NewTool("rank_by_contributor",
		mcp.WithDescription("Rank the projects one contributor has file links in, scored for that contributor."),
		mcp.WithString("contributor", mcp.Description("Contributor name; any spelling variant is canonicalized."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleRankByContributor)

	// --- 3. Tool: get_project_metrics ---
	s.AddTool(mcp.NewTool("get_project_metrics",
		mcp.WithDescription("Fetch the cached contribution metrics of one scanned project: commits, line churn and file sets per author, category activity, weekly buckets."),
		mcp.WithString("project", mcp.Description("Project name as recorded by the scan."), mcp.Required()),
	), h.handleGetProjectMetrics)

	return s
}

// StartMCPServer starts the gitfolio MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *internal.Config, st *store.Store) error {
	s := NewMCPServer(baseCfg, st)
	return server.ServeStdio(s)
}
