package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gitfolio/gitfolio/core"
	"github.com/gitfolio/gitfolio/internal"
	"github.com/gitfolio/gitfolio/internal/store"
	"github.com/gitfolio/gitfolio/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *internal.Config
	store   *store.Store
}

func (h *toolHandler) handleRankProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	order := h.baseCfg.Order
	if o := request.GetString("order", ""); o != "" {
		order = schema.RankOrder(o)
	}
	limit := h.baseCfg.ResultLimit
	if l := request.GetInt("limit", 0); l > 0 {
		limit = l
	}

	activities, err := h.store.ProjectActivities(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}

	results := core.RankProjects(activities, order, limit)
	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRankByContributor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	contributor := request.GetString("contributor", "")
	if contributor == "" {
		return mcp.NewToolResultError("contributor is required"), nil
	}
	limit := h.baseCfg.ResultLimit
	if l := request.GetInt("limit", 0); l > 0 {
		limit = l
	}

	activities, err := h.store.ProjectActivities(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}

	results := core.RankByContributor(activities, contributor, limit)
	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetProjectMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project := request.GetString("project", "")
	if project == "" {
		return mcp.NewToolResultError("project is required"), nil
	}

	metrics, err := h.store.GetMetrics(ctx, project)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("metrics lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(metrics, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
