package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// call forwards one tool invocation to the registry, re-encoding the MCP
// arguments as the registry's JSON argument object.
func (s *Server) call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding arguments: %v", err)), nil
	}

	result, err := s.registry.Call(ctx, name, raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", name, err)), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleSearchProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	args := map[string]any{"query": query}
	if limit := request.GetInt("limit", 0); limit > 0 {
		args["limit"] = limit
	}
	return s.call(ctx, "search_products", args)
}

func (s *Server) handleProductsByCategory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := request.RequireString("category_name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: category_name"), nil
	}
	return s.call(ctx, "get_products_by_category", map[string]any{"category_name": category})
}

func (s *Server) handleRecipeSuggestions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipeType, err := request.RequireString("recipe_type")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: recipe_type"), nil
	}
	return s.call(ctx, "suggest_products_for_recipe", map[string]any{"recipe_type": recipeType})
}

func (s *Server) handleAthleteProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.call(ctx, "find_products_for_athletes", nil)
}
