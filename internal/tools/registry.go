// Package tools implements the retrieval tools the agent can call against
// the product catalog and vector index.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ziadkadry99/grocer/internal/catalog"
	"github.com/ziadkadry99/grocer/internal/llm"
	"github.com/ziadkadry99/grocer/internal/vectordb"
)

// Registry holds the retrieval tools over a read-only catalog and index.
type Registry struct {
	catalog *catalog.Catalog
	index   vectordb.Index
}

// NewRegistry creates a registry bound to the given catalog and index.
func NewRegistry(cat *catalog.Catalog, idx vectordb.Index) *Registry {
	return &Registry{catalog: cat, index: idx}
}

// Defs returns the tool schemas bound to the model on every agent turn.
func (r *Registry) Defs() []llm.ToolDef {
	return []llm.ToolDef{
		{
			Name:        "search_products",
			Description: "Search for products based on a query. Returns detailed product information including name, brand, price, and description.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"query": {"type": "string", "description": "Natural language product search query"},
					"limit": {"type": "integer", "description": "Maximum number of results (default 5)"}
				},
				"required": ["query"]
			}`),
		},
		{
			Name:        "get_products_by_category",
			Description: "Get products filtered by category name (e.g., 'Snacks', 'Dairy & Eggs', 'Frozen Foods').",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"category_name": {"type": "string", "description": "Category name or part of one; matching is case-insensitive"}
				},
				"required": ["category_name"]
			}`),
		},
		{
			Name:        "suggest_products_for_recipe",
			Description: "Suggest products suitable for a specific recipe type. Examples: 'pasta', 'salad', 'breakfast', 'dessert', 'soup'.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"recipe_type": {"type": "string", "description": "The kind of recipe to shop for"}
				},
				"required": ["recipe_type"]
			}`),
		},
		{
			Name:        "find_products_for_athletes",
			Description: "Find products suitable for athletes - high protein, healthy options.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
	}
}

// Call dispatches one tool invocation by name. The returned string is the
// tool result payload handed back to the model; it is always structured
// JSON so the model can parse and narrate it.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (string, error) {
	switch name {
	case "search_products":
		var a struct {
			Query string `json:"query"`
			Limit int    `json:"limit"`
		}
		if err := unmarshalArgs(args, &a); err != nil {
			return "", err
		}
		if a.Query == "" {
			return "", fmt.Errorf("search_products: query is required")
		}
		return r.searchProducts(ctx, a.Query, a.Limit)

	case "get_products_by_category":
		var a struct {
			CategoryName string `json:"category_name"`
		}
		if err := unmarshalArgs(args, &a); err != nil {
			return "", err
		}
		if a.CategoryName == "" {
			return "", fmt.Errorf("get_products_by_category: category_name is required")
		}
		return r.productsByCategory(a.CategoryName)

	case "suggest_products_for_recipe":
		var a struct {
			RecipeType string `json:"recipe_type"`
		}
		if err := unmarshalArgs(args, &a); err != nil {
			return "", err
		}
		if a.RecipeType == "" {
			return "", fmt.Errorf("suggest_products_for_recipe: recipe_type is required")
		}
		return r.suggestForRecipe(ctx, a.RecipeType)

	case "find_products_for_athletes":
		return r.findForAthletes(ctx)

	default:
		return "", fmt.Errorf("unknown tool %q", name)
	}
}

func unmarshalArgs(args json.RawMessage, into any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, into); err != nil {
		return fmt.Errorf("decoding tool arguments: %w", err)
	}
	return nil
}
