package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchProductsTool defines the search_products MCP tool.
var searchProductsTool = mcp.NewTool("search_products",
	mcp.WithDescription("Search grocery products semantically. Returns name, brand, price, description, and a relevance score per hit."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language product search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 5)"),
	),
)

// productsByCategoryTool defines the get_products_by_category MCP tool.
var productsByCategoryTool = mcp.NewTool("get_products_by_category",
	mcp.WithDescription("List products in a category. Matching is a case-insensitive substring over category names, e.g. 'dairy' matches 'Dairy & Eggs'."),
	mcp.WithString("category_name",
		mcp.Required(),
		mcp.Description("Category name or part of one"),
	),
)

// recipeSuggestionsTool defines the suggest_products_for_recipe MCP tool.
var recipeSuggestionsTool = mcp.NewTool("suggest_products_for_recipe",
	mcp.WithDescription("Suggest products suitable for a recipe type such as 'pasta', 'salad', 'breakfast', 'dessert', or 'soup'."),
	mcp.WithString("recipe_type",
		mcp.Required(),
		mcp.Description("The kind of recipe to shop for"),
	),
)

// athleteProductsTool defines the find_products_for_athletes MCP tool.
var athleteProductsTool = mcp.NewTool("find_products_for_athletes",
	mcp.WithDescription("Find products suitable for athletes - high protein, healthy options."),
)
