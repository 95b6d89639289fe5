package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// productInfo is the JSON record shape tool results are built from. Omitted
// fields are dropped so each tool returns only what it promises.
type productInfo struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Price       string `json:"price"`
	Description string `json:"description,omitempty"`
	Relevance   string `json:"relevance_score,omitempty"`
}

// searchProducts runs a k-nearest-neighbor search and re-hydrates each hit
// from the catalog. Hits whose SKU no longer resolves are dropped.
func (r *Registry) searchProducts(ctx context.Context, query string, limit int) (string, error) {
	if limit <= 0 {
		limit = 5
	}

	hits, err := r.index.Search(ctx, query, limit)
	if err != nil {
		return "", fmt.Errorf("search_products: %w", err)
	}

	var results []productInfo
	for _, h := range hits {
		p, ok := r.catalog.BySKU(h.SKU)
		if !ok {
			continue
		}
		results = append(results, productInfo{
			Name:        p.Name,
			Brand:       p.BrandName,
			Price:       p.DisplayPrice(),
			Description: truncate(p.Description, 200),
			// Display heuristic only; not clamped to [0,1].
			Relevance: fmt.Sprintf("%.2f", 1-h.Distance),
		})
	}

	return marshalResults(results)
}

// productsByCategory scans the catalog linearly and returns the first 10
// products whose category names contain the filter, in catalog order.
func (r *Registry) productsByCategory(categoryName string) (string, error) {
	var results []productInfo
	for _, p := range r.catalog.FilterByCategory(categoryName, 10) {
		results = append(results, productInfo{
			Name:  p.Name,
			Brand: p.BrandName,
			Price: p.DisplayPrice(),
		})
	}
	return marshalResults(results)
}

// suggestForRecipe turns the recipe type into a similarity query and
// returns hydrated matches.
func (r *Registry) suggestForRecipe(ctx context.Context, recipeType string) (string, error) {
	query := fmt.Sprintf("ingredients for %s recipe cooking", recipeType)

	hits, err := r.index.Search(ctx, query, 8)
	if err != nil {
		return "", fmt.Errorf("suggest_products_for_recipe: %w", err)
	}

	var results []productInfo
	for _, h := range hits {
		p, ok := r.catalog.BySKU(h.SKU)
		if !ok {
			continue
		}
		results = append(results, productInfo{
			Name:  p.Name,
			Brand: p.BrandName,
			Price: p.DisplayPrice(),
		})
	}
	return marshalResults(results)
}

// athleteQueries are the fixed searches behind find_products_for_athletes.
var athleteQueries = []string{
	"high protein lean meat chicken turkey fish",
	"greek yogurt protein",
	"organic healthy vegetables",
}

// findForAthletes runs the fixed queries, deduplicates by SKU, and returns
// up to 10 results in query order.
func (r *Registry) findForAthletes(ctx context.Context) (string, error) {
	seen := make(map[string]bool)
	var results []productInfo

	for _, query := range athleteQueries {
		hits, err := r.index.Search(ctx, query, 3)
		if err != nil {
			return "", fmt.Errorf("find_products_for_athletes: %w", err)
		}
		for _, h := range hits {
			p, ok := r.catalog.BySKU(h.SKU)
			if !ok || seen[p.SKU] {
				continue
			}
			seen[p.SKU] = true
			results = append(results, productInfo{
				Name:        p.Name,
				Brand:       p.BrandName,
				Price:       p.DisplayPrice(),
				Description: truncate(p.Description, 150),
			})
		}
	}

	if len(results) > 10 {
		results = results[:10]
	}
	return marshalResults(results)
}

// marshalResults renders tool results as indented JSON. An empty result set
// serializes as [] rather than null.
func marshalResults(results []productInfo) (string, error) {
	if results == nil {
		results = []productInfo{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding tool results: %w", err)
	}
	return string(data), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
