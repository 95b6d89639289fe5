package catalog

import "fmt"

// Product is a single grocery catalog record. Products are loaded once at
// startup and never mutated afterwards.
type Product struct {
	SKU         string     `json:"sku"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	BrandName   string     `json:"brandName"`
	Price       Price      `json:"price"`
	Categories  []Category `json:"categories"`
}

// Price holds the amount in integer cents plus the display string from the
// feed (e.g. "$3.99").
type Price struct {
	Amount  int    `json:"amount"`
	Display string `json:"amountRelevantDisplay"`
}

// Category is a named product category. The feed nests these as objects so
// the field survives the JSON mapping.
type Category struct {
	Name string `json:"name"`
}

// DisplayPrice returns the feed's display string, or "N/A" when the feed
// carried none.
func (p Product) DisplayPrice() string {
	if p.Price.Display == "" {
		return "N/A"
	}
	return p.Price.Display
}

// Dollars renders the cent amount as a dollar figure to two decimals.
func (p Product) Dollars() string {
	return fmt.Sprintf("%.2f", float64(p.Price.Amount)/100)
}

// CategoryNames returns the category names in feed order.
func (p Product) CategoryNames() []string {
	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		names = append(names, c.Name)
	}
	return names
}
