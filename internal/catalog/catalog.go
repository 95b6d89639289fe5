package catalog

import "strings"

// Catalog is the in-memory product collection, preserving feed order and
// indexed by SKU. It is read-only after loading.
type Catalog struct {
	products    []Product
	bySKU       map[string]int
	rawLines    []string
	fingerprint string
}

func newCatalog() *Catalog {
	return &Catalog{bySKU: make(map[string]int)}
}

func (c *Catalog) add(p Product, rawLine string) {
	if _, dup := c.bySKU[p.SKU]; dup {
		// Later feed lines win, matching a full re-read of the feed.
		c.products[c.bySKU[p.SKU]] = p
		return
	}
	c.bySKU[p.SKU] = len(c.products)
	c.products = append(c.products, p)
	c.rawLines = append(c.rawLines, rawLine)
}

func (c *Catalog) append(other *Catalog) {
	for i, p := range other.products {
		c.add(p, other.rawLines[i])
	}
}

func (c *Catalog) sealFingerprint() {
	c.fingerprint = fingerprintLines(c.rawLines)
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Products returns all products in feed order. Callers must not mutate the
// returned slice.
func (c *Catalog) Products() []Product { return c.products }

// BySKU resolves a SKU to its product. The second return reports whether
// the SKU exists in the catalog.
func (c *Catalog) BySKU(sku string) (Product, bool) {
	i, ok := c.bySKU[sku]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// FilterByCategory returns up to limit products whose category names
// contain name as a case-insensitive substring, in catalog order. A limit
// of zero or less means no cap.
func (c *Catalog) FilterByCategory(name string, limit int) []Product {
	needle := strings.ToLower(name)

	var matches []Product
	for _, p := range c.products {
		for _, cat := range p.Categories {
			if strings.Contains(strings.ToLower(cat.Name), needle) {
				matches = append(matches, p)
				break
			}
		}
		if limit > 0 && len(matches) == limit {
			break
		}
	}
	return matches
}

// Fingerprint is a stable hash of the accepted feed lines, used to decide
// whether a persisted index still matches the catalog.
func (c *Catalog) Fingerprint() string { return c.fingerprint }
