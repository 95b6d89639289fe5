package vectordb

// Entry is one indexed product: the descriptive text that was embedded plus
// the metadata needed to re-hydrate the full product from the catalog.
type Entry struct {
	ID     string
	Text   string
	Vector []float32
	SKU    string
	Name   string
	Brand  string
}

// Hit is a nearest-neighbor search result. Distance is 1 − cosine
// similarity, so 0 means identical direction; callers surface 1 − distance
// as an unclamped relevance figure.
type Hit struct {
	SKU      string
	Name     string
	Brand    string
	Text     string
	Distance float32
}
