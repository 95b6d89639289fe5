package vectordb

import "context"

// Index is the similarity-searchable product index.
type Index interface {
	// Add inserts entries, keeping any precomputed vectors.
	Add(ctx context.Context, entries []Entry) error

	// Search returns the k nearest entries to the query text.
	Search(ctx context.Context, query string, k int) ([]Hit, error)

	// Count returns the number of indexed entries.
	Count() int

	// Persist writes the index to dir.
	Persist(ctx context.Context, dir string) error

	// Load restores the index from dir.
	Load(ctx context.Context, dir string) error
}
