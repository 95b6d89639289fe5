package vectordb

import (
	"context"
	"fmt"
	"path/filepath"

	chromem "github.com/philippgille/chromem-go"

	"github.com/ziadkadry99/grocer/internal/embeddings"
)

const (
	collectionName = "products"
	indexFileName  = "products.gob.gz"
)

// ChromemIndex implements Index on top of chromem-go. The database lives in
// memory and is persisted as a single compressed gob file.
type ChromemIndex struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemIndex creates an empty index. The embedder is used to embed
// query text at search time and any entries added without vectors.
func NewChromemIndex(embedder embeddings.Embedder) (*ChromemIndex, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &ChromemIndex{db: db, collection: col, embedFunc: ef}, nil
}

func (x *ChromemIndex) Add(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(entries))
	for i, e := range entries {
		docs[i] = chromem.Document{
			ID:        e.ID,
			Content:   e.Text,
			Embedding: e.Vector,
			Metadata: map[string]string{
				"sku":   e.SKU,
				"name":  e.Name,
				"brand": e.Brand,
			},
		}
	}

	return x.collection.AddDocuments(ctx, docs, 1)
}

func (x *ChromemIndex) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	if k <= 0 {
		k = 5
	}

	// chromem-go rejects nResults larger than the collection.
	count := x.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := x.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	hits := make([]Hit, len(results))
	for i, r := range results {
		hits[i] = Hit{
			SKU:      r.Metadata["sku"],
			Name:     r.Metadata["name"],
			Brand:    r.Metadata["brand"],
			Text:     r.Content,
			Distance: 1 - r.Similarity,
		}
	}

	return hits, nil
}

func (x *ChromemIndex) Count() int { return x.collection.Count() }

func (x *ChromemIndex) Persist(ctx context.Context, dir string) error {
	return x.db.ExportToFile(filepath.Join(dir, indexFileName), true, "")
}

func (x *ChromemIndex) Load(ctx context.Context, dir string) error {
	if err := x.db.ImportFromFile(filepath.Join(dir, indexFileName), ""); err != nil {
		return fmt.Errorf("import index: %w", err)
	}

	// Re-acquire the collection reference after import.
	col := x.db.GetCollection(collectionName, x.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	x.collection = col
	return nil
}
