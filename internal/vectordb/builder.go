package vectordb

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ziadkadry99/grocer/internal/catalog"
	"github.com/ziadkadry99/grocer/internal/embeddings"
	"github.com/ziadkadry99/grocer/internal/progress"
)

// fingerprintFileName sits next to the index file and records the catalog
// hash the index was built from.
const fingerprintFileName = "catalog.sha256"

// embedBatch controls how many blobs are embedded per progress step.
const embedBatch = 100

// BuildOrLoad returns a ready index for the catalog. A persisted index at
// dir whose recorded catalog fingerprint matches is loaded as-is; anything
// else (no index, stale fingerprint, rebuild forced) triggers a full
// rebuild. Any embedding failure during a build is fatal: no partial index
// is persisted or returned.
func BuildOrLoad(ctx context.Context, dir string, cat *catalog.Catalog, embedder embeddings.Embedder, reporter progress.Reporter, rebuild bool) (Index, error) {
	idx, err := NewChromemIndex(embedder)
	if err != nil {
		return nil, err
	}

	if !rebuild && indexMatches(dir, cat.Fingerprint()) {
		if err := idx.Load(ctx, dir); err != nil {
			return nil, fmt.Errorf("loading index from %s: %w", dir, err)
		}
		log.Printf("vectordb: loaded index from %s (%d products)", dir, idx.Count())
		return idx, nil
	}

	if err := build(ctx, idx, cat, embedder, reporter); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index dir: %w", err)
	}
	if err := idx.Persist(ctx, dir); err != nil {
		return nil, fmt.Errorf("persisting index to %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, fingerprintFileName), []byte(cat.Fingerprint()), 0o644); err != nil {
		return nil, fmt.Errorf("writing catalog fingerprint: %w", err)
	}

	log.Printf("vectordb: built index with %d products at %s", idx.Count(), dir)
	return idx, nil
}

// indexMatches reports whether dir holds a persisted index built from a
// catalog with the given fingerprint.
func indexMatches(dir, fingerprint string) bool {
	if _, err := os.Stat(filepath.Join(dir, indexFileName)); err != nil {
		return false
	}
	recorded, err := os.ReadFile(filepath.Join(dir, fingerprintFileName))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(recorded)) == fingerprint
}

// build embeds every product blob and fills the index. The catalog is
// embedded in batches so progress can be reported.
func build(ctx context.Context, idx Index, cat *catalog.Catalog, embedder embeddings.Embedder, reporter progress.Reporter) error {
	products := cat.Products()

	entries := make([]Entry, len(products))
	texts := make([]string, len(products))
	for i, p := range products {
		texts[i] = Blob(p)
		entries[i] = Entry{
			ID:    p.SKU,
			Text:  texts[i],
			SKU:   p.SKU,
			Name:  p.Name,
			Brand: p.BrandName,
		}
	}

	if reporter != nil {
		reporter.Start(len(texts))
		defer reporter.Finish()
	}

	for start := 0; start < len(texts); start += embedBatch {
		end := start + embedBatch
		if end > len(texts) {
			end = len(texts)
		}

		vectors, err := embedder.Embed(ctx, texts[start:end])
		if err != nil {
			return fmt.Errorf("embedding products %d-%d: %w", start, end-1, err)
		}
		for i, v := range vectors {
			entries[start+i].Vector = v
		}

		if reporter != nil {
			reporter.Update(end, fmt.Sprintf("embedding products (%d/%d)", end, len(texts)))
		}
	}

	return idx.Add(ctx, entries)
}

// Blob composes the descriptive text a product is embedded under.
func Blob(p catalog.Product) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Product: %s\n", p.Name)
	fmt.Fprintf(&sb, "Brand: %s\n", p.BrandName)
	fmt.Fprintf(&sb, "Description: %s\n", p.Description)
	fmt.Fprintf(&sb, "Categories: %s\n", strings.Join(p.CategoryNames(), ", "))
	fmt.Fprintf(&sb, "Price: $%s\n", p.Dollars())
	return sb.String()
}
