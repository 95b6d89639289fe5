package vectordb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/grocer/internal/catalog"
	"github.com/ziadkadry99/grocer/internal/progress"
)

const builderFeed = `{"sku":"A1","name":"Greek Yogurt","brandName":"BrandX","categories":[{"name":"Dairy & Eggs"}],"price":{"amount":399,"amountRelevantDisplay":"$3.99"}}
{"sku":"B2","name":"Spaghetti","brandName":"PastaCo","description":"Durum wheat spaghetti","categories":[{"name":"Pasta & Grains"}],"price":{"amount":199,"amountRelevantDisplay":"$1.99"}}
`

func builderCatalog(t *testing.T, feed string) *catalog.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.txt")
	if err := os.WriteFile(path, []byte(feed), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

// countingEmbedder wraps mockEmbedder and records how many Embed calls and
// texts it served, so tests can tell a build from a load.
type countingEmbedder struct {
	*mockEmbedder
	calls int
	texts int
}

func (c *countingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	c.calls++
	c.texts += len(texts)
	return c.mockEmbedder.Embed(ctx, texts)
}

func TestBuildOrLoad_BuildThenLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cat := builderCatalog(t, builderFeed)
	embedder := &countingEmbedder{mockEmbedder: newMockEmbedder(64)}

	idx, err := BuildOrLoad(ctx, dir, cat, embedder, progress.Silent{}, false)
	if err != nil {
		t.Fatalf("BuildOrLoad (build): %v", err)
	}
	if idx.Count() != 2 {
		t.Fatalf("Count = %d, want 2", idx.Count())
	}
	if embedder.texts != 2 {
		t.Fatalf("embedded %d texts during build, want 2", embedder.texts)
	}

	// Second call must load, not re-embed the catalog.
	embedder.texts = 0
	reloaded, err := BuildOrLoad(ctx, dir, cat, embedder, progress.Silent{}, false)
	if err != nil {
		t.Fatalf("BuildOrLoad (load): %v", err)
	}
	if reloaded.Count() != 2 {
		t.Fatalf("Count after load = %d, want 2", reloaded.Count())
	}
	if embedder.texts != 0 {
		t.Fatalf("load path embedded %d texts, want 0", embedder.texts)
	}

	// Build-then-load round trip: searching for a known product's blob
	// returns that product first.
	p, _ := cat.BySKU("A1")
	hits, err := reloaded.Search(ctx, Blob(p), 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) == 0 || hits[0].SKU != "A1" {
		t.Fatalf("expected A1 as top hit, got %+v", hits)
	}
}

func TestBuildOrLoad_FingerprintMismatchRebuilds(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	embedder := &countingEmbedder{mockEmbedder: newMockEmbedder(64)}

	if _, err := BuildOrLoad(ctx, dir, builderCatalog(t, builderFeed), embedder, progress.Silent{}, false); err != nil {
		t.Fatalf("initial build: %v", err)
	}

	// A changed catalog must trigger a rebuild even though an index exists.
	changed := builderFeed + `{"sku":"C3","name":"Organic Spinach","brandName":"GreenFarm"}` + "\n"
	embedder.texts = 0
	idx, err := BuildOrLoad(ctx, dir, builderCatalog(t, changed), embedder, progress.Silent{}, false)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if embedder.texts != 3 {
		t.Fatalf("rebuild embedded %d texts, want 3", embedder.texts)
	}
	if idx.Count() != 3 {
		t.Fatalf("Count after rebuild = %d, want 3", idx.Count())
	}
}

func TestBuildOrLoad_ForcedRebuild(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cat := builderCatalog(t, builderFeed)
	embedder := &countingEmbedder{mockEmbedder: newMockEmbedder(64)}

	if _, err := BuildOrLoad(ctx, dir, cat, embedder, progress.Silent{}, false); err != nil {
		t.Fatalf("initial build: %v", err)
	}

	embedder.texts = 0
	if _, err := BuildOrLoad(ctx, dir, cat, embedder, progress.Silent{}, true); err != nil {
		t.Fatalf("forced rebuild: %v", err)
	}
	if embedder.texts != 2 {
		t.Fatalf("forced rebuild embedded %d texts, want 2", embedder.texts)
	}
}

// failingEmbedder fails every call, standing in for an unreachable
// embedding service.
type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("service unreachable")
}
func (failingEmbedder) Dimensions() int { return 64 }
func (failingEmbedder) Name() string    { return "failing" }

func TestBuildOrLoad_EmbedFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	cat := builderCatalog(t, builderFeed)

	_, err := BuildOrLoad(context.Background(), dir, cat, failingEmbedder{}, progress.Silent{}, false)
	if err == nil {
		t.Fatal("expected build failure")
	}

	// No partial index may be left behind.
	if _, statErr := os.Stat(filepath.Join(dir, indexFileName)); statErr == nil {
		t.Fatal("partial index file persisted after failed build")
	}
}

func TestBlob(t *testing.T) {
	p := catalog.Product{
		SKU:         "A1",
		Name:        "Greek Yogurt",
		BrandName:   "BrandX",
		Description: "Thick strained yogurt",
		Categories:  []catalog.Category{{Name: "Dairy & Eggs"}, {Name: "Breakfast"}},
		Price:       catalog.Price{Amount: 399},
	}

	blob := Blob(p)
	for _, want := range []string{
		"Product: Greek Yogurt",
		"Brand: BrandX",
		"Description: Thick strained yogurt",
		"Categories: Dairy & Eggs, Breakfast",
		"Price: $3.99",
	} {
		if !strings.Contains(blob, want) {
			t.Errorf("blob missing %q:\n%s", want, blob)
		}
	}
}
