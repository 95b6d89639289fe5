package catalog

import (
	"strings"
	"testing"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := parse(strings.NewReader(sampleFeed), "inline")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return c
}

func TestFilterByCategory_CaseInsensitiveSubstring(t *testing.T) {
	c := testCatalog(t)

	matches := c.FilterByCategory("dairy", 10)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Name != "Greek Yogurt" {
		t.Errorf("name = %q", matches[0].Name)
	}
}

func TestFilterByCategory_MatchesAnyCategory(t *testing.T) {
	c := testCatalog(t)

	matches := c.FilterByCategory("organic", 10)
	if len(matches) != 1 || matches[0].SKU != "C3" {
		t.Fatalf("matches = %v", matches)
	}
}

func TestFilterByCategory_Limit(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 15; i++ {
		sb.WriteString(`{"sku":"S`)
		sb.WriteByte(byte('A' + i))
		sb.WriteString(`","name":"Snack","categories":[{"name":"Snacks"}]}` + "\n")
	}
	c, err := parse(strings.NewReader(sb.String()), "inline")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if got := c.FilterByCategory("snack", 10); len(got) != 10 {
		t.Fatalf("expected 10 matches, got %d", len(got))
	}
	if got := c.FilterByCategory("snack", 0); len(got) != 15 {
		t.Fatalf("expected uncapped 15 matches, got %d", len(got))
	}
}

func TestBySKU_Unknown(t *testing.T) {
	c := testCatalog(t)
	if _, ok := c.BySKU("nope"); ok {
		t.Fatal("unexpected hit for unknown sku")
	}
}

func TestDisplayPrice_Fallback(t *testing.T) {
	p := Product{Price: Price{Amount: 150}}
	if got := p.DisplayPrice(); got != "N/A" {
		t.Errorf("DisplayPrice = %q, want N/A", got)
	}
	if got := p.Dollars(); got != "1.50" {
		t.Errorf("Dollars = %q, want 1.50", got)
	}
}
