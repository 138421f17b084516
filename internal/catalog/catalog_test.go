package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tiendabot/backend/internal/domain"
)

func testIndex(t *testing.T, products []domain.Product) *Index {
	t.Helper()
	ix := NewIndex(StaticSource(products))
	if err := ix.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return ix
}

func TestLoadSkipsInvalidAndDuplicateRecords(t *testing.T) {
	ix := testIndex(t, []domain.Product{
		{ID: "prod_001", Name: "Camiseta Básica", Price: 19.99, Category: "ropa", Stock: 50},
		{ID: "", Name: "Sin ID", Price: 10, Category: "ropa", Stock: 5},
		{ID: "prod_002", Name: "Precio Malo", Price: 0, Category: "ropa", Stock: 5},
		{ID: "prod_001", Name: "Duplicado", Price: 9.99, Category: "ropa", Stock: 5},
		{ID: "prod_003", Name: "Taza de Cerámica", Price: 12.99, Category: "hogar", Stock: 60},
	})

	all := ix.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 valid products, got %d", len(all))
	}
	if all[0].ID != "prod_001" || all[1].ID != "prod_003" {
		t.Fatalf("unexpected load order: %+v", all)
	}
	if all[0].Name != "Camiseta Básica" {
		t.Fatalf("duplicate id must keep the first record, got %q", all[0].Name)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	ix := testIndex(t, []domain.Product{
		{ID: "prod_001", Name: "Camiseta Básica", Price: 19.99, Category: "ropa", Stock: 50},
	})

	if err := ix.Load(context.Background()); err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if len(ix.All()) != 1 {
		t.Fatalf("second load must not duplicate products, got %d", len(ix.All()))
	}
}

func TestGetByNameIsCaseInsensitive(t *testing.T) {
	ix := NewSeededIndex()

	product, ok := ix.GetByName("camiseta básica")
	if !ok {
		t.Fatalf("expected exact-name match")
	}
	if product.ID != "prod_001" {
		t.Fatalf("expected prod_001, got %s", product.ID)
	}

	if _, ok := ix.GetByName("camiseta"); ok {
		t.Fatalf("partial name must not match GetByName")
	}
}

func TestSearchRanksExactNameFirst(t *testing.T) {
	ix := NewSeededIndex()

	results := ix.Search("camiseta básica", DefaultMinSimilarity)
	if len(results) < 2 {
		t.Fatalf("expected both shirts in results, got %d", len(results))
	}
	if results[0].ID != "prod_001" {
		t.Fatalf("exact name must rank first, got %s", results[0].ID)
	}
	if results[1].ID != "prod_002" {
		t.Fatalf("longer variant should rank second, got %s", results[1].ID)
	}
}

func TestSearchSubstringFloor(t *testing.T) {
	ix := NewSeededIndex()

	// "taza" is a short query; the substring hit keeps it above the cutoff.
	results := ix.Search("taza", DefaultMinSimilarity)
	if len(results) == 0 {
		t.Fatalf("substring hit should survive the similarity cutoff")
	}
	if results[0].ID != "prod_010" {
		t.Fatalf("expected the mug first, got %s", results[0].ID)
	}
}

func TestSearchMatchesCategory(t *testing.T) {
	ix := NewSeededIndex()

	results := ix.Search("deportes", DefaultMinSimilarity)
	if len(results) < 2 {
		t.Fatalf("expected the sports products, got %d results", len(results))
	}
	for _, p := range results[:2] {
		if p.Category != "deportes" {
			t.Fatalf("expected deportes category, got %s (%s)", p.Category, p.ID)
		}
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	ix := NewSeededIndex()
	if results := ix.Search("   ", DefaultMinSimilarity); len(results) != 0 {
		t.Fatalf("blank query must return nothing, got %d", len(results))
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "absent.json"))
	if _, err := source.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileSourceMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	source := NewFileSource(path)
	if _, err := source.Load(context.Background()); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestFileSourceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	payload := `{"products":[{"id":"prod_001","name":"Camiseta Básica","price":19.99,"category":"ropa","description":"algodón","stock":50}]}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	ix := NewIndex(NewFileSource(path))
	if err := ix.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	product, ok := ix.GetByID("prod_001")
	if !ok || product.Price != 19.99 {
		t.Fatalf("unexpected product: %+v ok=%v", product, ok)
	}
}

func TestSimilaritySymmetricRatio(t *testing.T) {
	if got := similarity("abcd", "abcd"); got != 1.0 {
		t.Fatalf("identical strings: expected 1.0, got %v", got)
	}
	if got := similarity("abcd", "wxyz"); got != 0.0 {
		t.Fatalf("disjoint strings: expected 0.0, got %v", got)
	}
	// Matching blocks "abcd" in "abxcd" vs "abcd": 2*4/9.
	want := 2.0 * 4.0 / 9.0
	if got := similarity("abxcd", "abcd"); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
