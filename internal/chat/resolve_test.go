package chat

import "testing"

func TestResolveRefByName(t *testing.T) {
	engine := newTestEngine(forbiddenClient{t: t})
	state := engine.NewSession("")

	product, ok := engine.resolveRef(state, productRef{Type: refName, Value: "camiseta básica"})
	if !ok || product.ID != "prod_001" {
		t.Fatalf("expected prod_001, got %+v ok=%v", product, ok)
	}

	// An id landing in the name slot still resolves.
	product, ok = engine.resolveRef(state, productRef{Type: refName, Value: "prod_004"})
	if !ok || product.ID != "prod_004" {
		t.Fatalf("expected id tolerance, got %+v ok=%v", product, ok)
	}
}

func TestResolveRefByID(t *testing.T) {
	engine := newTestEngine(forbiddenClient{t: t})
	state := engine.NewSession("")

	product, ok := engine.resolveRef(state, productRef{Type: refID, Value: "prod_005"})
	if !ok || product.Name != "Auriculares Bluetooth" {
		t.Fatalf("unexpected product: %+v ok=%v", product, ok)
	}

	if _, ok := engine.resolveRef(state, productRef{Type: refID, Value: "prod_404"}); ok {
		t.Fatalf("unknown id must not resolve")
	}
}

func TestResolveRefByIndex(t *testing.T) {
	engine := newTestEngine(forbiddenClient{t: t})
	state := engine.NewSession("")
	state.LastSearchResults = []ProductSummary{
		{ID: "prod_003"},
		{ID: "prod_007"},
	}

	product, ok := engine.resolveRef(state, productRef{Type: refIndex, Value: "2"})
	if !ok || product.ID != "prod_007" {
		t.Fatalf("index 2 should be the second listed product, got %+v ok=%v", product, ok)
	}

	for _, value := range []string{"0", "3", "-1", "dos"} {
		if _, ok := engine.resolveRef(state, productRef{Type: refIndex, Value: value}); ok {
			t.Fatalf("index %q must not resolve", value)
		}
	}
}

func TestResolveRefLast(t *testing.T) {
	engine := newTestEngine(forbiddenClient{t: t})
	state := engine.NewSession("")

	if _, ok := engine.resolveRef(state, productRef{Type: refLast}); ok {
		t.Fatalf("last must not resolve before any product was referenced")
	}

	state.LastProductID = "prod_009"
	product, ok := engine.resolveRef(state, productRef{Type: refLast})
	if !ok || product.Name != "Mochila Urbana" {
		t.Fatalf("unexpected product: %+v ok=%v", product, ok)
	}
}

func TestResolveRefUnknownType(t *testing.T) {
	engine := newTestEngine(forbiddenClient{t: t})
	state := engine.NewSession("")

	if _, ok := engine.resolveRef(state, productRef{Type: "category", Value: "ropa"}); ok {
		t.Fatalf("unknown ref type must not resolve")
	}
}

func TestExtractName(t *testing.T) {
	cases := map[string]string{
		"Mi nombre es Laura":  "Laura",
		"me llamo Juan Pérez": "Juan Pérez",
		"Soy Ana":             "Ana",
		"Carlos":              "Carlos",
		"   ":                 "",
	}
	for input, want := range cases {
		if got := extractName(input); got != want {
			t.Fatalf("extractName(%q) = %q, want %q", input, got, want)
		}
	}
}
