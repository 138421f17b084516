package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"tiendabot/backend/internal/domain"
)

// FileSource loads products from a JSON catalog file of the form
// {"products": [...]}.
type FileSource struct {
	Path string
}

func NewFileSource(path string) FileSource {
	return FileSource{Path: path}
}

func (s FileSource) Load(_ context.Context) ([]domain.Product, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Path)
		}
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var payload struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return payload.Products, nil
}

// StaticSource serves a fixed product list, used for tests and the seeded
// demo catalog.
type StaticSource []domain.Product

func (s StaticSource) Load(_ context.Context) ([]domain.Product, error) {
	return s, nil
}

// SeededSource returns the demo catalog as a Source.
func SeededSource() Source {
	return StaticSource(seedProducts())
}

// NewSeededIndex returns a loaded index with the demo catalog, for running
// without a catalog file or database.
func NewSeededIndex() *Index {
	ix := NewIndex(StaticSource(seedProducts()))
	// A static source cannot fail to load.
	_ = ix.Load(context.Background())
	return ix
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{ID: "prod_001", Name: "Camiseta Básica", Price: 19.99, Category: "ropa", Description: "Camiseta de algodón 100% en varios colores", Stock: 50},
		{ID: "prod_002", Name: "Camiseta Básica Azul", Price: 19.99, Category: "ropa", Description: "Camiseta de algodón 100% en color azul", Stock: 50},
		{ID: "prod_003", Name: "Pantalón Vaquero", Price: 49.99, Category: "ropa", Description: "Vaquero clásico de corte recto", Stock: 35},
		{ID: "prod_004", Name: "Zapatillas Running", Price: 79.99, Category: "deportes", Description: "Zapatillas ligeras para correr en asfalto", Stock: 20},
		{ID: "prod_005", Name: "Auriculares Bluetooth", Price: 59.99, Category: "electrónica", Description: "Auriculares inalámbricos con cancelación de ruido", Stock: 15},
		{ID: "prod_006", Name: "Lámpara de Escritorio", Price: 34.99, Category: "hogar", Description: "Lámpara LED regulable con puerto USB", Stock: 25},
		{ID: "prod_007", Name: "Botella Térmica", Price: 24.99, Category: "deportes", Description: "Botella de acero inoxidable, 750ml", Stock: 40},
		{ID: "prod_008", Name: "Cuaderno A5", Price: 8.99, Category: "papelería", Description: "Cuaderno de tapa dura con 200 páginas punteadas", Stock: 100},
		{ID: "prod_009", Name: "Mochila Urbana", Price: 44.99, Category: "accesorios", Description: "Mochila impermeable con compartimento para portátil", Stock: 18},
		{ID: "prod_010", Name: "Taza de Cerámica", Price: 12.99, Category: "hogar", Description: "Taza de cerámica artesanal de 350ml", Stock: 60},
	}
}
