package catalog

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"

	"tiendabot/backend/internal/domain"
)

var (
	ErrNotFound  = errors.New("catalog source not found")
	ErrMalformed = errors.New("catalog data malformed")
)

// DefaultMinSimilarity is the search cutoff used when callers have no reason
// to loosen it.
const DefaultMinSimilarity = 0.4

// Source provides the raw product records the index is built from.
type Source interface {
	Load(ctx context.Context) ([]domain.Product, error)
}

// Index is the in-memory product catalog. It loads once from its source and
// is read-only afterwards, so steady-state lookups need no locking beyond the
// one-time initialization guard.
type Index struct {
	source Source

	mu     sync.Mutex
	loaded bool
	byID   map[string]domain.Product
	order  []string
}

func NewIndex(source Source) *Index {
	return &Index{
		source: source,
		byID:   make(map[string]domain.Product),
	}
}

// Load reads the source into the index. It is idempotent: once a load has
// succeeded, subsequent calls are no-ops. Individual records that fail
// validation are skipped with a warning rather than aborting the load.
func (ix *Index) Load(ctx context.Context) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.loaded {
		return nil
	}

	records, err := ix.source.Load(ctx)
	if err != nil {
		return err
	}

	for _, record := range records {
		product := record
		if err := product.Validate(); err != nil {
			log.Printf("[catalog] WARN: skipping product %q: %v", record.ID, err)
			continue
		}
		if _, exists := ix.byID[product.ID]; exists {
			log.Printf("[catalog] WARN: skipping duplicate product id %q", product.ID)
			continue
		}
		ix.byID[product.ID] = product
		ix.order = append(ix.order, product.ID)
	}

	ix.loaded = true
	log.Printf("[catalog] loaded %d products", len(ix.order))
	return nil
}

// GetByID returns the product with the given id.
func (ix *Index) GetByID(id string) (domain.Product, bool) {
	product, ok := ix.byID[id]
	return product, ok
}

// GetByName returns the product whose name matches exactly,
// case-insensitively.
func (ix *Index) GetByName(name string) (domain.Product, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, id := range ix.order {
		if strings.ToLower(ix.byID[id].Name) == want {
			return ix.byID[id], true
		}
	}
	return domain.Product{}, false
}

// All returns every product in load order.
func (ix *Index) All() []domain.Product {
	out := make([]domain.Product, 0, len(ix.order))
	for _, id := range ix.order {
		out = append(out, ix.byID[id])
	}
	return out
}

// Search ranks products against a free-text query. The score is the best of
// the name, description and category similarity ratios, with description and
// category deliberately down-weighted because that text is noisier than
// names. A literal substring hit floors the score at 0.7. Results scoring
// below minSimilarity are dropped; ties keep load order.
func (ix *Index) Search(query string, minSimilarity float64) []domain.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	type scored struct {
		product domain.Product
		score   float64
	}
	var matches []scored

	for _, id := range ix.order {
		product := ix.byID[id]
		name := strings.ToLower(product.Name)
		desc := strings.ToLower(product.Description)
		cat := strings.ToLower(product.Category)

		score := similarity(query, name)
		if s := similarity(query, desc) * 0.8; s > score {
			score = s
		}
		if s := similarity(query, cat) * 0.9; s > score {
			score = s
		}
		if strings.Contains(name, query) || strings.Contains(desc, query) || strings.Contains(cat, query) {
			if score < 0.7 {
				score = 0.7
			}
		}

		if score >= minSimilarity {
			matches = append(matches, scored{product: product, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]domain.Product, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.product)
	}
	return out
}
