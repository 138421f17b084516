package chat

import (
	"strconv"

	"tiendabot/backend/internal/domain"
)

// resolveRef turns a structured product reference into a catalog product.
// Absent means "product not found"; the caller emits a not-found message
// rather than guessing further.
func (e *Engine) resolveRef(state *ConversationState, ref productRef) (domain.Product, bool) {
	switch ref.Type {
	case refLast:
		if state.LastProductID == "" {
			return domain.Product{}, false
		}
		return e.catalog.GetByID(state.LastProductID)

	case refID:
		return e.catalog.GetByID(ref.Value)

	case refIndex:
		idx, err := strconv.Atoi(ref.Value)
		if err != nil {
			return domain.Product{}, false
		}
		// 1-based into the snapshot the user last saw.
		if idx < 1 || idx > len(state.LastSearchResults) {
			return domain.Product{}, false
		}
		return e.catalog.GetByID(state.LastSearchResults[idx-1].ID)

	case refName:
		// Models sometimes put an id in the name slot; tolerate it.
		if product, ok := e.catalog.GetByID(ref.Value); ok {
			return product, true
		}
		return e.catalog.GetByName(ref.Value)
	}

	return domain.Product{}, false
}
