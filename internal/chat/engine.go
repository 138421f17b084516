// Package chat implements the conversation state machine: one user message
// per turn, one handler per turn, routed by an LLM-classified intent.
package chat

import (
	"context"

	"tiendabot/backend/internal/catalog"
	"tiendabot/backend/internal/llm"
)

// Engine holds the injected collaborators shared by all sessions. Both are
// read-only after construction, so one engine serves any number of
// independent sessions.
type Engine struct {
	catalog *catalog.Index
	llm     llm.Client
}

func NewEngine(index *catalog.Index, client llm.Client) *Engine {
	return &Engine{catalog: index, llm: client}
}

// NewSession starts a conversation with an empty cart at the welcome stage.
func (e *Engine) NewSession(sessionID string) *ConversationState {
	return NewState(sessionID)
}

// SubmitMessage runs exactly one conversation turn: append the user message,
// classify, dispatch to one handler, and return the assistant reply. An
// empty reply means the turn ended without a handler (EXIT or UNKNOWN); the
// session stays open for the next message.
//
// The very first message of a session is consumed as a trigger: it produces
// the fixed welcome and is never classified.
func (e *Engine) SubmitMessage(ctx context.Context, state *ConversationState, text string) string {
	state.appendUser(text)

	if len(state.Messages) == 1 {
		state.appendAssistant(welcomeMessage)
		state.Stage = StageShopping
		state.CurrentIntent = IntentUnknown
		state.LastPromptHint = HintNone
		return welcomeMessage
	}

	intent := e.classifyIntent(ctx, state, text)
	state.CurrentIntent = intent

	switch intent {
	case IntentBrowse:
		e.handleBrowse(state)
	case IntentManageCart:
		e.handleManageCart(ctx, state, text)
	case IntentViewCart:
		e.handleViewCart(state)
	case IntentCheckout:
		e.handleCheckout(state, text)
	case IntentOutOfContext:
		e.handleOutOfContext(ctx, state, text)
	default:
		// EXIT and UNKNOWN end the turn with no handler.
		return ""
	}

	return state.lastAssistantMessage()
}

// CartSummaryItem is one line of a cart summary.
type CartSummaryItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// CartSummary is the host-facing view of a session's cart.
type CartSummary struct {
	Items     []CartSummaryItem `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"item_count"`
}

// Summary renders the session cart for hosts.
func Summary(state *ConversationState) CartSummary {
	summary := CartSummary{
		Items:     []CartSummaryItem{},
		Total:     state.Cart.Total(),
		ItemCount: state.Cart.ItemCount(),
	}
	for _, item := range state.Cart.Items() {
		summary.Items = append(summary.Items, CartSummaryItem{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		})
	}
	return summary
}
