package chat

import (
	"context"
	"log"
	"strings"
)

// classifyIntent maps the latest user message to one intent. While checkout
// data collection is in progress the intent is forced to CHECKOUT without
// calling the model, so a misclassification cannot derail it. Any model or
// parse failure degrades to IntentUnknown.
func (e *Engine) classifyIntent(ctx context.Context, state *ConversationState, userMessage string) Intent {
	if state.Stage == StageCheckout && (state.CustomerName == "" || state.CustomerCity == "") {
		return IntentCheckout
	}

	ic := intentContext{
		Stage:         state.Stage,
		Hint:          state.LastPromptHint,
		CartItemCount: state.Cart.ItemCount(),
		History:       state.recentMessages(4),
	}
	if state.LastProductID != "" {
		if product, ok := e.catalog.GetByID(state.LastProductID); ok {
			ic.LastProductName = product.Name
		}
	}

	raw, err := e.llm.Complete(ctx, intentMessages(userMessage, ic))
	if err != nil {
		log.Printf("[chat] WARN: intent classification failed: %v", err)
		return IntentUnknown
	}

	intent, ok := parseIntent(raw)
	if !ok {
		log.Printf("[chat] WARN: unrecognized intent label %q", strings.TrimSpace(raw))
		return IntentUnknown
	}
	return intent
}

func parseIntent(label string) (Intent, bool) {
	switch Intent(strings.ToLower(strings.TrimSpace(label))) {
	case IntentBrowse:
		return IntentBrowse, true
	case IntentManageCart:
		return IntentManageCart, true
	case IntentViewCart:
		return IntentViewCart, true
	case IntentCheckout:
		return IntentCheckout, true
	case IntentOutOfContext:
		return IntentOutOfContext, true
	case IntentExit:
		return IntentExit, true
	case IntentUnknown:
		return IntentUnknown, true
	}
	return IntentUnknown, false
}
