package chat

import (
	"context"
	"encoding/json"
	"log"
	"regexp"
	"strings"
)

const (
	actionAdd    = "add"
	actionRemove = "remove"
	actionUpdate = "update"
)

const (
	refName  = "name"
	refID    = "id"
	refIndex = "index"
	refLast  = "last"
)

// candidateMinSimilarity is looser than the default search cutoff: the
// shortlist grounds the model, so false positives are cheap here.
const (
	candidateMinSimilarity = 0.3
	maxCandidates          = 10
)

// productRef is a structured pointer to a product that still needs resolving
// against current state.
type productRef struct {
	Type  string
	Value string
}

// cartAction is the structured result of extracting a cart operation from
// free text.
type cartAction struct {
	Action   string
	Quantity int
	Ref      productRef
}

// extractCartAction asks the model to turn the user message into a cartAction,
// grounding product references on a fuzzy-matched candidate shortlist. It
// returns (nil, nil) when the model output cannot be decoded; the error is
// non-nil only when the call itself failed.
func (e *Engine) extractCartAction(ctx context.Context, state *ConversationState, userMessage string) (*cartAction, error) {
	lastProductName := ""
	if state.LastProductID != "" {
		if product, ok := e.catalog.GetByID(state.LastProductID); ok {
			lastProductName = product.Name
		}
	}

	var candidates []ProductSummary
	for _, product := range e.catalog.Search(userMessage, candidateMinSimilarity) {
		candidates = append(candidates, ProductSummary{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Category: product.Category,
			Stock:    product.Stock,
		})
		if len(candidates) == maxCandidates {
			break
		}
	}

	raw, err := e.llm.Complete(ctx, extractionMessages(userMessage, lastProductName, state.recentMessages(5), candidates))
	if err != nil {
		return nil, err
	}

	action := decodeCartAction(raw)
	if action == nil {
		log.Printf("[chat] WARN: could not decode cart action from model output")
	}
	return action, nil
}

var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// flexString tolerates the model emitting a bare number where a string is
// expected (common for index references).
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	*s = flexString(strings.TrimSpace(string(data)))
	return nil
}

// decodeCartAction applies the tolerant-decode ladder to raw model output:
// strip markdown fences, extract the first brace-delimited object, decode.
// Any failure yields nil; raw text never escapes this function.
func decodeCartAction(raw string) *cartAction {
	content := strings.TrimSpace(raw)

	if idx := strings.Index(content, "```json"); idx >= 0 {
		content = content[idx+len("```json"):]
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
	} else if idx := strings.Index(content, "```"); idx >= 0 {
		content = content[idx+len("```"):]
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
	}

	if match := jsonObjectRe.FindString(content); match != "" {
		content = match
	}

	var wire struct {
		Action           string `json:"action"`
		Quantity         *int   `json:"quantity"`
		ProductReference struct {
			Type  string     `json:"type"`
			Value flexString `json:"value"`
		} `json:"product_reference"`
	}
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return nil
	}

	action := &cartAction{
		Action:   strings.ToLower(strings.TrimSpace(wire.Action)),
		Quantity: 1,
		Ref: productRef{
			Type:  strings.ToLower(strings.TrimSpace(wire.ProductReference.Type)),
			Value: strings.TrimSpace(string(wire.ProductReference.Value)),
		},
	}
	if wire.Quantity != nil {
		action.Quantity = *wire.Quantity
	}

	switch action.Action {
	case actionAdd, actionRemove, actionUpdate:
	case "":
		action.Action = actionAdd
	default:
		return nil
	}
	if action.Quantity < 0 {
		return nil
	}
	if action.Ref.Type == "" {
		action.Ref.Type = refName
	}
	return action
}
