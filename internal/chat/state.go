package chat

import (
	"tiendabot/backend/internal/domain"
	"tiendabot/backend/internal/xid"
)

// Intent is the classified purpose of a user message.
type Intent string

const (
	IntentBrowse       Intent = "browse"
	IntentManageCart   Intent = "manage_cart"
	IntentViewCart     Intent = "view_cart"
	IntentCheckout     Intent = "checkout"
	IntentOutOfContext Intent = "out_of_context"
	IntentExit         Intent = "exit"
	IntentUnknown      Intent = "unknown"
)

// Stage is the coarse phase of the purchase flow.
type Stage string

const (
	StageWelcome   Stage = "welcome"
	StageShopping  Stage = "shopping"
	StageCheckout  Stage = "checkout"
	StageCompleted Stage = "completed"
	StageError     Stage = "error"
)

// PromptHint records what the previous assistant message asked for, set by
// the handler that appended it. The classifier reads it instead of
// re-inferring intent from the transcript text.
type PromptHint string

const (
	HintNone             PromptHint = ""
	HintCheckoutQuestion PromptHint = "checkout_question"
	HintAwaitName        PromptHint = "await_name"
	HintAwaitCity        PromptHint = "await_city"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one transcript entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ProductSummary is the lightweight snapshot of a listed product, kept so
// later "product N" references can be resolved against what the user saw.
type ProductSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
}

// ConversationState is the unit of persistence for one session. It is owned
// by exactly one conversation; nothing is shared across sessions.
type ConversationState struct {
	SessionID         string           `json:"session_id"`
	Messages          []Message        `json:"messages"`
	Cart              *domain.Cart     `json:"cart"`
	CurrentIntent     Intent           `json:"current_intent"`
	Stage             Stage            `json:"stage"`
	LastSearchResults []ProductSummary `json:"last_search_results,omitempty"`
	LastProductID     string           `json:"last_product_id,omitempty"`
	LastPromptHint    PromptHint       `json:"last_prompt_hint,omitempty"`
	CustomerName      string           `json:"customer_name,omitempty"`
	CustomerCity      string           `json:"customer_city,omitempty"`
	Order             *domain.Order    `json:"order,omitempty"`
}

// NewState creates the initial state for a session. An empty sessionID gets
// a generated one.
func NewState(sessionID string) *ConversationState {
	if sessionID == "" {
		sessionID = xid.New("sess")
	}
	return &ConversationState{
		SessionID:     sessionID,
		Cart:          domain.NewCart(),
		CurrentIntent: IntentUnknown,
		Stage:         StageWelcome,
	}
}

func (s *ConversationState) appendUser(text string) {
	s.Messages = append(s.Messages, Message{Role: RoleUser, Content: text})
}

func (s *ConversationState) appendAssistant(text string) {
	s.Messages = append(s.Messages, Message{Role: RoleAssistant, Content: text})
}

// lastAssistantMessage returns the newest assistant entry, or "".
func (s *ConversationState) lastAssistantMessage() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleAssistant {
			return s.Messages[i].Content
		}
	}
	return ""
}

// recentMessages returns up to n of the newest transcript entries.
func (s *ConversationState) recentMessages(n int) []Message {
	if len(s.Messages) <= n {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-n:]
}
