// Package session persists conversation state between turns for hosts that
// do not keep it in process.
package session

import (
	"context"
	"sync"

	"tiendabot/backend/internal/chat"
)

// Store saves and loads conversation state by session id.
type Store interface {
	Get(ctx context.Context, sessionID string) (*chat.ConversationState, bool, error)
	Save(ctx context.Context, state *chat.ConversationState) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore is the in-process fallback store.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*chat.ConversationState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*chat.ConversationState)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*chat.ConversationState, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[sessionID]
	return state, ok, nil
}

func (s *MemoryStore) Save(_ context.Context, state *chat.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.SessionID] = state
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
	return nil
}
