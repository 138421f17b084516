package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"tiendabot/backend/internal/chat"
	"tiendabot/backend/internal/domain"
)

// RedisStore keeps conversation state in Redis as JSON, with a per-session
// TTL refreshed on every save.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(addr string, password string, db int, ttl time.Duration) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("chat:session:%s", sessionID)
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*chat.ConversationState, bool, error) {
	val, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var state chat.ConversationState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, false, err
	}
	if state.Cart == nil {
		state.Cart = domain.NewCart()
	}
	return &state, true, nil
}

func (s *RedisStore) Save(ctx context.Context, state *chat.ConversationState) error {
	if state == nil {
		return nil
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(state.SessionID), payload, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}
