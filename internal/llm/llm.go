// Package llm is the boundary to the language model. The core only depends
// on Client; providers live behind it.
package llm

import (
	"context"
	"errors"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a completion request.
type Message struct {
	Role    string
	Content string
}

// Client performs a single synchronous completion. The core never retries:
// a failed call degrades gracefully at the handler that made it.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

var ErrNoCompletion = errors.New("model returned no completion")

// ErrorKind buckets call failures just enough to pick a user-facing message.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindAuth
	KindRateLimit
)
