package llm

import "context"

// Provider defines the interface for chat-completion model backends.
type Provider interface {
	// Chat sends the conversation to the model and returns its reply.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	// Name returns the name of this provider.
	Name() string
}
