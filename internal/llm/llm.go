// Package llm abstracts chat-completion and embedding providers behind
// small interfaces so agents never touch a vendor SDK directly.
package llm

import "context"

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is a provider-neutral message representation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TokenUsage struct {
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

type Request struct {
	Model       string
	System      []string
	Messages    []ChatMessage
	MaxTokens   int32
	Temperature float32
	TopP        float32
}

type Response struct {
	Text       string
	Usage      TokenUsage
	StopReason string
}

// Client is implemented by every completion provider.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// Embedder turns text into vectors for similarity retrieval.
type Embedder interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}
