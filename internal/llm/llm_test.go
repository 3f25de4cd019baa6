package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/ahrie-ai/platform/pkg/logging"
	openai "github.com/sashabaranov/go-openai"
)

type stubClient struct {
	resp Response
	err  error
	hits int
}

func (s *stubClient) Complete(ctx context.Context, req Request) (Response, error) {
	s.hits++
	return s.resp, s.err
}

func TestFallbackPrimarySucceeds(t *testing.T) {
	primary := &stubClient{resp: Response{Text: "primary"}}
	fallback := &stubClient{resp: Response{Text: "fallback"}}
	client := NewFallbackClient(primary, fallback, logging.Default())

	resp, err := client.Complete(context.Background(), Request{Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "primary" {
		t.Errorf("expected primary response, got %s", resp.Text)
	}
	if fallback.hits != 0 {
		t.Error("fallback should not have been called")
	}
}

func TestFallbackUsedOnPrimaryFailure(t *testing.T) {
	primary := &stubClient{err: errors.New("rate limited")}
	fallback := &stubClient{resp: Response{Text: "fallback"}}
	client := NewFallbackClient(primary, fallback, logging.Default())

	resp, err := client.Complete(context.Background(), Request{Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "fallback" {
		t.Errorf("expected fallback response, got %s", resp.Text)
	}
}

func TestFallbackBothFail(t *testing.T) {
	primary := &stubClient{err: errors.New("primary down")}
	fallback := &stubClient{err: errors.New("fallback down")}
	client := NewFallbackClient(primary, fallback, logging.Default())

	_, err := client.Complete(context.Background(), Request{Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}}})
	if err == nil || err.Error() != "fallback down" {
		t.Errorf("expected fallback error, got %v", err)
	}
}

func TestFallbackNilFallback(t *testing.T) {
	primary := &stubClient{err: errors.New("primary down")}
	client := NewFallbackClient(primary, nil, logging.Default())

	_, err := client.Complete(context.Background(), Request{Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}}})
	if err == nil || err.Error() != "primary down" {
		t.Errorf("expected primary error, got %v", err)
	}
}

type stubChatClient struct {
	gotReq openai.ChatCompletionRequest
	resp   openai.ChatCompletionResponse
	err    error
}

func (s *stubChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.gotReq = req
	return s.resp, s.err
}

func TestOpenAIComplete(t *testing.T) {
	stub := &stubChatClient{
		resp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "  hello there  "}, FinishReason: openai.FinishReasonStop},
			},
			Usage: openai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		},
	}
	client, err := NewOpenAIClient("test-key", "gpt-4o-mini", "", "", WithChatClient(stub))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := client.Complete(context.Background(), Request{
		System:      []string{"You are helpful."},
		Messages:    []ChatMessage{{Role: ChatRoleUser, Content: "hi"}},
		MaxTokens:   256,
		Temperature: 0.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "hello there" {
		t.Errorf("expected trimmed text, got %q", resp.Text)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("expected 15 total tokens, got %d", resp.Usage.TotalTokens)
	}
	if len(stub.gotReq.Messages) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(stub.gotReq.Messages))
	}
	if stub.gotReq.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("expected leading system message, got %s", stub.gotReq.Messages[0].Role)
	}
	if stub.gotReq.MaxTokens != 256 {
		t.Errorf("expected max tokens 256, got %d", stub.gotReq.MaxTokens)
	}
}

func TestOpenAICompleteNoMessages(t *testing.T) {
	client, err := NewOpenAIClient("test-key", "", "", "", WithChatClient(&stubChatClient{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.Complete(context.Background(), Request{}); err == nil {
		t.Error("expected error for empty request")
	}
}

func TestOpenAIRequiresKey(t *testing.T) {
	if _, err := NewOpenAIClient("", "", "", ""); err == nil {
		t.Error("expected error for missing api key")
	}
}

type stubEmbeddingClient struct {
	resp openai.EmbeddingResponse
	err  error
}

func (s *stubEmbeddingClient) CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error) {
	return s.resp, s.err
}

func TestOpenAIEmbed(t *testing.T) {
	stub := &stubEmbeddingClient{
		resp: openai.EmbeddingResponse{
			Data: []openai.Embedding{
				{Embedding: []float32{0.1, 0.2}},
				{Embedding: []float32{0.3, 0.4}},
			},
		},
	}
	client, err := NewOpenAIClient("test-key", "", "", "", WithChatClient(&stubChatClient{}), WithEmbeddingClient(stub))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vecs, err := client.Embed(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vecs) != 2 || vecs[1][1] != 0.4 {
		t.Errorf("unexpected embeddings: %#v", vecs)
	}
}

func TestOpenAIEmbedSizeMismatch(t *testing.T) {
	stub := &stubEmbeddingClient{
		resp: openai.EmbeddingResponse{Data: []openai.Embedding{{Embedding: []float32{0.1}}}},
	}
	client, err := NewOpenAIClient("test-key", "", "", "", WithEmbeddingClient(stub))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.Embed(context.Background(), []string{"a", "b"}); err == nil {
		t.Error("expected size mismatch error")
	}
}
