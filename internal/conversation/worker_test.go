package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ahrie-ai/platform/internal/i18n"
	"github.com/ahrie-ai/platform/internal/telegram"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// stubService returns fixed responses.
type stubService struct {
	resp *Response
	err  error
}

func (s *stubService) StartConversation(ctx context.Context, req StartRequest) (*Response, error) {
	return s.resp, s.err
}

func (s *stubService) ProcessMessage(ctx context.Context, req MessageRequest) (*Response, error) {
	return s.resp, s.err
}

// stubMessenger records outgoing sends.
type stubMessenger struct {
	mu      sync.Mutex
	sent    []telegram.SendMessageRequest
	actions []int64
	done    chan struct{}
}

func newStubMessenger() *stubMessenger {
	return &stubMessenger{done: make(chan struct{}, 8)}
}

func (m *stubMessenger) SendMessage(ctx context.Context, req telegram.SendMessageRequest) (*telegram.Message, error) {
	m.mu.Lock()
	m.sent = append(m.sent, req)
	m.mu.Unlock()
	m.done <- struct{}{}
	return &telegram.Message{MessageID: int64(len(m.sent))}, nil
}

func (m *stubMessenger) SendChatAction(ctx context.Context, chatID int64, action string) error {
	m.mu.Lock()
	m.actions = append(m.actions, chatID)
	m.mu.Unlock()
	return nil
}

func (m *stubMessenger) waitForSend(t *testing.T) telegram.SendMessageRequest {
	t.Helper()
	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for send")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

func TestWorkerDeliversReply(t *testing.T) {
	queue := NewMemoryQueue(8)
	messenger := newStubMessenger()
	svc := &stubService{resp: &Response{
		ConversationID: "conv-1",
		Text:           "🏥 all the details",
		Language:       i18n.Arabic,
		ResponseType:   "medical",
	}}
	worker := NewWorker(svc, queue, messenger, logging.Default(), WithWorkerCount(1))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	pub := NewPublisher(queue, logging.Default())
	if err := pub.EnqueueMessage(ctx, "job-1", MessageRequest{
		ChatID:       42,
		Text:         "rhinoplasty cost?",
		LanguageCode: "ar",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := messenger.waitForSend(t)
	if sent.ChatID != 42 {
		t.Errorf("chat id = %d", sent.ChatID)
	}
	if sent.Text != "🏥 all the details" {
		t.Errorf("text = %q", sent.Text)
	}
	if sent.ParseMode != telegram.ParseModeMarkdown {
		t.Errorf("parse mode = %q", sent.ParseMode)
	}
	if sent.ReplyMarkup == nil {
		t.Error("expected quick actions keyboard")
	}

	messenger.mu.Lock()
	typed := len(messenger.actions) > 0 && messenger.actions[0] == 42
	messenger.mu.Unlock()
	if !typed {
		t.Error("expected typing action before processing")
	}

	cancel()
	worker.Wait()
}

func TestWorkerSendsApologyOnFailure(t *testing.T) {
	queue := NewMemoryQueue(8)
	messenger := newStubMessenger()
	svc := &stubService{err: errors.New("model down")}
	worker := NewWorker(svc, queue, messenger, logging.Default(), WithWorkerCount(1))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	pub := NewPublisher(queue, logging.Default())
	if err := pub.EnqueueMessage(ctx, "job-2", MessageRequest{
		ChatID:       42,
		Text:         "hi",
		LanguageCode: "ar",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := messenger.waitForSend(t)
	if sent.Text != i18n.T("error_message", i18n.Arabic) {
		t.Errorf("expected Arabic apology, got %q", sent.Text)
	}

	cancel()
	worker.Wait()
}

func TestWorkerStartJob(t *testing.T) {
	queue := NewMemoryQueue(8)
	messenger := newStubMessenger()
	svc := &stubService{resp: &Response{
		ConversationID: "conv-1",
		Text:           "welcome!",
		Language:       i18n.English,
		ResponseType:   "coordinator",
	}}
	worker := NewWorker(svc, queue, messenger, logging.Default(), WithWorkerCount(1))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	pub := NewPublisher(queue, logging.Default())
	if err := pub.EnqueueStart(ctx, "job-3", StartRequest{ChatID: 42, FirstName: "Omar"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := messenger.waitForSend(t)
	if !strings.Contains(sent.Text, "welcome") {
		t.Errorf("text = %q", sent.Text)
	}

	cancel()
	worker.Wait()
}

func TestMemoryQueueRoundTrip(t *testing.T) {
	queue := NewMemoryQueue(2)
	ctx := context.Background()

	if err := queue.Send(ctx, "one"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := queue.Send(ctx, "two"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs, err := queue.Receive(ctx, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Body != "one" {
		t.Errorf("unexpected messages: %#v", msgs)
	}
}

func TestMemoryQueueReceiveTimeout(t *testing.T) {
	queue := NewMemoryQueue(1)
	start := time.Now()
	msgs, err := queue.Receive(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msgs != nil {
		t.Errorf("expected no messages, got %#v", msgs)
	}
	if time.Since(start) < 900*time.Millisecond {
		t.Error("receive returned before wait elapsed")
	}
}
