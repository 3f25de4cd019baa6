package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ahrie-ai/platform/internal/i18n"
	"github.com/ahrie-ai/platform/internal/observability/metrics"
	"github.com/ahrie-ai/platform/internal/telegram"
	"github.com/ahrie-ai/platform/pkg/logging"
)

const (
	defaultWorkerCount   = 2
	defaultWaitSeconds   = 2
	defaultBatchSize     = 5
	maxWaitSeconds       = 20
	maxReceiveBatchSize  = 10
	deleteTimeoutSeconds = 5
	receiveErrorBackoff  = time.Second
	maxReceiveBackoff    = 30 * time.Second
)

// ReplyMessenger delivers replies to the visitor's Telegram chat.
type ReplyMessenger interface {
	SendMessage(ctx context.Context, req telegram.SendMessageRequest) (*telegram.Message, error)
	SendChatAction(ctx context.Context, chatID int64, action string) error
}

// Worker consumes conversation jobs from the queue, runs them through
// the engine, and delivers the replies.
type Worker struct {
	processor Service
	queue     Queue
	messenger ReplyMessenger
	jobs      JobUpdater
	metrics   *metrics.Metrics
	logger    *logging.Logger

	cfg workerConfig
	wg  sync.WaitGroup
}

type workerConfig struct {
	workers          int
	receiveWaitSecs  int
	receiveBatchSize int
	jobs             JobUpdater
	metrics          *metrics.Metrics
}

// WorkerOption customizes worker behavior.
type WorkerOption func(*workerConfig)

// WithWorkerCount sets the number of concurrent consumer goroutines.
func WithWorkerCount(count int) WorkerOption {
	return func(cfg *workerConfig) {
		if count > 0 {
			cfg.workers = count
		}
	}
}

// WithReceiveWaitSeconds sets the queue long-poll wait duration.
func WithReceiveWaitSeconds(seconds int) WorkerOption {
	return func(cfg *workerConfig) {
		if seconds < 0 {
			return
		}
		if seconds > maxWaitSeconds {
			seconds = maxWaitSeconds
		}
		cfg.receiveWaitSecs = seconds
	}
}

// WithReceiveBatchSize sets how many messages to fetch per poll.
func WithReceiveBatchSize(size int) WorkerOption {
	return func(cfg *workerConfig) {
		if size <= 0 {
			return
		}
		if size > maxReceiveBatchSize {
			size = maxReceiveBatchSize
		}
		cfg.receiveBatchSize = size
	}
}

// WithJobUpdater enables job status persistence.
func WithJobUpdater(jobs JobUpdater) WorkerOption {
	return func(cfg *workerConfig) {
		cfg.jobs = jobs
	}
}

// WithWorkerMetrics counts delivered replies per language.
func WithWorkerMetrics(m *metrics.Metrics) WorkerOption {
	return func(cfg *workerConfig) {
		cfg.metrics = m
	}
}

// NewWorker wires a queue consumer.
func NewWorker(processor Service, queue Queue, messenger ReplyMessenger, logger *logging.Logger, opts ...WorkerOption) *Worker {
	if processor == nil {
		panic("conversation: processor cannot be nil")
	}
	if queue == nil {
		panic("conversation: queue cannot be nil")
	}
	if messenger == nil {
		panic("conversation: messenger cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}

	cfg := workerConfig{
		workers:          defaultWorkerCount,
		receiveWaitSecs:  defaultWaitSeconds,
		receiveBatchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Worker{
		processor: processor,
		queue:     queue,
		messenger: messenger,
		jobs:      cfg.jobs,
		metrics:   cfg.metrics,
		logger:    logger,
		cfg:       cfg,
	}
}

// Start launches the consumer goroutines. They stop when ctx is
// cancelled; call Wait to block until they drain.
func (w *Worker) Start(ctx context.Context) {
	for i := 0; i < w.cfg.workers; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			w.consume(ctx, id)
		}(i)
	}
	w.logger.Info("conversation workers started", "count", w.cfg.workers)
}

// Wait blocks until all consumer goroutines have exited.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) consume(ctx context.Context, id int) {
	backoff := receiveErrorBackoff
	for {
		if ctx.Err() != nil {
			return
		}
		messages, err := w.queue.Receive(ctx, w.cfg.receiveBatchSize, w.cfg.receiveWaitSecs)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("queue receive failed", "worker", id, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxReceiveBackoff {
				backoff = maxReceiveBackoff
			}
			continue
		}
		backoff = receiveErrorBackoff

		for _, msg := range messages {
			w.handleMessage(ctx, msg)
		}
	}
}

func (w *Worker) handleMessage(ctx context.Context, msg queueMessage) {
	var payload queuePayload
	if err := json.Unmarshal([]byte(msg.Body), &payload); err != nil {
		w.logger.Error("invalid job payload, dropping", "message_id", msg.ID, "error", err)
		w.deleteMessage(msg)
		return
	}

	resp, chatID, lang, err := w.process(ctx, payload)
	if err != nil {
		w.logger.Error("job processing failed", "job_id", payload.ID, "kind", string(payload.Kind), "error", err)
		if w.jobs != nil && payload.TrackStatus {
			if markErr := w.jobs.MarkFailed(ctx, payload.ID, err.Error()); markErr != nil {
				w.logger.Warn("job status update failed", "job_id", payload.ID, "error", markErr)
			}
		}
		w.sendApology(ctx, chatID, lang)
		w.deleteMessage(msg)
		return
	}

	if err := w.deliver(ctx, chatID, resp); err != nil {
		// Leave the message on the queue so delivery is retried.
		w.logger.Error("reply delivery failed", "job_id", payload.ID, "chat_id", chatID, "error", err)
		return
	}

	if w.jobs != nil && payload.TrackStatus {
		if markErr := w.jobs.MarkCompleted(ctx, payload.ID, resp); markErr != nil {
			w.logger.Warn("job status update failed", "job_id", payload.ID, "error", markErr)
		}
	}
	w.deleteMessage(msg)
}

func (w *Worker) process(ctx context.Context, payload queuePayload) (*Response, int64, i18n.Language, error) {
	switch payload.Kind {
	case jobTypeStart:
		lang := i18n.Normalize(payload.Start.LanguageCode)
		resp, err := w.processor.StartConversation(ctx, payload.Start)
		return resp, payload.Start.ChatID, lang, err
	case jobTypeMessage:
		lang := i18n.Normalize(payload.Message.LanguageCode)
		w.showTyping(ctx, payload.Message.ChatID)
		resp, err := w.processor.ProcessMessage(ctx, payload.Message)
		return resp, payload.Message.ChatID, lang, err
	default:
		return nil, 0, i18n.DefaultLanguage, fmt.Errorf("conversation: unknown job kind %q", payload.Kind)
	}
}

func (w *Worker) deliver(ctx context.Context, chatID int64, resp *Response) error {
	if chatID == 0 || resp == nil || resp.Text == "" {
		return nil
	}
	req := telegram.SendMessageRequest{
		ChatID:    chatID,
		Text:      resp.Text,
		ParseMode: telegram.ParseModeMarkdown,
	}
	if resp.ResponseType != "" {
		req.ReplyMarkup = telegram.QuickActionsKeyboard(resp.Language, resp.ResponseType)
	}
	if _, err := w.messenger.SendMessage(ctx, req); err != nil {
		return err
	}
	w.metrics.IncReplySent(string(resp.Language))
	return nil
}

func (w *Worker) showTyping(ctx context.Context, chatID int64) {
	if chatID == 0 {
		return
	}
	if err := w.messenger.SendChatAction(ctx, chatID, telegram.ActionTyping); err != nil {
		w.logger.Debug("typing action failed", "chat_id", chatID, "error", err)
	}
}

func (w *Worker) sendApology(ctx context.Context, chatID int64, lang i18n.Language) {
	if chatID == 0 {
		return
	}
	_, err := w.messenger.SendMessage(ctx, telegram.SendMessageRequest{
		ChatID: chatID,
		Text:   i18n.T("error_message", lang),
	})
	if err != nil {
		w.logger.Warn("apology delivery failed", "chat_id", chatID, "error", err)
	}
}

// deleteMessage acknowledges the queue message with its own timeout so
// shutdown does not strand in-flight deletes.
func (w *Worker) deleteMessage(msg queueMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), deleteTimeoutSeconds*time.Second)
	defer cancel()
	if err := w.queue.Delete(ctx, msg.ReceiptHandle); err != nil {
		w.logger.Warn("queue delete failed", "message_id", msg.ID, "error", err)
	}
}
