package conversation

import (
	"context"
	"fmt"

	"github.com/ahrie-ai/platform/pkg/logging"
)

// Publisher enqueues conversation jobs for asynchronous processing.
type Publisher struct {
	queue  Queue
	logger *logging.Logger
}

// NewPublisher creates a queue-backed publisher.
func NewPublisher(queue Queue, logger *logging.Logger) *Publisher {
	if queue == nil {
		panic("conversation: queue cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Publisher{
		queue:  queue,
		logger: logger,
	}
}

// EnqueueStart publishes a StartConversation job.
func (p *Publisher) EnqueueStart(ctx context.Context, jobID string, req StartRequest, opts ...PublishOption) error {
	return p.enqueue(ctx, queuePayload{
		ID:          jobID,
		Kind:        jobTypeStart,
		Start:       req,
		TrackStatus: true,
	}, opts...)
}

// EnqueueMessage publishes a ProcessMessage job.
func (p *Publisher) EnqueueMessage(ctx context.Context, jobID string, req MessageRequest, opts ...PublishOption) error {
	return p.enqueue(ctx, queuePayload{
		ID:          jobID,
		Kind:        jobTypeMessage,
		Message:     req,
		TrackStatus: true,
	}, opts...)
}

func (p *Publisher) enqueue(ctx context.Context, payload queuePayload, opts ...PublishOption) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for _, opt := range opts {
		opt(&payload)
	}

	payload, body, err := encodePayload(payload)
	if err != nil {
		return err
	}

	if err := p.queue.Send(ctx, body); err != nil {
		return fmt.Errorf("conversation: failed to enqueue job: %w", err)
	}

	p.logger.Debug("conversation job enqueued", "job_id", payload.ID, "kind", string(payload.Kind))
	return nil
}
