package nop

import (
	"context"

	"github.com/kodesword/blograg/pkg/queue"
)

// Publisher is a no-op job publisher used for tests and disabled mode.
type Publisher struct{}

// NewPublisher creates a new no-op job publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish validates input and otherwise does nothing.
func (p *Publisher) Publish(_ context.Context, job *queue.Job) error {
	if job == nil {
		return queue.ErrNilJob
	}

	return job.Validate()
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}
