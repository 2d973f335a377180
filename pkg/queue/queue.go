package queue

import "context"

// Publisher enqueues indexing jobs onto the durable queue.
type Publisher interface {
	Publish(ctx context.Context, job *Job) error
	Close() error
}

// Handler processes one delivered job. Returning nil acknowledges the job;
// returning an error leaves it unacknowledged so the broker redelivers it.
type Handler func(ctx context.Context, job *Job) error

// Consumer drives at-least-once delivery of jobs to a Handler.
type Consumer interface {
	// Run blocks, delivering jobs to the handler one at a time until ctx is
	// cancelled. Acknowledgement follows the Handler contract.
	Run(ctx context.Context, handler Handler) error
	Close() error
}
