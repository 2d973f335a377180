// Package kafka implements the job queue contracts over Apache Kafka.
//
// Jobs are keyed by document id with a hash balancer, so all jobs for one
// document land on the same partition and arrive in order. The consumer
// commits offsets only after the handler succeeds, giving at-least-once
// delivery: a crash mid-job leaves the offset uncommitted and the job is
// redelivered on restart.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/kodesword/blograg/pkg/queue"
)

// DefaultTopic is the default topic for indexing jobs.
const DefaultTopic = "blog.indexing.jobs"

// Config holds connection settings shared by publisher and consumer.
type Config struct {
	// Brokers is the list of bootstrap broker addresses.
	Brokers []string

	// Topic defaults to DefaultTopic if empty.
	Topic string

	// GroupID identifies the consumer group (consumer only).
	GroupID string
}

func (c *Config) topic() string {
	if c.Topic == "" {
		return DefaultTopic
	}
	return c.Topic
}

// Publisher writes indexing jobs to the topic.
type Publisher struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewPublisher creates a Kafka job publisher.
func NewPublisher(c Config, logger *zap.Logger) (*Publisher, error) {
	if len(c.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(c.Brokers...),
		Topic:        c.topic(),
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Publisher{
		writer: writer,
		logger: logger,
	}, nil
}

// Publish enqueues one job, keyed by document id.
func (p *Publisher) Publish(ctx context.Context, job *queue.Job) error {
	if job == nil {
		return queue.ErrNilJob
	}
	if err := job.Validate(); err != nil {
		return err
	}

	value, err := job.Encode()
	if err != nil {
		return fmt.Errorf("encoding job: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(job.DocumentID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("publishing job for document %s: %w", job.DocumentID, err)
	}

	p.logger.Debug("job published",
		zap.String("document_id", job.DocumentID),
		zap.String("action", string(job.Action)),
	)

	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// messageReader is the slice of kafka-go's Reader the consumer uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Consumer reads jobs from the topic within a consumer group.
type Consumer struct {
	reader messageReader
	logger *zap.Logger
}

// NewConsumer creates a Kafka job consumer. Each Consumer is one worker
// slot: it processes one job at a time and commits per message.
func NewConsumer(c Config, logger *zap.Logger) (*Consumer, error) {
	if len(c.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	if c.GroupID == "" {
		return nil, fmt.Errorf("kafka consumer group id is required")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: c.Brokers,
		Topic:   c.topic(),
		GroupID: c.GroupID,
	})

	return &Consumer{
		reader: reader,
		logger: logger,
	}, nil
}

// Run fetches jobs and hands them to the handler until ctx is cancelled.
// The offset is committed only when the handler returns nil. A failed job
// aborts the loop with an error instead of being skipped: committing any
// later offset would implicitly acknowledge the failed one.
//
// After a failure the caller must Close this consumer and build a fresh one
// before retrying. The reader keeps its fetch position in memory, so calling
// Run again on the same consumer would fetch the message after the failed
// one and eventually commit past it; rejoining the group resumes from the
// last committed offset and redelivers the failed job. A persistently
// failing job therefore blocks its partition until it succeeds or its
// payload is removed.
func (c *Consumer) Run(ctx context.Context, handler queue.Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("fetching job: %w", err)
		}

		job, err := queue.DecodeJob(msg.Value)
		if err != nil {
			// A malformed payload can never succeed; commit it so it does
			// not wedge the partition.
			c.logger.Error("dropping undecodable job",
				zap.ByteString("payload", msg.Value),
				zap.Error(err),
			)
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				return fmt.Errorf("committing poison message: %w", err)
			}
			continue
		}

		if err := handler(ctx, job); err != nil {
			c.logger.Error("job failed, left unacknowledged",
				zap.String("document_id", job.DocumentID),
				zap.String("action", string(job.Action)),
				zap.Error(err),
			)
			return fmt.Errorf("job for document %s failed: %w", job.DocumentID, err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("acknowledging job for document %s: %w", job.DocumentID, err)
		}

		c.logger.Debug("job acknowledged",
			zap.String("document_id", job.DocumentID),
			zap.String("action", string(job.Action)),
		)
	}
}

// Close closes the reader, releasing its group membership.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

// Ensure implementations satisfy the queue contracts
var (
	_ queue.Publisher = (*Publisher)(nil)
	_ queue.Consumer  = (*Consumer)(nil)
)
