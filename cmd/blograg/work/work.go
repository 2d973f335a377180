// Package workcmder provides the blograg indexing worker cobra command.
package workcmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kodesword/blograg/pkg/blog"
	"github.com/kodesword/blograg/pkg/config"
	embeddingutils "github.com/kodesword/blograg/pkg/embeddings/utils"
	"github.com/kodesword/blograg/pkg/indexer"
	"github.com/kodesword/blograg/pkg/logger"
	"github.com/kodesword/blograg/pkg/queue/kafka"
	vectorutils "github.com/kodesword/blograg/pkg/vector/utils"
)

// retryDelay paces consumer restarts after a failed job so a persistently
// failing document does not spin the worker.
const retryDelay = 5 * time.Second

type workCommander struct {
	logger *zap.Logger
}

const workLongDesc string = `Run the blograg indexing worker: consume jobs from the queue, fetch blog content, and replace its embeddings in the vector store.`

const workShortDesc string = "Run the blograg indexing worker"

func NewWorkCmd() *cobra.Command {
	cmder := &workCommander{}

	cmd := &cobra.Command{
		Use:   "work",
		Short: workShortDesc,
		Long:  workLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			debug, err := cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			configDir, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("could not get config flag: %v", err)
			}

			cfg, err := config.Load(configDir)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			return cmder.run(cfg, debug || cfg.Debug)
		},
	}

	return cmd
}

func (c *workCommander) run(cfg *config.Config, debug bool) error {
	c.logger = logger.NewLogger(debug)
	defer c.logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		c.logger.Info("shutting down worker")
		cancel()
	}()

	store, err := vectorutils.NewDriver(cfg.Qdrant, cfg.Embedding.Dimensions, c.logger)
	if err != nil {
		return fmt.Errorf("creating vector store driver: %w", err)
	}
	defer store.Close()

	if err := store.EnsureCollection(ctx); err != nil {
		return fmt.Errorf("ensuring collection: %w", err)
	}

	embedder, err := embeddingutils.NewEmbedder(cfg.Embedding)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	defer embedder.Close()

	fetcher, err := blog.NewClient(blog.ClientConfig{
		BaseURL: cfg.Blog.BaseURL,
		Timeout: cfg.Blog.Timeout,
	})
	if err != nil {
		return fmt.Errorf("creating blog client: %w", err)
	}

	orchestrator, err := indexer.NewOrchestrator(indexer.Config{
		ChunkSize:      cfg.Indexer.ChunkSize,
		ChunkOverlap:   cfg.Indexer.ChunkOverlap,
		MinChunkLength: cfg.Indexer.MinChunkLength,
		Strict:         cfg.Indexer.Strict,
	}, fetcher, embedder, store, c.logger)
	if err != nil {
		return fmt.Errorf("creating orchestrator: %w", err)
	}

	kafkaCfg := kafka.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	}

	c.logger.Info("worker waiting for jobs",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.Topic),
		zap.String("group", cfg.Kafka.GroupID),
	)

	// A failed job aborts the consume loop with its offset uncommitted. The
	// consumer is rebuilt for every run: its reader's in-memory position may
	// sit past the failed job, and only rejoining the group resumes from the
	// last committed offset so the job is redelivered.
	for {
		consumer, err := kafka.NewConsumer(kafkaCfg, c.logger)
		if err != nil {
			return fmt.Errorf("creating job consumer: %w", err)
		}

		runErr := consumer.Run(ctx, orchestrator.Handle)
		if err := consumer.Close(); err != nil {
			c.logger.Warn("closing job consumer",
				zap.Error(err),
			)
		}

		if ctx.Err() != nil {
			return nil
		}
		if runErr != nil {
			c.logger.Error("consumer stopped, restarting",
				zap.Error(runErr),
			)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(retryDelay):
		}
	}
}
