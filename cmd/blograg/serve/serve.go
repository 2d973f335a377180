// Package servecmder provides the blograg API server cobra command.
package servecmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kodesword/blograg/api"
	"github.com/kodesword/blograg/pkg/chat"
	"github.com/kodesword/blograg/pkg/config"
	embeddingutils "github.com/kodesword/blograg/pkg/embeddings/utils"
	"github.com/kodesword/blograg/pkg/llm/groq"
	"github.com/kodesword/blograg/pkg/logger"
	"github.com/kodesword/blograg/pkg/queue/kafka"
	vectorutils "github.com/kodesword/blograg/pkg/vector/utils"
)

type serveCommander struct {
	listen string
	logger *zap.Logger
}

const serveLongDesc string = `Run the blograg HTTP API: enqueue indexing jobs, delete blog embeddings, and answer chat queries over the indexed content.`

const serveShortDesc string = "Run the blograg API server"

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
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

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address for the API server to listen on (overrides config)")

	return cmd
}

func (c *serveCommander) run(cfg *config.Config, debug bool) error {
	c.logger = logger.NewLogger(debug)
	defer c.logger.Sync()

	ctx := context.Background()

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

	completer, err := groq.NewCompleter(groq.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
	if err != nil {
		return fmt.Errorf("creating completer: %w", err)
	}
	defer completer.Close()

	publisher, err := kafka.NewPublisher(kafka.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	}, c.logger)
	if err != nil {
		return fmt.Errorf("creating job publisher: %w", err)
	}
	defer publisher.Close()

	responder := chat.NewResponder(embedder, store, completer, c.logger)

	listen := c.listen
	if listen == "" {
		listen = cfg.API.Listen
	}

	server := api.NewServer(api.Config{
		ListenAddr:  listen,
		DefaultTopK: cfg.Chat.TopK,
	}, publisher, store, responder, c.logger)

	// Shut the server down on SIGINT/SIGTERM so deferred teardown runs.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		c.logger.Info("shutting down API server")
		if err := server.Shutdown(); err != nil {
			c.logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	return server.Run()
}
