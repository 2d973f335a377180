package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kodesword/blograg/pkg/chat"
	"github.com/kodesword/blograg/pkg/queue"
	"github.com/kodesword/blograg/pkg/vector"
)

// Server is the HTTP server for the blog RAG service.
type Server struct {
	config    Config
	publisher queue.Publisher
	store     vector.Driver
	responder *chat.Responder
	logger    *zap.Logger
	app       *fiber.App
}

// NewServer creates a new API server. The publisher, store, and responder
// are injected so they can be shared with the worker when both run in one
// process.
func NewServer(
	config Config,
	publisher queue.Publisher,
	store vector.Driver,
	responder *chat.Responder,
	logger *zap.Logger,
) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:    config,
		publisher: publisher,
		store:     store,
		responder: responder,
		logger:    logger,
		app:       app,
	}

	app.Get("/health", s.handleHealth)
	app.Post("/index-blog", s.handleIndexBlog)
	app.Post("/reindex-blog", s.handleReindexBlog)
	app.Delete("/delete-blog/:id", s.handleDeleteBlog)
	app.Post("/chat", s.handleChat)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
