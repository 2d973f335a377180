package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kodesword/blograg/pkg/queue"
	"github.com/kodesword/blograg/pkg/vector"
)

// indexRequest is the body for index and reindex calls.
type indexRequest struct {
	BlogID string `json:"blog_id"`
}

// chatRequest is the body for chat calls.
type chatRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// jobResponse confirms an enqueued or completed mutation.
type jobResponse struct {
	Message string `json:"message"`
	BlogID  string `json:"blog_id"`
}

// errorResponse carries a typed error outward.
type errorResponse struct {
	Error string `json:"error"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleIndexBlog enqueues an indexing job for a newly created blog.
func (s *Server) handleIndexBlog(c *fiber.Ctx) error {
	return s.enqueueIndex(c, "Blog indexing job queued")
}

// handleReindexBlog enqueues an indexing job for an updated blog. Create and
// update collapse to the same replace semantics in the worker.
func (s *Server) handleReindexBlog(c *fiber.Ctx) error {
	return s.enqueueIndex(c, "Blog re-indexing job queued")
}

func (s *Server) enqueueIndex(c *fiber.Ctx, message string) error {
	var req indexRequest
	if err := c.BodyParser(&req); err != nil || req.BlogID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "blog_id required"})
	}

	job := &queue.Job{DocumentID: req.BlogID, Action: queue.ActionIndex}
	if err := s.publisher.Publish(c.Context(), job); err != nil {
		s.logger.Error("failed to enqueue indexing job",
			zap.String("blog_id", req.BlogID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "failed to queue job"})
	}

	return c.JSON(jobResponse{Message: message, BlogID: req.BlogID})
}

// handleDeleteBlog removes all embeddings for a deleted blog, synchronously.
func (s *Server) handleDeleteBlog(c *fiber.Ctx) error {
	blogID := c.Params("id")
	if blogID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "blog id required"})
	}

	if err := s.store.DeleteByDocument(c.Context(), blogID); err != nil {
		s.logger.Error("failed to delete blog embeddings",
			zap.String("blog_id", blogID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "failed to delete embeddings"})
	}

	return c.JSON(jobResponse{Message: "Blog embeddings deleted", BlogID: blogID})
}

// handleChat answers a question about the indexed blogs.
func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil || req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "query required"})
	}

	topK := req.TopK
	if topK <= 0 {
		topK = s.config.DefaultTopK
	}

	answer, err := s.responder.Respond(c.Context(), req.Query, topK)
	if err != nil {
		s.logger.Error("chat request failed",
			zap.Error(err),
		)
		if errors.Is(err, vector.ErrUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(errorResponse{Error: "search temporarily unavailable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "failed to answer query"})
	}

	return c.JSON(answer)
}
