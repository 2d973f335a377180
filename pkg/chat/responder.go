package chat

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kodesword/blograg/pkg/embeddings"
	"github.com/kodesword/blograg/pkg/llm"
	"github.com/kodesword/blograg/pkg/vector"
)

// DefaultTopK is the result count used when the caller passes none.
const DefaultTopK = 5

// Source identifies where part of an answer came from.
type Source struct {
	DocumentID string `json:"blog_id"`
	Title      string `json:"title"`
	ChunkIndex int    `json:"chunk_index"`
}

// Answer is the response to one query. Sources is nil for fast-path and
// not-found answers.
type Answer struct {
	Question string   `json:"question,omitempty"`
	Answer   string   `json:"answer"`
	Sources  []Source `json:"sources,omitempty"`
}

// Responder answers queries. It is stateless per call: concurrent queries
// share nothing but the injected clients.
type Responder struct {
	embedder  embeddings.Embedder
	store     vector.Driver
	completer llm.Completer
	logger    *zap.Logger
}

// NewResponder creates a query responder.
func NewResponder(
	embedder embeddings.Embedder,
	store vector.Driver,
	completer llm.Completer,
	logger *zap.Logger,
) *Responder {
	return &Responder{
		embedder:  embedder,
		store:     store,
		completer: completer,
		logger:    logger,
	}
}

// Respond answers one query. Fast-path categories return their canned
// answer without touching the vector store or the model; retrieval queries
// are embedded, searched, and answered grounded in the hits.
func (r *Responder) Respond(ctx context.Context, query string, topK int) (*Answer, error) {
	if category, canned := Classify(query); category != CategoryRetrieval {
		r.logger.Debug("fast-path answer",
			zap.Int("category", int(category)),
		)
		return &Answer{Answer: canned}, nil
	}

	if topK <= 0 {
		topK = DefaultTopK
	}

	queryVector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := r.store.Search(ctx, queryVector, topK)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	// Zero hits means there is nothing to ground an answer in; calling the
	// model would only invite hallucination.
	if len(results) == 0 {
		return &Answer{Answer: NotFoundAnswer}, nil
	}

	prompt := BuildPrompt(query, results)

	answer, err := r.completer.Complete(ctx, SystemInstruction, prompt)
	if err != nil {
		return nil, fmt.Errorf("composing answer: %w", err)
	}

	sources := make([]Source, len(results))
	for i, res := range results {
		sources[i] = Source{
			DocumentID: res.DocumentID,
			Title:      res.Title,
			ChunkIndex: res.ChunkIndex,
		}
	}

	r.logger.Debug("grounded answer",
		zap.Int("sources", len(sources)),
	)

	return &Answer{
		Question: query,
		Answer:   answer,
		Sources:  sources,
	}, nil
}
