// Package embeddingutils is the embeddings utility package
package embeddingutils

import (
	"github.com/kodesword/blograg/pkg/config"
	"github.com/kodesword/blograg/pkg/embeddings"
	"github.com/kodesword/blograg/pkg/embeddings/ollama"
)

// NewEmbedder builds the embedder from config.
func NewEmbedder(cfg config.EmbeddingConfig) (embeddings.Embedder, error) {
	return ollama.NewEmbedder(ollama.EmbedderConfig{
		BaseURL:    cfg.Target,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
	})
}
