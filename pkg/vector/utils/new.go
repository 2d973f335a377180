// Package vectorutils is the vector store utility package
package vectorutils

import (
	"go.uber.org/zap"

	"github.com/kodesword/blograg/pkg/config"
	"github.com/kodesword/blograg/pkg/vector"
	"github.com/kodesword/blograg/pkg/vector/qdrant"
)

// NewDriver builds the vector store driver from config. The collection
// schema needs the embedding dimension, which lives outside the store
// section, so it is passed separately.
func NewDriver(cfg config.QdrantConfig, dimensions uint, logger *zap.Logger) (vector.Driver, error) {
	return qdrant.NewDriver(qdrant.Config{
		Host:           cfg.Host,
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		UseTLS:         cfg.UseTLS,
		CollectionName: cfg.Collection,
		Dimensions:     dimensions,
	}, logger)
}
