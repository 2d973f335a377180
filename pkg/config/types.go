// Package config holds the typed configuration for the blograg services.
// Values are loaded via viper from config.toml and BLOGRAG_-prefixed
// environment variables; defaults.go is the single source of truth for
// default values.
package config

import (
	"fmt"
	"time"
)

// Config is the full configuration shared by the API server and the
// indexing worker. The TOML layout uses sections for logical grouping.
type Config struct {
	Debug     bool            `mapstructure:"debug"`
	API       APIConfig       `mapstructure:"api"`
	Blog      BlogConfig      `mapstructure:"blog"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Qdrant    QdrantConfig    `mapstructure:"qdrant"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Indexer   IndexerConfig   `mapstructure:"indexer"`
	Chat      ChatConfig      `mapstructure:"chat"`
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Listen string `mapstructure:"listen"`
}

// BlogConfig holds settings for the upstream blog content API.
type BlogConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// KafkaConfig holds settings for the durable job queue.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"group_id"`
}

// QdrantConfig holds vector store connection settings.
type QdrantConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	APIKey     string `mapstructure:"api_key"`
	UseTLS     bool   `mapstructure:"use_tls"`
	Collection string `mapstructure:"collection"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Target     string `mapstructure:"target"`
	Model      string `mapstructure:"model"`
	Dimensions uint   `mapstructure:"dimensions"`
}

// LLMConfig holds settings for the answer-composition model.
type LLMConfig struct {
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// IndexerConfig holds chunking and job-processing settings.
type IndexerConfig struct {
	ChunkSize      int `mapstructure:"chunk_size"`
	ChunkOverlap   int `mapstructure:"chunk_overlap"`
	MinChunkLength int `mapstructure:"min_chunk_length"`

	// Strict fails the whole job when a single chunk cannot be embedded or
	// stored, leaving it unacknowledged for redelivery. When false, failed
	// chunks are logged and skipped and the job still completes.
	Strict bool `mapstructure:"strict"`
}

// ChatConfig holds retrieval settings for the chat endpoint.
type ChatConfig struct {
	TopK int `mapstructure:"top_k"`
}

// Validate checks settings that must be rejected at startup rather than
// surfacing mid-job.
func (c *Config) Validate() error {
	if c.Indexer.ChunkSize <= 0 {
		return fmt.Errorf("indexer.chunk_size must be positive, got %d", c.Indexer.ChunkSize)
	}
	if c.Indexer.ChunkOverlap < 0 {
		return fmt.Errorf("indexer.chunk_overlap must not be negative, got %d", c.Indexer.ChunkOverlap)
	}
	if c.Indexer.ChunkOverlap >= c.Indexer.ChunkSize {
		return fmt.Errorf("indexer.chunk_overlap (%d) must be smaller than indexer.chunk_size (%d)",
			c.Indexer.ChunkOverlap, c.Indexer.ChunkSize)
	}
	if c.Indexer.MinChunkLength < 0 {
		return fmt.Errorf("indexer.min_chunk_length must not be negative, got %d", c.Indexer.MinChunkLength)
	}
	if c.Embedding.Dimensions == 0 {
		return fmt.Errorf("embedding.dimensions must be positive")
	}
	if c.Blog.BaseURL == "" {
		return fmt.Errorf("blog.base_url is required")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required")
	}
	if c.Qdrant.Host == "" {
		return fmt.Errorf("qdrant.host is required")
	}
	return nil
}
