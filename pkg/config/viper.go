package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load creates a configured *viper.Viper and unmarshals it into a Config.
// It sets defaults from NewDefaultConfig(), reads config.toml from configDir
// (or the working directory when empty), and binds environment variables with
// the BLOGRAG_ prefix.
//
// Config precedence (highest to lowest):
//  1. Environment variables (BLOGRAG_KAFKA_BROKERS, BLOGRAG_QDRANT_API_KEY, etc.)
//  2. config.toml file values
//  3. Defaults from NewDefaultConfig()
func Load(configDir string) (*Config, error) {
	v := viper.New()

	setViperDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	} else {
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("BLOGRAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("debug", d.Debug)

	// API
	v.SetDefault("api.listen", d.API.Listen)

	// Blog content API
	v.SetDefault("blog.base_url", d.Blog.BaseURL)
	v.SetDefault("blog.timeout", d.Blog.Timeout)

	// Kafka
	v.SetDefault("kafka.brokers", d.Kafka.Brokers)
	v.SetDefault("kafka.topic", d.Kafka.Topic)
	v.SetDefault("kafka.group_id", d.Kafka.GroupID)

	// Qdrant
	v.SetDefault("qdrant.host", d.Qdrant.Host)
	v.SetDefault("qdrant.port", d.Qdrant.Port)
	v.SetDefault("qdrant.api_key", d.Qdrant.APIKey)
	v.SetDefault("qdrant.use_tls", d.Qdrant.UseTLS)
	v.SetDefault("qdrant.collection", d.Qdrant.Collection)

	// Embedding
	v.SetDefault("embedding.target", d.Embedding.Target)
	v.SetDefault("embedding.model", d.Embedding.Model)
	v.SetDefault("embedding.dimensions", d.Embedding.Dimensions)

	// LLM
	v.SetDefault("llm.base_url", d.LLM.BaseURL)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.temperature", d.LLM.Temperature)
	v.SetDefault("llm.max_tokens", d.LLM.MaxTokens)

	// Indexer
	v.SetDefault("indexer.chunk_size", d.Indexer.ChunkSize)
	v.SetDefault("indexer.chunk_overlap", d.Indexer.ChunkOverlap)
	v.SetDefault("indexer.min_chunk_length", d.Indexer.MinChunkLength)
	v.SetDefault("indexer.strict", d.Indexer.Strict)

	// Chat
	v.SetDefault("chat.top_k", d.Chat.TopK)
}
