package config

import "time"

const (
	defaultAPIListen = ":8090"

	defaultBlogBaseURL = "https://kodesword.vercel.app/api/post/getpostbyid"
	defaultBlogTimeout = 10 * time.Second

	defaultKafkaTopic   = "blog.indexing.jobs"
	defaultKafkaGroupID = "embedding-worker"

	defaultQdrantPort       = 6334
	defaultQdrantCollection = "blog_embeddings"

	defaultEmbeddingTarget     = "http://localhost:11434"
	defaultEmbeddingModel      = "all-minilm"
	defaultEmbeddingDimensions = 384

	defaultLLMBaseURL     = "https://api.groq.com/openai/v1"
	defaultLLMModel       = "llama-3.1-8b-instant"
	defaultLLMTemperature = 0.3
	defaultLLMMaxTokens   = 400

	defaultChunkSize      = 500
	defaultChunkOverlap   = 50
	defaultMinChunkLength = 50

	defaultChatTopK = 5
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Blog: BlogConfig{
			BaseURL: defaultBlogBaseURL,
			Timeout: defaultBlogTimeout,
		},
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   defaultKafkaTopic,
			GroupID: defaultKafkaGroupID,
		},
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       defaultQdrantPort,
			Collection: defaultQdrantCollection,
		},
		Embedding: EmbeddingConfig{
			Target:     defaultEmbeddingTarget,
			Model:      defaultEmbeddingModel,
			Dimensions: defaultEmbeddingDimensions,
		},
		LLM: LLMConfig{
			BaseURL:     defaultLLMBaseURL,
			Model:       defaultLLMModel,
			Temperature: defaultLLMTemperature,
			MaxTokens:   defaultLLMMaxTokens,
		},
		Indexer: IndexerConfig{
			ChunkSize:      defaultChunkSize,
			ChunkOverlap:   defaultChunkOverlap,
			MinChunkLength: defaultMinChunkLength,
		},
		Chat: ChatConfig{
			TopK: defaultChatTopK,
		},
	}
}
