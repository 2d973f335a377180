// Package api provides the HTTP surface of the blog RAG service: job
// enqueueing, embedding deletion, and the chat endpoint.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8090")
	ListenAddr string

	// DefaultTopK is used when a chat request omits top_k.
	DefaultTopK int
}
