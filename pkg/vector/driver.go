// Package vector provides interfaces and implementations for the blog
// embedding store.
package vector

import "context"

// Record is one stored embedding with its retrieval payload.
type Record struct {
	// ID is an opaque unique identifier, freshly minted per indexing run.
	ID string

	// Vector is the embedding of Payload.Text.
	Vector []float32

	// Payload carries the retrieval metadata stored alongside the vector.
	Payload Payload
}

// Payload is the metadata stored with every vector. DocumentID links the
// record back to its source article; the rest is copied from the article at
// index time so search results are self-contained.
type Payload struct {
	DocumentID string
	ChunkIndex int
	Text       string
	Title      string
	Tags       string
}

// SearchResult is one similarity hit with its full payload.
type SearchResult struct {
	Payload

	// Score is the cosine similarity (higher = more similar). Order among
	// equal scores is store-defined and must not be relied on.
	Score float32
}

// Driver handles storage and retrieval of blog chunk embeddings.
type Driver interface {
	// EnsureCollection creates the collection and its documentId payload
	// index if absent. Idempotent; safe to call repeatedly and concurrently.
	EnsureCollection(ctx context.Context) error

	// Upsert inserts or replaces records by id. Records for the same
	// document are independent; replacing a document is the orchestrator's
	// delete-then-insert sequence, not an Upsert concern.
	Upsert(ctx context.Context, records []Record) error

	// DeleteByDocument removes every record whose payload documentId
	// matches. Deleting an absent document is a no-op.
	DeleteByDocument(ctx context.Context, documentID string) error

	// Search returns up to topK records ordered by descending similarity.
	Search(ctx context.Context, vector []float32, topK int) ([]SearchResult, error)

	// Close releases any resources held by the driver.
	Close() error
}
