// Package indexer drives the indexing pipeline for one job at a time:
// fetch the document, normalize and chunk its text, then replace the stored
// embeddings under delete-before-insert ordering.
//
// The orchestrator is the queue.Handler for the worker: returning nil
// acknowledges the job, returning an error leaves it for redelivery. The
// vector store is only mutated inside the replace sequence, so a crash at
// any point leaves either the old record set, no records, or a fresh set,
// never a stale/fresh mix.
package indexer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kodesword/blograg/pkg/blog"
	"github.com/kodesword/blograg/pkg/embeddings"
	"github.com/kodesword/blograg/pkg/queue"
	"github.com/kodesword/blograg/pkg/textproc"
	"github.com/kodesword/blograg/pkg/vector"
)

const (
	// DefaultChunkSize is the chunk window length in characters.
	DefaultChunkSize = 500

	// DefaultChunkOverlap is the number of characters consecutive chunks share.
	DefaultChunkOverlap = 50

	// DefaultMinChunkLength is the minimum trimmed length a chunk must have
	// to be embedded. Shorter fragments (stray whitespace at the tail) are
	// dropped.
	DefaultMinChunkLength = 50
)

// Config holds chunking and failure-policy settings for the orchestrator.
type Config struct {
	ChunkSize      int
	ChunkOverlap   int
	MinChunkLength int

	// Strict fails the whole job when a single chunk cannot be embedded or
	// stored. When false (the default), failed chunks are logged and
	// skipped and the job still acknowledges; the document stays
	// under-indexed until the next re-index.
	Strict bool
}

// Orchestrator runs the per-job indexing state machine.
type Orchestrator struct {
	config   Config
	fetcher  blog.Fetcher
	embedder embeddings.Embedder
	store    vector.Driver
	logger   *zap.Logger

	// locks serializes jobs per document id so interleaved replace
	// sequences cannot leave a mixed-version record set. Kafka's per-key
	// partitioning already orders jobs for one document within a group;
	// this guards deployments where that guarantee does not hold. Entries
	// are never evicted: one mutex per document id seen, which stays small
	// at blog-catalog cardinality.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewOrchestrator creates an indexing orchestrator. Chunk settings fall back
// to the package defaults when zero; an overlap not smaller than the window
// is a configuration error.
func NewOrchestrator(
	config Config,
	fetcher blog.Fetcher,
	embedder embeddings.Embedder,
	store vector.Driver,
	logger *zap.Logger,
) (*Orchestrator, error) {
	if config.ChunkSize == 0 {
		config.ChunkSize = DefaultChunkSize
	}
	if config.ChunkOverlap == 0 {
		config.ChunkOverlap = DefaultChunkOverlap
	}
	if config.MinChunkLength == 0 {
		config.MinChunkLength = DefaultMinChunkLength
	}

	if config.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", config.ChunkSize)
	}
	if config.ChunkOverlap < 0 || config.ChunkOverlap >= config.ChunkSize {
		return nil, fmt.Errorf("chunk overlap must be in [0, size), got overlap=%d size=%d",
			config.ChunkOverlap, config.ChunkSize)
	}

	return &Orchestrator{
		config:   config,
		fetcher:  fetcher,
		embedder: embedder,
		store:    store,
		logger:   logger,
		locks:    make(map[string]*sync.Mutex),
	}, nil
}

// Handle processes one delivered job. It is the queue.Handler for the
// worker consumer.
func (o *Orchestrator) Handle(ctx context.Context, job *queue.Job) error {
	lock := o.documentLock(job.DocumentID)
	lock.Lock()
	defer lock.Unlock()

	switch job.Action {
	case queue.ActionDelete:
		return o.deleteDocument(ctx, job.DocumentID)
	default:
		return o.indexDocument(ctx, job.DocumentID)
	}
}

// indexDocument runs the replace sequence for one document.
func (o *Orchestrator) indexDocument(ctx context.Context, documentID string) error {
	doc, err := o.fetcher.FetchDocument(ctx, documentID)
	if err != nil {
		// No vector store mutation has happened yet; nothing to clean up.
		return fmt.Errorf("fetching document %s: %w", documentID, err)
	}

	chunks, err := o.chunkDocument(doc)
	if err != nil {
		return fmt.Errorf("chunking document %s: %w", documentID, err)
	}

	o.logger.Info("indexing document",
		zap.String("document_id", documentID),
		zap.Int("chunks", len(chunks)),
	)

	// Old records go first so stale and fresh chunks never coexist. The
	// document is briefly unretrievable; preferable to duplicate or
	// contradictory hits. Deleting an empty set is a no-op, and vector ids
	// are freshly minted each run, so a redelivered job re-runs cleanly.
	if err := o.store.DeleteByDocument(ctx, documentID); err != nil {
		return fmt.Errorf("deleting old records for document %s: %w", documentID, err)
	}

	stored := 0
	for idx, chunk := range chunks {
		// Counted in characters to match the chunk window units.
		if utf8.RuneCountInString(strings.TrimSpace(chunk)) < o.config.MinChunkLength {
			continue
		}

		if err := o.storeChunk(ctx, documentID, doc, idx, chunk); err != nil {
			if o.config.Strict {
				return fmt.Errorf("storing chunk %d of document %s: %w", idx, documentID, err)
			}
			o.logger.Warn("skipping failed chunk",
				zap.String("document_id", documentID),
				zap.Int("chunk_index", idx),
				zap.Error(err),
			)
			continue
		}
		stored++
	}

	o.logger.Info("document indexed",
		zap.String("document_id", documentID),
		zap.Int("stored", stored),
		zap.Int("skipped", len(chunks)-stored),
	)

	return nil
}

// deleteDocument handles an explicit removal job.
func (o *Orchestrator) deleteDocument(ctx context.Context, documentID string) error {
	if err := o.store.DeleteByDocument(ctx, documentID); err != nil {
		return fmt.Errorf("deleting records for document %s: %w", documentID, err)
	}

	o.logger.Info("document deleted",
		zap.String("document_id", documentID),
	)

	return nil
}

// chunkDocument builds the chunking input (title, subtitle, normalized body,
// newline-separated in that order) and segments it.
func (o *Orchestrator) chunkDocument(doc *blog.Document) ([]string, error) {
	text := doc.Title + "\n" + doc.Subtitle + "\n" + textproc.Normalize(doc.ContentHTML)
	return textproc.Chunk(text, o.config.ChunkSize, o.config.ChunkOverlap)
}

// storeChunk embeds one chunk and upserts it under a freshly minted id.
// The payload documentID is the job's id, which is also the deletion key;
// the upstream document may carry a different internal id.
func (o *Orchestrator) storeChunk(ctx context.Context, documentID string, doc *blog.Document, idx int, chunk string) error {
	embedding, err := o.embedder.Embed(ctx, chunk)
	if err != nil {
		return fmt.Errorf("embedding: %w", err)
	}

	rec := vector.Record{
		ID:     uuid.NewString(),
		Vector: embedding,
		Payload: vector.Payload{
			DocumentID: documentID,
			ChunkIndex: idx,
			Text:       chunk,
			Title:      doc.Title,
			Tags:       doc.Tags,
		},
	}

	if err := o.store.Upsert(ctx, []vector.Record{rec}); err != nil {
		return fmt.Errorf("upserting: %w", err)
	}

	return nil
}

// documentLock returns the mutex for a document id, creating it on first use.
func (o *Orchestrator) documentLock(documentID string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()

	lock, ok := o.locks[documentID]
	if !ok {
		lock = &sync.Mutex{}
		o.locks[documentID] = lock
	}
	return lock
}
