package indexer_test

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/kodesword/blograg/pkg/blog"
	"github.com/kodesword/blograg/pkg/indexer"
	"github.com/kodesword/blograg/pkg/queue"
	testutils "github.com/kodesword/blograg/pkg/utils/test"
)

var _ = Describe("NewOrchestrator", func() {
	var (
		fetcher  *testutils.MockFetcher
		embedder *testutils.MockEmbedder
		store    *testutils.MockVectorDriver
	)

	BeforeEach(func() {
		fetcher = testutils.NewMockFetcher()
		embedder = testutils.NewMockEmbedder()
		store = testutils.NewMockVectorDriver()
	})

	It("fills in default chunk settings", func() {
		_, err := indexer.NewOrchestrator(indexer.Config{}, fetcher, embedder, store, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects an overlap equal to the chunk size", func() {
		cfg := indexer.Config{ChunkSize: 100, ChunkOverlap: 100}
		_, err := indexer.NewOrchestrator(cfg, fetcher, embedder, store, zap.NewNop())
		Expect(err).To(HaveOccurred())
	})

	It("rejects an overlap larger than the chunk size", func() {
		cfg := indexer.Config{ChunkSize: 100, ChunkOverlap: 150}
		_, err := indexer.NewOrchestrator(cfg, fetcher, embedder, store, zap.NewNop())
		Expect(err).To(HaveOccurred())
	})

	It("rejects a negative chunk size", func() {
		cfg := indexer.Config{ChunkSize: -1, ChunkOverlap: 0}
		_, err := indexer.NewOrchestrator(cfg, fetcher, embedder, store, zap.NewNop())
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Orchestrator", func() {
	var (
		fetcher  *testutils.MockFetcher
		embedder *testutils.MockEmbedder
		store    *testutils.MockVectorDriver
		config   indexer.Config
		ctx      context.Context
	)

	newOrchestrator := func() *indexer.Orchestrator {
		o, err := indexer.NewOrchestrator(config, fetcher, embedder, store, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())
		return o
	}

	indexJob := func(id string) *queue.Job {
		return &queue.Job{DocumentID: id, Action: queue.ActionIndex}
	}

	BeforeEach(func() {
		fetcher = testutils.NewMockFetcher()
		embedder = testutils.NewMockEmbedder()
		store = testutils.NewMockVectorDriver()
		config = indexer.Config{
			ChunkSize:      500,
			ChunkOverlap:   50,
			MinChunkLength: 1,
		}
		ctx = context.Background()

		fetcher.Documents["blog-1"] = &blog.Document{
			ID:          "internal-1",
			Title:       "Intro",
			Tags:        "go",
			ContentHTML: "<p>Hello world. Hello again.</p>",
		}
	})

	It("stores one record per chunk with the document payload", func() {
		Expect(newOrchestrator().Handle(ctx, indexJob("blog-1"))).To(Succeed())

		records := store.RecordsFor("blog-1")
		Expect(records).To(HaveLen(1))
		Expect(records[0].ID).NotTo(BeEmpty())
		Expect(records[0].Payload.DocumentID).To(Equal("blog-1"))
		Expect(records[0].Payload.ChunkIndex).To(Equal(0))
		Expect(records[0].Payload.Title).To(Equal("Intro"))
		Expect(records[0].Payload.Tags).To(Equal("go"))
		Expect(records[0].Payload.Text).To(ContainSubstring("Hello world."))
	})

	It("keys the payload by the job id, not the upstream internal id", func() {
		Expect(newOrchestrator().Handle(ctx, indexJob("blog-1"))).To(Succeed())
		Expect(store.RecordsFor("internal-1")).To(BeEmpty())
		Expect(store.RecordsFor("blog-1")).NotTo(BeEmpty())
	})

	It("replaces records on re-index instead of accumulating them", func() {
		o := newOrchestrator()
		Expect(o.Handle(ctx, indexJob("blog-1"))).To(Succeed())
		first := store.RecordsFor("blog-1")

		Expect(o.Handle(ctx, indexJob("blog-1"))).To(Succeed())
		second := store.RecordsFor("blog-1")

		Expect(second).To(HaveLen(len(first)))
		Expect(second[0].Payload.Text).To(Equal(first[0].Payload.Text))
		// Vector ids are minted fresh each run.
		Expect(second[0].ID).NotTo(Equal(first[0].ID))
	})

	It("picks up new content on re-index", func() {
		o := newOrchestrator()
		Expect(o.Handle(ctx, indexJob("blog-1"))).To(Succeed())

		fetcher.Documents["blog-1"].ContentHTML = "<p>Rewritten entirely.</p>"
		Expect(o.Handle(ctx, indexJob("blog-1"))).To(Succeed())

		records := store.RecordsFor("blog-1")
		Expect(records).To(HaveLen(1))
		Expect(records[0].Payload.Text).To(ContainSubstring("Rewritten entirely."))
		Expect(records[0].Payload.Text).NotTo(ContainSubstring("Hello world."))
	})

	It("drops chunks shorter than the minimum length but keeps their indices", func() {
		config = indexer.Config{ChunkSize: 20, ChunkOverlap: 5, MinChunkLength: 5}
		fetcher.Documents["blog-2"] = &blog.Document{
			Title:       strings.Repeat("a", 19),
			Subtitle:    strings.Repeat(" ", 19),
			ContentHTML: strings.Repeat("b", 30),
		}

		Expect(newOrchestrator().Handle(ctx, indexJob("blog-2"))).To(Succeed())

		var indices []int
		for _, rec := range store.RecordsFor("blog-2") {
			indices = append(indices, rec.Payload.ChunkIndex)
		}
		// Window 1 lands on the subtitle padding and is dropped; the stored
		// chunk indices keep their original positions.
		Expect(indices).To(ConsistOf(0, 2, 3, 4))
	})

	It("measures the minimum chunk length in characters, not bytes", func() {
		// 30 two-byte runes: 60 bytes, but still under a 50-character floor.
		config.MinChunkLength = 50
		fetcher.Documents["blog-accents"] = &blog.Document{
			ContentHTML: strings.Repeat("é", 30),
		}

		Expect(newOrchestrator().Handle(ctx, indexJob("blog-accents"))).To(Succeed())
		Expect(store.RecordsFor("blog-accents")).To(BeEmpty())
	})

	It("fails the job when the document cannot be fetched", func() {
		err := newOrchestrator().Handle(ctx, indexJob("blog-missing"))
		Expect(err).To(MatchError(blog.ErrNotFound))
		Expect(store.RecordsFor("blog-missing")).To(BeEmpty())
	})

	It("leaves no partial mix when upserts fail mid-replace", func() {
		o := newOrchestrator()
		Expect(o.Handle(ctx, indexJob("blog-1"))).To(Succeed())

		store.FailAfterDelete = true
		Expect(o.Handle(ctx, indexJob("blog-1"))).To(Succeed())

		// Old records were removed first and the fresh ones never landed:
		// transiently unretrievable, never stale-plus-fresh.
		Expect(store.RecordsFor("blog-1")).To(BeEmpty())
	})

	It("skips failed chunks in best-effort mode", func() {
		embedder.FailOn = "Hello"

		Expect(newOrchestrator().Handle(ctx, indexJob("blog-1"))).To(Succeed())
		Expect(store.RecordsFor("blog-1")).To(BeEmpty())
	})

	It("fails the job on a chunk failure in strict mode", func() {
		config.Strict = true
		embedder.FailOn = "Hello"

		err := newOrchestrator().Handle(ctx, indexJob("blog-1"))
		Expect(err).To(HaveOccurred())
	})

	It("removes all records on a delete job", func() {
		o := newOrchestrator()
		Expect(o.Handle(ctx, indexJob("blog-1"))).To(Succeed())
		Expect(store.RecordsFor("blog-1")).NotTo(BeEmpty())

		job := &queue.Job{DocumentID: "blog-1", Action: queue.ActionDelete}
		Expect(o.Handle(ctx, job)).To(Succeed())
		Expect(store.RecordsFor("blog-1")).To(BeEmpty())
	})

	It("acknowledges a delete for a document that was never indexed", func() {
		job := &queue.Job{DocumentID: "blog-unknown", Action: queue.ActionDelete}
		Expect(newOrchestrator().Handle(ctx, job)).To(Succeed())
	})

	It("acknowledges an index job for a document with no significant text", func() {
		config.MinChunkLength = 50
		fetcher.Documents["blog-thin"] = &blog.Document{
			Title:       "Thin",
			ContentHTML: "<p>hi</p>",
		}

		Expect(newOrchestrator().Handle(ctx, indexJob("blog-thin"))).To(Succeed())
		Expect(store.RecordsFor("blog-thin")).To(BeEmpty())
	})
})
