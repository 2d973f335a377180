package chat_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/kodesword/blograg/pkg/chat"
	testutils "github.com/kodesword/blograg/pkg/utils/test"
	"github.com/kodesword/blograg/pkg/vector"
)

var _ = Describe("Responder", func() {
	var (
		embedder  *testutils.MockEmbedder
		store     *testutils.MockVectorDriver
		completer *testutils.MockCompleter
		responder *chat.Responder
		ctx       context.Context
	)

	BeforeEach(func() {
		embedder = testutils.NewMockEmbedder()
		store = testutils.NewMockVectorDriver()
		completer = testutils.NewMockCompleter("a grounded answer")
		responder = chat.NewResponder(embedder, store, completer, zap.NewNop())
		ctx = context.Background()
	})

	It("answers fast-path queries without search or the model", func() {
		answer, err := responder.Respond(ctx, "who are you", 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(answer.Answer).To(ContainSubstring(chat.AssistantName))
		Expect(answer.Sources).To(BeNil())
		Expect(embedder.Calls).To(BeEmpty())
		Expect(store.SearchCalls).To(BeZero())
		Expect(completer.Calls).To(BeZero())
	})

	It("returns the not-found answer on zero hits without calling the model", func() {
		answer, err := responder.Respond(ctx, "what about goroutines?", 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(answer.Answer).To(Equal(chat.NotFoundAnswer))
		Expect(answer.Sources).To(BeNil())
		Expect(store.SearchCalls).To(Equal(1))
		Expect(completer.Calls).To(BeZero())
	})

	It("grounds the answer in search hits", func() {
		store.Results = []vector.SearchResult{
			{Payload: vector.Payload{DocumentID: "blog-1", Title: "Goroutines", ChunkIndex: 0, Text: "goroutines are cheap"}, Score: 0.9},
			{Payload: vector.Payload{DocumentID: "blog-2", Title: "Channels", ChunkIndex: 3, Text: "channels synchronize"}, Score: 0.8},
		}

		answer, err := responder.Respond(ctx, "what about goroutines?", 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(answer.Question).To(Equal("what about goroutines?"))
		Expect(answer.Answer).To(Equal("a grounded answer"))
		Expect(answer.Sources).To(Equal([]chat.Source{
			{DocumentID: "blog-1", Title: "Goroutines", ChunkIndex: 0},
			{DocumentID: "blog-2", Title: "Channels", ChunkIndex: 3},
		}))
	})

	It("feeds the retrieved chunks and the query into the prompt", func() {
		store.Results = []vector.SearchResult{
			{Payload: vector.Payload{DocumentID: "blog-1", Text: "goroutines are cheap"}},
		}

		_, err := responder.Respond(ctx, "what about goroutines?", 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(completer.Prompts).To(HaveLen(1))
		Expect(completer.Prompts[0]).To(ContainSubstring("goroutines are cheap"))
		Expect(completer.Prompts[0]).To(ContainSubstring("what about goroutines?"))
	})

	It("defaults topK when the caller passes none", func() {
		for i := 0; i < 10; i++ {
			store.Results = append(store.Results, vector.SearchResult{
				Payload: vector.Payload{DocumentID: "blog-1", ChunkIndex: i, Text: "chunk"},
			})
		}

		answer, err := responder.Respond(ctx, "what about goroutines?", 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(answer.Sources).To(HaveLen(chat.DefaultTopK))
	})

	It("surfaces embedding failures", func() {
		embedder.FailOn = "goroutines"

		_, err := responder.Respond(ctx, "what about goroutines?", 5)
		Expect(err).To(HaveOccurred())
		Expect(store.SearchCalls).To(BeZero())
	})

	It("surfaces model failures", func() {
		store.Results = []vector.SearchResult{
			{Payload: vector.Payload{DocumentID: "blog-1", Text: "chunk"}},
		}
		completer.Err = context.DeadlineExceeded

		_, err := responder.Respond(ctx, "what about goroutines?", 5)
		Expect(err).To(HaveOccurred())
	})
})
