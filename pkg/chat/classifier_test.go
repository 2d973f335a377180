package chat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kodesword/blograg/pkg/chat"
)

var _ = Describe("Classify", func() {
	It("routes identity questions to the identity answer", func() {
		category, answer := chat.Classify("who are you")
		Expect(category).To(Equal(chat.CategoryIdentity))
		Expect(answer).To(ContainSubstring(chat.AssistantName))
	})

	It("routes greetings to small talk", func() {
		category, answer := chat.Classify("hello")
		Expect(category).To(Equal(chat.CategorySmallTalk))
		Expect(answer).NotTo(BeEmpty())
	})

	It("routes capability questions to general help", func() {
		category, answer := chat.Classify("what can you do")
		Expect(category).To(Equal(chat.CategoryGeneralHelp))
		Expect(answer).NotTo(BeEmpty())
	})

	It("matches case-insensitively", func() {
		category, _ := chat.Classify("WHO ARE YOU")
		Expect(category).To(Equal(chat.CategoryIdentity))
	})

	It("ignores surrounding whitespace", func() {
		category, _ := chat.Classify("  hi  ")
		Expect(category).To(Equal(chat.CategorySmallTalk))
	})

	It("matches on phrase prefix", func() {
		category, _ := chat.Classify("hello there, got a minute?")
		Expect(category).To(Equal(chat.CategorySmallTalk))
	})

	It("prefers identity over small talk for ambiguous prefixes", func() {
		// "who are you" sits in the identity set; small talk never sees it.
		category, _ := chat.Classify("who are you exactly")
		Expect(category).To(Equal(chat.CategoryIdentity))
	})

	It("routes everything else to retrieval with no canned answer", func() {
		category, answer := chat.Classify("what does the blog say about goroutines?")
		Expect(category).To(Equal(chat.CategoryRetrieval))
		Expect(answer).To(BeEmpty())
	})
})
