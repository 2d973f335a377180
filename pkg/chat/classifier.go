// Package chat answers questions about the indexed blog content: a phrase
// classifier short-circuits identity/small-talk/help queries, everything
// else goes through retrieval-augmented generation.
package chat

import "strings"

// Category identifies which response path a query takes.
type Category int

const (
	// CategoryRetrieval routes the query through vector search and the LLM.
	CategoryRetrieval Category = iota
	CategoryIdentity
	CategorySmallTalk
	CategoryGeneralHelp
)

const (
	// AssistantName is the assistant persona presented to users.
	AssistantName = "Kas"

	identityAnswer = "I am Kas, an AI assistant developed by Kodesword. " +
		"I help users understand and explore blog content."

	smallTalkAnswer = "Hi! I'm Kas. How can I help you with the blogs?"

	generalHelpAnswer = "I answer questions using the blog content available on this platform. " +
		"Ask me anything related to the blogs."
)

// phraseSet pairs a category and its canned answer with the phrases that
// trigger it. The table is checked in order; first match wins.
type phraseSet struct {
	category Category
	answer   string
	phrases  []string
}

// phraseTable holds the static dispatch rules in priority order:
// identity > small talk > general help.
var phraseTable = []phraseSet{
	{
		category: CategoryIdentity,
		answer:   identityAnswer,
		phrases: []string{
			"who are you", "what is your name", "tell me about yourself",
		},
	},
	{
		category: CategorySmallTalk,
		answer:   smallTalkAnswer,
		phrases: []string{
			"hi", "hello", "hey", "how are you",
			"good morning", "good evening",
		},
	},
	{
		category: CategoryGeneralHelp,
		answer:   generalHelpAnswer,
		phrases: []string{
			"what can you do", "how can you help", "help me",
		},
	},
}

// Classify routes a query: for a matched category it returns the canned
// answer; unmatched queries return CategoryRetrieval with an empty answer.
// Matching is case-insensitive, exact or prefix, against the phrase table.
func Classify(query string) (Category, string) {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, set := range phraseTable {
		for _, phrase := range set.phrases {
			if q == phrase || strings.HasPrefix(q, phrase) {
				return set.category, set.answer
			}
		}
	}

	return CategoryRetrieval, ""
}
