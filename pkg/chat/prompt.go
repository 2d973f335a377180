package chat

import (
	"fmt"
	"strings"

	"github.com/kodesword/blograg/pkg/vector"
)

// SystemInstruction pins the model to grounded answering.
const SystemInstruction = "You are a helpful AI assistant that answers strictly using the given context."

// NotFoundAnswer is returned when vector search produces no hits; the model
// is never called in that case.
const NotFoundAnswer = "I couldn't find relevant information in the blogs."

const promptTemplate = `You are %s, an AI assistant developed by Kodesword.

Rules:
- Answer ONLY using the provided context
- Be clear and concise
- If the answer is not present, say:
  "I don't know based on the blog."

Context:
%s

Question:
%s

Answer:`

// BuildPrompt assembles the grounded prompt: persona, grounding rules, the
// retrieved chunks joined by blank lines in store order, and the question.
func BuildPrompt(query string, results []vector.SearchResult) string {
	chunks := make([]string, len(results))
	for i, r := range results {
		chunks[i] = r.Text
	}
	context := strings.Join(chunks, "\n\n")

	return fmt.Sprintf(promptTemplate, AssistantName, context, query)
}
