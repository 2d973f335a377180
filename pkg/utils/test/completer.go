package testutils

import (
	"context"

	"github.com/kodesword/blograg/pkg/llm"
)

// MockCompleter is a test llm.Completer returning a fixed answer.
type MockCompleter struct {
	// Answer is returned from every Complete call.
	Answer string

	// Err is returned instead when set.
	Err error

	// Calls counts Complete invocations; Prompts records the user prompts.
	Calls   int
	Prompts []string
}

func NewMockCompleter(answer string) *MockCompleter {
	return &MockCompleter{Answer: answer}
}

func (m *MockCompleter) Complete(_ context.Context, _, prompt string) (string, error) {
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)

	if m.Err != nil {
		return "", m.Err
	}
	return m.Answer, nil
}

func (m *MockCompleter) Close() error {
	return nil
}

// Ensure MockCompleter implements llm.Completer
var _ llm.Completer = (*MockCompleter)(nil)
