// Package groq implements pkg/llm's Completer against Groq's
// OpenAI-compatible chat completions API.
package groq

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kodesword/blograg/pkg/llm"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// DefaultModel is the default completion model.
	DefaultModel = "llama-3.1-8b-instant"

	// DefaultTemperature keeps answers deterministic-leaning.
	DefaultTemperature = 0.3

	// DefaultMaxTokens bounds the answer length.
	DefaultMaxTokens = 400

	defaultMaxRetries = 3
	defaultRetryDelay = 2 * time.Second
)

// Completer wraps the Groq chat completions API.
type Completer struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	maxRetries  int
	retryDelay  time.Duration
}

// Config holds configuration for the Groq completer.
type Config struct {
	// APIKey authenticates against Groq. Required.
	APIKey string

	// BaseURL defaults to DefaultBaseURL; override to point at any
	// OpenAI-compatible endpoint.
	BaseURL string

	// Model defaults to DefaultModel if empty.
	Model string

	// Temperature defaults to DefaultTemperature if zero.
	Temperature float32

	// MaxTokens defaults to DefaultMaxTokens if zero.
	MaxTokens int
}

// NewCompleter creates a Groq completer.
func NewCompleter(c Config) (*Completer, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := c.Model
	if model == "" {
		model = DefaultModel
	}
	temperature := c.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}
	maxTokens := c.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	cfg := openai.DefaultConfig(c.APIKey)
	cfg.BaseURL = baseURL

	return &Completer{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		maxRetries:  defaultMaxRetries,
		retryDelay:  defaultRetryDelay,
	}, nil
}

// Complete obtains one completion, retrying transient failures with
// exponential backoff.
func (c *Completer) Complete(ctx context.Context, system, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	var lastErr error
	delay := c.retryDelay

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err != nil {
			lastErr = err
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("no choices returned")
			continue
		}

		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}

	return "", fmt.Errorf("%w: after %d attempts: %v", llm.ErrCompletion, c.maxRetries+1, lastErr)
}

// Close releases resources held by the completer.
func (c *Completer) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}

// Ensure Completer implements llm.Completer
var _ llm.Completer = (*Completer)(nil)
