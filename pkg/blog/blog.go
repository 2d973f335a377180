// Package blog provides read-only access to the upstream blog content API.
// The blog system owns the documents; this package only fetches them by id.
package blog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"context"
)

// Document is one blog article as served by the upstream API.
type Document struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Tags        string `json:"tag"`
	ContentHTML string `json:"content"`
}

// Fetcher retrieves documents from a content source.
type Fetcher interface {
	// FetchDocument retrieves the current version of a document by id.
	// Returns ErrNotFound when the upstream does not know the id.
	FetchDocument(ctx context.Context, id string) (*Document, error)
}

// Client is an HTTP Fetcher against the blog REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientConfig holds configuration for the blog API client.
type ClientConfig struct {
	// BaseURL is the get-post-by-id endpoint; the document id is appended
	// as a path segment.
	BaseURL string

	// Timeout bounds each fetch. Defaults to 10s if zero.
	Timeout time.Duration
}

// NewClient creates a blog API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("blog base URL is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// postResponse is the upstream response envelope.
type postResponse struct {
	PostByID *Document `json:"postbyid"`
}

// FetchDocument retrieves the current version of a document by id.
func (c *Client) FetchDocument(ctx context.Context, id string) (*Document, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating fetch request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching document %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetching document %s: status %d: %s", id, resp.StatusCode, string(body))
	}

	var post postResponse
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return nil, fmt.Errorf("decoding document %s: %w", id, err)
	}

	if post.PostByID == nil {
		return nil, fmt.Errorf("document %s: %w", id, ErrMalformedResponse)
	}

	doc := post.PostByID
	if doc.ID == "" {
		doc.ID = id
	}

	return doc, nil
}

// Ensure Client implements Fetcher
var _ Fetcher = (*Client)(nil)
