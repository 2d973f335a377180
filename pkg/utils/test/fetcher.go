package testutils

import (
	"context"
	"fmt"

	"github.com/kodesword/blograg/pkg/blog"
)

// MockFetcher is a test blog.Fetcher serving documents from a map.
type MockFetcher struct {
	Documents map[string]*blog.Document

	// Err is returned for every fetch when set.
	Err error
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		Documents: make(map[string]*blog.Document),
	}
}

func (m *MockFetcher) FetchDocument(_ context.Context, id string) (*blog.Document, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	doc, ok := m.Documents[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, blog.ErrNotFound)
	}
	return doc, nil
}

// Ensure MockFetcher implements blog.Fetcher
var _ blog.Fetcher = (*MockFetcher)(nil)
