package testutils

import (
	"context"
	"fmt"
	"sync"

	"github.com/kodesword/blograg/pkg/vector"
)

// MockVectorDriver is an in-memory vector.Driver for tests. It keeps
// records keyed by id and answers Search from a canned result list.
type MockVectorDriver struct {
	mu      sync.Mutex
	records map[string]vector.Record

	// Results is returned (truncated to topK) by Search.
	Results []vector.SearchResult

	// SearchErr is returned from Search when set.
	SearchErr error

	// DeleteErr is returned from DeleteByDocument when set.
	DeleteErr error

	// FailUpsertOn makes Upsert fail for records of the given document id.
	FailUpsertOn string

	// FailAfterDelete makes the first Upsert after a DeleteByDocument fail,
	// simulating a crash inside the replace window.
	FailAfterDelete bool

	// SearchCalls counts Search invocations.
	SearchCalls int

	deleteArmed bool
}

func NewMockVectorDriver() *MockVectorDriver {
	return &MockVectorDriver{
		records: make(map[string]vector.Record),
	}
}

func (m *MockVectorDriver) EnsureCollection(_ context.Context) error {
	return nil
}

func (m *MockVectorDriver) Upsert(_ context.Context, records []vector.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range records {
		if m.FailUpsertOn != "" && rec.Payload.DocumentID == m.FailUpsertOn {
			return fmt.Errorf("mock upsert failure for document %s", rec.Payload.DocumentID)
		}
		if m.FailAfterDelete && m.deleteArmed {
			return fmt.Errorf("mock upsert failure after delete")
		}
		m.records[rec.ID] = rec
	}
	return nil
}

func (m *MockVectorDriver) DeleteByDocument(_ context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	for id, rec := range m.records {
		if rec.Payload.DocumentID == documentID {
			delete(m.records, id)
		}
	}
	if m.FailAfterDelete {
		m.deleteArmed = true
	}
	return nil
}

func (m *MockVectorDriver) Search(_ context.Context, _ []float32, topK int) ([]vector.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SearchCalls++
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if len(m.Results) < topK {
		return m.Results, nil
	}
	return m.Results[:topK], nil
}

func (m *MockVectorDriver) Close() error {
	return nil
}

// RecordsFor returns the stored records for a document id.
func (m *MockVectorDriver) RecordsFor(documentID string) []vector.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []vector.Record
	for _, rec := range m.records {
		if rec.Payload.DocumentID == documentID {
			out = append(out, rec)
		}
	}
	return out
}

// Ensure MockVectorDriver implements vector.Driver
var _ vector.Driver = (*MockVectorDriver)(nil)
