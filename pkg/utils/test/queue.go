package testutils

import (
	"context"

	"github.com/kodesword/blograg/pkg/queue"
)

// MockPublisher is a test queue.Publisher capturing published jobs.
type MockPublisher struct {
	Jobs []queue.Job

	// Err is returned from Publish when set.
	Err error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(_ context.Context, job *queue.Job) error {
	if job == nil {
		return queue.ErrNilJob
	}
	if m.Err != nil {
		return m.Err
	}
	m.Jobs = append(m.Jobs, *job)
	return nil
}

func (m *MockPublisher) Close() error {
	return nil
}

// Ensure MockPublisher implements queue.Publisher
var _ queue.Publisher = (*MockPublisher)(nil)
