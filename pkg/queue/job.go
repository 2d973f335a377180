// Package queue defines the durable indexing job queue: the job payload and
// the producer/consumer contracts, with backends in subpackages.
package queue

import (
	"encoding/json"
	"fmt"
)

// Action tells the worker what to do with a document.
type Action string

const (
	// ActionIndex replaces the stored embeddings with ones built from the
	// current upstream content. Create and update collapse to this.
	ActionIndex Action = "index"

	// ActionDelete removes all stored embeddings for the document.
	ActionDelete Action = "delete"
)

// Job is a request to (re)index or delete one document. The payload carries
// only the document identity; the worker always re-fetches current content
// so redelivered jobs reflect the upstream state at processing time.
type Job struct {
	DocumentID string `json:"blog_id"`
	Action     Action `json:"action"`
}

// Validate checks the decoded payload.
func (j *Job) Validate() error {
	if j.DocumentID == "" {
		return fmt.Errorf("job missing document id")
	}
	switch j.Action {
	case ActionIndex, ActionDelete:
		return nil
	default:
		return fmt.Errorf("unknown job action %q", j.Action)
	}
}

// Encode serializes the job for the wire.
func (j *Job) Encode() ([]byte, error) {
	return json.Marshal(j)
}

// DecodeJob parses a wire payload into a validated Job. A bare document id
// (the original producer format) is accepted as an index job.
func DecodeJob(data []byte) (*Job, error) {
	var j Job
	if err := json.Unmarshal(data, &j); err != nil {
		// Legacy payloads are the raw document id, not JSON.
		j = Job{DocumentID: string(data), Action: ActionIndex}
	}
	if j.Action == "" {
		j.Action = ActionIndex
	}
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return &j, nil
}
