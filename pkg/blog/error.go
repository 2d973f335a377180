package blog

import "errors"

var (
	// ErrNotFound is returned when the upstream API does not know the document id.
	ErrNotFound = errors.New("document not found")

	// ErrMalformedResponse is returned when the upstream response is missing
	// the expected post envelope.
	ErrMalformedResponse = errors.New("malformed blog API response")
)
