package vector

import "errors"

var (
	// ErrUnavailable is returned when the vector store cannot be reached.
	// Callers treat it as transient: indexing jobs stay unacknowledged,
	// queries surface it as retryable.
	ErrUnavailable = errors.New("vector store unavailable")

	// ErrCollectionMissing is returned when the collection does not exist at
	// query time. It means EnsureCollection never ran; a configuration error.
	ErrCollectionMissing = errors.New("collection missing")
)
