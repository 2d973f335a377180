package queue

import "errors"

// ErrNilJob indicates a nil job payload was provided to a publisher.
var ErrNilJob = errors.New("nil job")
