package llm

import "errors"

// ErrCompletion is returned when the language model call fails.
var ErrCompletion = errors.New("completion failed")
