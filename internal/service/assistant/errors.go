package assistant

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery is returned for empty or whitespace-only questions. Nothing is sent or recorded.
	ErrInvalidQuery = errors.New("question is required")
	// ErrBusy is returned under PolicyReject while another question is awaiting its answer.
	ErrBusy = errors.New("assistant is busy answering a previous question")
	// ErrMalformedResponse marks a completion response with no candidates, or
	// whose first candidate is empty or whitespace-only.
	ErrMalformedResponse = errors.New("malformed completion response: no usable candidate")
)

// CompletionError wraps any failure of the completion service call: transport
// errors, timeouts and malformed responses (ErrMalformedResponse).
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion service error: %v", e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}
