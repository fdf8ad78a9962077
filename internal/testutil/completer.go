// Package testutil holds test doubles shared across packages.
package testutil

import (
	"context"
	"sync"

	"github.com/chasingbytes/resume/backend/internal/service/assistant"
)

// Call records one request seen by StubCompleter.
type Call struct {
	Model    string
	Messages []assistant.Message
}

// StubCompleter is an in-memory assistant.Completer. Replies are returned in
// order, the last one repeating; Err, when set, fails every call.
type StubCompleter struct {
	mu      sync.Mutex
	Replies []string
	Err     error
	// Block, when non-nil, makes Complete wait until it is closed or the context ends.
	Block chan struct{}

	calls    []Call
	inFlight int
	maxSeen  int
}

// NewStubCompleter returns a stub that answers with replies.
func NewStubCompleter(replies ...string) *StubCompleter {
	return &StubCompleter{Replies: replies}
}

// Complete implements assistant.Completer.
func (s *StubCompleter) Complete(ctx context.Context, model string, messages []assistant.Message) ([]string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, Call{Model: model, Messages: append([]assistant.Message(nil), messages...)})
	s.inFlight++
	if s.inFlight > s.maxSeen {
		s.maxSeen = s.inFlight
	}
	idx := len(s.calls) - 1
	block := s.Block
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.Replies) == 0 {
		return nil, nil
	}
	if idx >= len(s.Replies) {
		idx = len(s.Replies) - 1
	}
	return []string{s.Replies[idx]}, nil
}

// Calls returns the requests seen so far.
func (s *StubCompleter) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// MaxConcurrent reports the highest number of simultaneous calls observed.
func (s *StubCompleter) MaxConcurrent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxSeen
}
