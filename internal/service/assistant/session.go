// Package assistant answers ad hoc questions about the page owner and keeps
// the per-session question/answer history.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/chasingbytes/resume/backend/internal/model/chat"
)

// Message roles understood by the completion service.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// DefaultTimeout bounds a single completion call when Options.Timeout is unset.
const DefaultTimeout = 30 * time.Second

// Message is one (role, content) pair of a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer is the completion service boundary. It returns one or more
// candidate replies; only the first one is used.
type Completer interface {
	Complete(ctx context.Context, model string, messages []Message) ([]string, error)
}

// Policy decides what happens to a question submitted while another one is in flight.
type Policy string

const (
	// PolicyQueue makes the second question wait for the first to finish.
	PolicyQueue Policy = "queue"
	// PolicyReject fails the second question with ErrBusy.
	PolicyReject Policy = "reject"
)

// ParsePolicy maps a configuration value onto a Policy. Empty means PolicyQueue.
func ParsePolicy(raw string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PolicyQueue:
		return PolicyQueue, nil
	case PolicyReject:
		return PolicyReject, nil
	default:
		return "", fmt.Errorf("unknown concurrency policy %q (want queue or reject)", raw)
	}
}

// Options tunes how a Session talks to the completion service.
type Options struct {
	Model   string
	Timeout time.Duration
	Policy  Policy
}

// Session owns one user's transcript. A session has at most one completion
// call in flight; the slot channel holds a token while Awaiting.
type Session struct {
	id      string
	persona string
	client  Completer
	opts    Options

	slot    chan struct{}
	pending atomic.Int32

	mu      sync.RWMutex
	entries []chat.Entry
}

// NewSession creates an empty session. persona is the fixed system message sent with every question.
func NewSession(id, persona string, client Completer, opts Options) *Session {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Policy == "" {
		opts.Policy = PolicyQueue
	}

	return &Session{
		id:      id,
		persona: persona,
		client:  client,
		opts:    opts,
		slot:    make(chan struct{}, 1),
		entries: make([]chat.Entry, 0, 8),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// SubmitQuery asks the completion service about question and records the
// exchange. The transcript only changes when the call succeeds.
func (s *Session) SubmitQuery(ctx context.Context, question string) (chat.Entry, error) {
	if strings.TrimSpace(question) == "" {
		return chat.Entry{}, ErrInvalidQuery
	}

	s.pending.Add(1)
	defer s.pending.Add(-1)

	if err := s.acquire(ctx); err != nil {
		return chat.Entry{}, err
	}
	defer s.release()

	started := time.Now()
	answer, err := s.complete(ctx, question)
	if err != nil {
		log.WithFields(log.Fields{
			"session": s.id,
			"elapsed": time.Since(started).Round(time.Millisecond),
		}).Warnf("[assistant] completion failed: %v", err)
		return chat.Entry{}, &CompletionError{Err: err}
	}

	entry := chat.Entry{
		Question: question,
		Answer:   answer,
		AskedAt:  started.UTC(),
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	log.Printf("[assistant] answered question for session=%s, length=%d, elapsed=%s", s.id, len(answer), time.Since(started).Round(time.Millisecond))
	return entry, nil
}

// Transcript returns a copy of the recorded entries, most recent first.
func (s *Session) Transcript() []chat.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]chat.Entry, len(s.entries))
	for i, entry := range s.entries {
		out[len(s.entries)-1-i] = entry
	}
	return out
}

// Pending reports how many questions are awaiting an answer or queued behind one.
func (s *Session) Pending() int {
	return int(s.pending.Load())
}

// Len reports how many exchanges have been recorded.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Session) acquire(ctx context.Context) error {
	if s.opts.Policy == PolicyReject {
		select {
		case s.slot <- struct{}{}:
			return nil
		default:
			return ErrBusy
		}
	}

	select {
	case s.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) release() {
	<-s.slot
}

type completion struct {
	candidates []string
	err        error
}

// complete runs the outbound call as a task and waits for it or the timeout,
// whichever comes first.
func (s *Session) complete(ctx context.Context, question string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	messages := []Message{
		{Role: RoleSystem, Content: s.persona},
		{Role: RoleUser, Content: question},
	}

	done := make(chan completion, 1)
	go func() {
		candidates, err := s.client.Complete(callCtx, s.opts.Model, messages)
		done <- completion{candidates: candidates, err: err}
	}()

	select {
	case <-callCtx.Done():
		return "", callCtx.Err()
	case result := <-done:
		if result.err != nil {
			return "", result.err
		}
		if len(result.candidates) == 0 || strings.TrimSpace(result.candidates[0]) == "" {
			return "", ErrMalformedResponse
		}
		return result.candidates[0], nil
	}
}
