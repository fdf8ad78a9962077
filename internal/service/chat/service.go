package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/chasingbytes/resume/backend/internal/model/chat"
	"github.com/chasingbytes/resume/backend/internal/service/assistant"
)

var ErrSessionNotFound = errors.New("session not found")

type sessionState struct {
	info     chat.Session
	session  *assistant.Session
	lastSeen time.Time
}

// Service owns the assistant sessions of every connected visitor. Each session
// keeps its own transcript; the service only guards the index.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*sessionState

	persona string
	client  assistant.Completer
	opts    assistant.Options
	idleTTL time.Duration
	now     func() time.Time
}

// NewService bootstraps the in-memory session registry. Sessions untouched for
// idleTTL are discarded by Sweep; a non-positive idleTTL disables expiry.
func NewService(persona string, client assistant.Completer, opts assistant.Options, idleTTL time.Duration) *Service {
	return &Service{
		sessions: make(map[string]*sessionState),
		persona:  persona,
		client:   client,
		opts:     opts,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// CreateSession provisions an empty anonymous session.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	now := s.now().UTC()
	info := chat.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
	}

	state := &sessionState{
		info:     info,
		session:  assistant.NewSession(info.ID, s.persona, s.client, s.opts),
		lastSeen: now,
	}

	s.mu.Lock()
	s.sessions[info.ID] = state
	s.mu.Unlock()

	log.Printf("[chat] created session=%s", info.ID)
	return info, nil
}

// GetSession retrieves a live session and marks it as recently used.
func (s *Service) GetSession(_ context.Context, sessionID string) (*assistant.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	state.lastSeen = s.now().UTC()
	return state.session, nil
}

// EndSession discards a session and its transcript.
func (s *Service) EndSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	log.Printf("[chat] ended session=%s", sessionID)
	return nil
}

// Ask submits question to the session's assistant.
func (s *Service) Ask(ctx context.Context, sessionID, question string) (chat.Entry, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return chat.Entry{}, err
	}

	entry, err := session.SubmitQuery(ctx, question)
	s.touch(sessionID)
	return entry, err
}

func (s *Service) touch(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.sessions[sessionID]; ok {
		state.lastSeen = s.now().UTC()
	}
}

// LoadTranscript returns the session history, most recent first.
func (s *Service) LoadTranscript(ctx context.Context, sessionID string) ([]chat.Entry, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Transcript(), nil
}

// Count reports the number of live sessions.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep discards sessions idle for longer than the configured TTL and returns
// how many were removed. Sessions with pending questions are kept.
func (s *Service) Sweep() int {
	if s.idleTTL <= 0 {
		return 0
	}

	cutoff := s.now().UTC().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, state := range s.sessions {
		// A session with a question in flight or queued is in use however long it waits.
		if state.lastSeen.Before(cutoff) && state.session.Pending() == 0 {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps idle sessions every interval until ctx is done.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	if s.idleTTL <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				log.Printf("[chat] expired %d idle sessions, %d remaining", removed, s.Count())
			}
		}
	}
}
