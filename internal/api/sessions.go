package api

import (
	"context"
	"errors"
	"sync"

	"github.com/Veraticus/cashiering/internal/dashboard"
)

// Sessions holds one dashboard session per account. Events for the same
// account run one at a time; different accounts proceed independently.
type Sessions struct {
	entries map[string]*sessionEntry
	factory func(accountID string) *dashboard.Session
	onNew   func()
	mu      sync.Mutex
}

type sessionEntry struct {
	session *dashboard.Session
	mu      sync.Mutex
	loaded  bool
}

// NewSessions creates a registry building sessions with factory.
func NewSessions(factory func(accountID string) *dashboard.Session) *Sessions {
	return &Sessions{
		entries: make(map[string]*sessionEntry),
		factory: factory,
	}
}

// Do runs fn against the account's session while holding its lock. The
// session is loaded on first use. The load outlives the request that
// triggered it, and a load cut short by cancellation is retried next time.
func (s *Sessions) Do(ctx context.Context, accountID string, fn func(*dashboard.Session) error) error {
	e := s.entry(accountID)

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		e.session.Load(context.WithoutCancel(ctx))
		err := e.session.LoadError()
		e.loaded = !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	return fn(e.session)
}

// Len returns the number of sessions held.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Drop forgets the account's session; the next event starts a fresh one.
func (s *Sessions) Drop(accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, accountID)
}

func (s *Sessions) entry(accountID string) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[accountID]
	if !ok {
		e = &sessionEntry{session: s.factory(accountID)}
		s.entries[accountID] = e
		if s.onNew != nil {
			s.onNew()
		}
	}
	return e
}
