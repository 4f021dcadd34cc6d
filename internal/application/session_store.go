package application

import (
	"sync"
	"sync/atomic"

	"github.com/bnema/containerdesk/internal/domain"
)

// SessionStore owns the one live session. The session is only ever swapped
// as a whole, so readers see either the old snapshot or the new one.
type SessionStore struct {
	current atomic.Pointer[domain.Session]

	// publishMu orders swaps with their delivery, so subscribers see sessions
	// in the order they were stored.
	publishMu sync.Mutex

	mu          sync.Mutex
	subscribers map[int]func(domain.Session)
	nextID      int
}

func NewSessionStore() *SessionStore {
	store := &SessionStore{subscribers: map[int]func(domain.Session){}}
	store.current.Store(&domain.Session{})
	return store
}

func (s *SessionStore) Current() domain.Session {
	return *s.current.Load()
}

// Replace builds the next session, including its derived addresses, before
// publishing it.
func (s *SessionStore) Replace(id domain.ClientID, data domain.ClientData) domain.Session {
	if data.Orders == nil {
		data.Orders = []domain.Order{}
	}

	next := domain.NewSession(id, data)
	s.swap(next)

	return next
}

func (s *SessionStore) Reset() {
	s.swap(domain.Session{})
}

// Subscribe registers fn to run after every swap. The returned func removes it.
func (s *SessionStore) Subscribe(fn func(domain.Session)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// swap stores session and delivers it before the next swap may start.
// Subscribers must not call Replace or Reset.
func (s *SessionStore) swap(session domain.Session) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.current.Store(&session)
	s.publish(session)
}

func (s *SessionStore) publish(session domain.Session) {
	s.mu.Lock()
	subscribers := make([]func(domain.Session), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(session)
	}
}
