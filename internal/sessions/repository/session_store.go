package repository

import (
	"sync"
	"time"

	sessionserrors "busbook/internal/sessions/errors"
	"busbook/pkg/model"
)

// SessionStore keeps the live booking sessions in memory; a session vanishes
// when the process stops or its TTL lapses.
type SessionStore interface {
	Put(session *model.Session)
	Get(id string) (*model.Session, error)
	Delete(id string)
	Stop()
}

type inMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
	ttl      time.Duration
	stopCh   chan struct{}
}

func NewInMemorySessionStore(ttl time.Duration) SessionStore {
	store := &inMemorySessionStore{
		sessions: make(map[string]*model.Session),
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}

	go store.sweep()

	return store
}

func (s *inMemorySessionStore) Put(session *model.Session) {
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
}

func (s *inMemorySessionStore) Get(id string) (*model.Session, error) {
	s.mu.RLock()
	session, exists := s.sessions[id]
	s.mu.RUnlock()

	if !exists {
		return nil, sessionserrors.ErrNotFound
	}

	if time.Since(session.LastActive()) > s.ttl {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, sessionserrors.ErrNotFound
	}

	return session, nil
}

func (s *inMemorySessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *inMemorySessionStore) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			for id, session := range s.sessions {
				if time.Since(session.LastActive()) > s.ttl {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *inMemorySessionStore) Stop() {
	close(s.stopCh)
}
