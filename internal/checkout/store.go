package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a user has no checkout in progress.
var ErrSessionNotFound = errors.New("checkout session not found")

// Store persists checkout sessions keyed by user; a user has at most one
// checkout in progress.
type Store interface {
	Get(ctx context.Context, userID uuid.UUID) (*Session, error)
	Put(ctx context.Context, session *Session) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// memoryStore is an in-process Store used when Redis is not configured.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[uuid.UUID]*Session),
	}
}

func (s *memoryStore) Get(ctx context.Context, userID uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *memoryStore) Put(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	s.sessions[session.UserID] = &copied
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}
