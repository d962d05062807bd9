package session

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

type memoryEntry struct {
	sess      domain.Session
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore returns the in-process fallback session store, used when
// no Redis address is configured. Expired entries are dropped lazily on
// read.
func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string]memoryEntry)}
}

func (s *memoryStore) Put(_ context.Context, id string, sess domain.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{sess: sess, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *memoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	sess := entry.sess
	return &sess, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
