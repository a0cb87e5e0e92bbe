package session

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewInMemoryStore() Store {
	return &memoryStore{sessions: map[string]Session{}}
}

func (m *memoryStore) Put(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	cp.Answers = cloneAnswers(s.Answers)
	m.sessions[s.ID] = cp
	return nil
}

func (m *memoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := s
	cp.Answers = cloneAnswers(s.Answers)
	return &cp, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func cloneAnswers(a map[int64]any) map[int64]any {
	out := make(map[int64]any, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
