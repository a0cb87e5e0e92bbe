package lead

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryStore struct {
	mu     sync.RWMutex
	leads  map[string]Lead
	events map[string][]Event
	offset int64
}

func NewInMemoryStore() Store {
	return &memoryStore{
		leads:  map[string]Lead{},
		events: map[string][]Event{},
	}
}

func (m *memoryStore) PutLead(_ context.Context, l Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads[l.ID] = l
	return nil
}

func (m *memoryStore) GetLead(_ context.Context, id string) (Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.leads[id]
	if !ok {
		return Lead{}, ErrNotFound
	}
	return l, nil
}

func (m *memoryStore) ListLeads(_ context.Context, opts ListOpts) ([]Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []Lead{}
	for _, l := range m.leads {
		if opts.QuizID != "" && l.QuizID != opts.QuizID {
			continue
		}
		if opts.Status != "" && l.Status != opts.Status {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })

	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []Lead{}, nil
		}
		out = out[opts.Offset:]
	}
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryStore) UpdateStatus(ctx context.Context, id, status string) (Lead, error) {
	m.mu.Lock()
	l, ok := m.leads[id]
	if !ok {
		m.mu.Unlock()
		return Lead{}, ErrNotFound
	}
	prev := l.Status
	l.Status = status
	m.leads[id] = l
	m.mu.Unlock()

	if prev != status {
		_ = m.AppendEvent(ctx, Event{
			LeadID:   id,
			Type:     "field_changed",
			Field:    "status",
			OldValue: prev,
			NewValue: status,
		})
	}
	return l, nil
}

func (m *memoryStore) AppendEvent(_ context.Context, e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offset++
	e.Offset = m.offset
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	m.events[e.LeadID] = append(m.events[e.LeadID], e)
	return nil
}

func (m *memoryStore) ListEvents(_ context.Context, leadID string) ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	evs := m.events[leadID]
	out := make([]Event, len(evs))
	copy(out, evs)
	return out, nil
}
