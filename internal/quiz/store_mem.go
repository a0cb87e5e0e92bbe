package quiz

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryStore struct {
	mu      sync.RWMutex
	quizzes map[string]Quiz
}

// NewInMemoryStore is used by tests and by single-binary demo setups.
func NewInMemoryStore() Store {
	return &memoryStore{quizzes: map[string]Quiz{}}
}

func (m *memoryStore) PutQuiz(_ context.Context, q Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().Unix()
	if prev, ok := m.quizzes[q.ID]; ok {
		q.CreatedAt = prev.CreatedAt
	} else if q.CreatedAt == 0 {
		q.CreatedAt = now
	}
	q.UpdatedAt = now
	m.quizzes[q.ID] = q
	return nil
}

func (m *memoryStore) GetQuiz(_ context.Context, id string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, ErrNotFound
	}
	return cloneQuiz(q), nil
}

func (m *memoryStore) GetQuizBySlug(_ context.Context, slug string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, q := range m.quizzes {
		if q.Slug == slug {
			return cloneQuiz(q), nil
		}
	}
	return Quiz{}, ErrNotFound
}

// cloneQuiz copies the questions slice so callers can never write through to
// the stored quiz. FlowQuestions caches parsed logic on the question it was
// called on; without the copy, concurrent readers of the same quiz would
// race on that write.
func cloneQuiz(q Quiz) Quiz {
	cp := q
	cp.Questions = make([]Question, len(q.Questions))
	copy(cp.Questions, q.Questions)
	return cp
}

func (m *memoryStore) ListQuizzes(_ context.Context, opts ListOpts) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []Summary{}
	for _, q := range m.quizzes {
		if opts.Q != "" && !strings.Contains(strings.ToLower(q.Title), strings.ToLower(opts.Q)) {
			continue
		}
		if opts.Status != "" && q.Status != opts.Status {
			continue
		}
		out = append(out, Summary{
			ID:            q.ID,
			Slug:          q.Slug,
			Title:         q.Title,
			Status:        q.Status,
			QuestionCount: len(q.Questions),
			CreatedAt:     q.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })

	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []Summary{}, nil
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

func (m *memoryStore) DeleteQuiz(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[id]; !ok {
		return ErrNotFound
	}
	delete(m.quizzes, id)
	return nil
}
