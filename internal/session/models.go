package session

import (
	"context"
	"errors"

	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/flow"
)

const (
	StatusInProgress          = "in_progress"
	StatusCompleted           = "completed"
	StatusCompletedWithResult = "completed_with_result"
)

var (
	ErrNotFound = errors.New("session not found")
	// ErrNotCurrentQuestion rejects an answer for a question the session is
	// not currently on. Stale UI state, not a data problem.
	ErrNotCurrentQuestion = errors.New("answer is not for the current question")
	// ErrFinished rejects writes to a completed session.
	ErrFinished = errors.New("session already completed")
)

// Session is one quiz-taking run. It owns the state the navigation engine
// deliberately does not: the current question and the collected answers.
type Session struct {
	ID                string       `json:"id"`
	QuizID            string       `json:"quiz_id"`
	Status            string       `json:"status"`
	CurrentQuestionID int64        `json:"current_question_id,omitempty"`
	Answers           flow.Answers `json:"answers"`
	ResultID          string       `json:"result_id,omitempty"`
	StartedAt         int64        `json:"started_at"`
	CompletedAt       int64        `json:"completed_at,omitempty"`
}

func (s *Session) Finished() bool {
	return s.Status != StatusInProgress
}

type Store interface {
	Put(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
