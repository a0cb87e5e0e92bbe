package quiz

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("quiz not found")

type ListOpts struct {
	Q      string // optional title filter
	Status string // optional status filter
	Limit  int
	Offset int
}

type Summary struct {
	ID            string `json:"id"`
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Status        string `json:"status"`
	QuestionCount int    `json:"question_count"`
	CreatedAt     int64  `json:"created_at"`
}

type Store interface {
	PutQuiz(ctx context.Context, q Quiz) error
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	GetQuizBySlug(ctx context.Context, slug string) (Quiz, error)
	ListQuizzes(ctx context.Context, opts ListOpts) ([]Summary, error)
	DeleteQuiz(ctx context.Context, id string) error
}
