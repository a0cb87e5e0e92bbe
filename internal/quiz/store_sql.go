package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) PutQuiz(ctx context.Context, q Quiz) error {
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	now := time.Now().Unix()
	_, err = s.db.ExecContext(ctx, `INSERT INTO quizzes (id,slug,title,status,questions_json,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$6)
		ON CONFLICT (id) DO UPDATE SET slug=EXCLUDED.slug, title=EXCLUDED.title,
			status=EXCLUDED.status, questions_json=EXCLUDED.questions_json, updated_at=EXCLUDED.updated_at`,
		q.ID, q.Slug, q.Title, q.Status, string(qj), now)
	return err
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,slug,title,status,questions_json,created_at,updated_at FROM quizzes WHERE id=$1`, id)
	return scanQuiz(row)
}

func (s *SQLStore) GetQuizBySlug(ctx context.Context, slug string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,slug,title,status,questions_json,created_at,updated_at FROM quizzes WHERE slug=$1`, slug)
	return scanQuiz(row)
}

func scanQuiz(row *sql.Row) (Quiz, error) {
	var q Quiz
	var qjson string
	if err := row.Scan(&q.ID, &q.Slug, &q.Title, &q.Status, &qjson, &q.CreatedAt, &q.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &q.Questions); err != nil {
		return Quiz{}, fmt.Errorf("unmarshal questions for quiz %s: %w", q.ID, err)
	}
	return q, nil
}

func (s *SQLStore) ListQuizzes(ctx context.Context, opts ListOpts) ([]Summary, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := `SELECT id,slug,title,status,questions_json,created_at FROM quizzes WHERE 1=1`
	args := []any{}
	n := 1
	if opts.Q != "" {
		q += fmt.Sprintf(` AND lower(title) LIKE '%%' || lower($%d) || '%%'`, n)
		args = append(args, opts.Q)
		n++
	}
	if opts.Status != "" {
		q += fmt.Sprintf(` AND status=$%d`, n)
		args = append(args, opts.Status)
		n++
	}
	q += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, n, n+1)
	args = append(args, limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sm Summary
		var qjson string
		if err := rows.Scan(&sm.ID, &sm.Slug, &sm.Title, &sm.Status, &qjson, &sm.CreatedAt); err != nil {
			return nil, err
		}
		var qs []Question
		if err := json.Unmarshal([]byte(qjson), &qs); err == nil {
			sm.QuestionCount = len(qs)
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteQuiz(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
