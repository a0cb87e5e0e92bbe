package lead

import (
	"context"
	"database/sql"
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

const leadColumns = `id,quiz_id,session_id,name,phone,email,telegram,answers_json,result_id,
	utm_source,utm_campaign,utm_keyword,score,status,created_at`

func (s *SQLStore) PutLead(ctx context.Context, l Lead) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO leads (`+leadColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, phone=EXCLUDED.phone,
			email=EXCLUDED.email, telegram=EXCLUDED.telegram, status=EXCLUDED.status, score=EXCLUDED.score`,
		l.ID, l.QuizID, l.SessionID, l.Name, l.Phone, l.Email, l.Telegram, l.AnswersJSON, l.ResultID,
		l.UTMSource, l.UTMCampaign, l.UTMKeyword, l.Score, l.Status, l.CreatedAt)
	return err
}

func (s *SQLStore) GetLead(ctx context.Context, id string) (Lead, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id=$1`, id)
	return scanLead(row.Scan)
}

func scanLead(scan func(dest ...any) error) (Lead, error) {
	var l Lead
	err := scan(&l.ID, &l.QuizID, &l.SessionID, &l.Name, &l.Phone, &l.Email, &l.Telegram,
		&l.AnswersJSON, &l.ResultID, &l.UTMSource, &l.UTMCampaign, &l.UTMKeyword,
		&l.Score, &l.Status, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return l, nil
}

func (s *SQLStore) ListLeads(ctx context.Context, opts ListOpts) ([]Lead, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	args := []any{}
	n := 1
	if opts.QuizID != "" {
		q += fmt.Sprintf(` AND quiz_id=$%d`, n)
		args = append(args, opts.QuizID)
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

	out := []Lead{}
	for rows.Next() {
		l, err := scanLead(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateStatus(ctx context.Context, id, status string) (Lead, error) {
	prev, err := s.GetLead(ctx, id)
	if err != nil {
		return Lead{}, err
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE leads SET status=$1 WHERE id=$2`, status, id); err != nil {
		return Lead{}, err
	}
	if prev.Status != status {
		_ = s.AppendEvent(ctx, Event{
			LeadID:   id,
			Type:     "field_changed",
			Field:    "status",
			OldValue: prev.Status,
			NewValue: status,
		})
	}
	return s.GetLead(ctx, id)
}

func (s *SQLStore) AppendEvent(ctx context.Context, e Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lead_events (lead_id, typ, field, old_value, new_value, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		e.LeadID, e.Type, e.Field, e.OldValue, e.NewValue, time.Now().Unix())
	return err
}

func (s *SQLStore) ListEvents(ctx context.Context, leadID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT event_offset, lead_id, typ, field, old_value, new_value, created_at
		 FROM lead_events WHERE lead_id=$1 ORDER BY event_offset ASC`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Offset, &e.LeadID, &e.Type, &e.Field, &e.OldValue, &e.NewValue, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
