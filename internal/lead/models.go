package lead

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("lead not found")

type Lead struct {
	ID        string `json:"id"`
	QuizID    string `json:"quiz_id"`
	SessionID string `json:"session_id"`

	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Telegram string `json:"telegram,omitempty"`

	// AnswersJSON is the full collected answer set, serialized once at
	// submission time.
	AnswersJSON string `json:"answers_json"`
	ResultID    string `json:"result_id,omitempty"`

	UTMSource   string `json:"utm_source,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
	UTMKeyword  string `json:"utm_keyword,omitempty"`

	Score     int    `json:"score"`
	Status    string `json:"status"` // new|contacted|qualified|closed
	CreatedAt int64  `json:"created_at"`
}

// Event is one entry in a lead's append-only history.
type Event struct {
	Offset    int64  `json:"offset"`
	LeadID    string `json:"lead_id"`
	Type      string `json:"type"` // lead_created|field_changed
	Field     string `json:"field,omitempty"`
	OldValue  string `json:"old_value,omitempty"`
	NewValue  string `json:"new_value,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

type ListOpts struct {
	QuizID string
	Status string
	Limit  int
	Offset int
}

type Store interface {
	PutLead(ctx context.Context, l Lead) error
	GetLead(ctx context.Context, id string) (Lead, error)
	ListLeads(ctx context.Context, opts ListOpts) ([]Lead, error)
	UpdateStatus(ctx context.Context, id, status string) (Lead, error)

	AppendEvent(ctx context.Context, e Event) error
	ListEvents(ctx context.Context, leadID string) ([]Event, error)
}
