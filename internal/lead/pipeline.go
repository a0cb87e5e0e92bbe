package lead

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/flow"
)

// Notifier is told about every accepted lead. Implementations push to CRM
// channels (Telegram, email, webhooks); the engine ships with a log-only
// implementation.
type Notifier interface {
	NotifyLead(ctx context.Context, l Lead) error
}

// LogNotifier writes new leads to the process log.
type LogNotifier struct{}

func (LogNotifier) NotifyLead(_ context.Context, l Lead) error {
	log.Printf("new lead %s (quiz=%s score=%d band=%s)", l.ID, l.QuizID, l.Score, ScoreBand(l.Score))
	return nil
}

// Submission is the input to the pipeline: the completed session's answer
// set plus the contact form.
type Submission struct {
	QuizID    string       `json:"quiz_id"`
	SessionID string       `json:"session_id"`
	Answers   flow.Answers `json:"answers"`
	ResultID  string       `json:"result_id,omitempty"`

	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Telegram string `json:"telegram"`

	UTMSource   string `json:"utm_source"`
	UTMCampaign string `json:"utm_campaign"`
	UTMKeyword  string `json:"utm_keyword"`
}

// Pipeline turns completed quiz sessions into stored, scored leads and fans
// them out to notifiers.
type Pipeline struct {
	store     Store
	notifiers []Notifier
}

func NewPipeline(store Store, notifiers ...Notifier) *Pipeline {
	return &Pipeline{store: store, notifiers: notifiers}
}

// Submit builds, scores and persists a lead. Notifier failures are logged,
// not returned: a flaky channel must never lose the lead.
func (p *Pipeline) Submit(ctx context.Context, in Submission) (Lead, error) {
	answersJSON, err := json.Marshal(in.Answers)
	if err != nil {
		return Lead{}, fmt.Errorf("marshal answers: %w", err)
	}

	l := Lead{
		ID:          uuid.NewString(),
		QuizID:      in.QuizID,
		SessionID:   in.SessionID,
		Name:        in.Name,
		Phone:       in.Phone,
		Email:       in.Email,
		Telegram:    in.Telegram,
		AnswersJSON: string(answersJSON),
		ResultID:    in.ResultID,
		UTMSource:   in.UTMSource,
		UTMCampaign: in.UTMCampaign,
		UTMKeyword:  in.UTMKeyword,
		Status:      "new",
		CreatedAt:   time.Now().Unix(),
	}
	l.Score = Score(l)

	if err := p.store.PutLead(ctx, l); err != nil {
		return Lead{}, fmt.Errorf("store lead: %w", err)
	}
	if err := p.store.AppendEvent(ctx, Event{LeadID: l.ID, Type: "lead_created"}); err != nil {
		log.Printf("lead %s: append created event: %v", l.ID, err)
	}

	for _, n := range p.notifiers {
		if err := n.NotifyLead(ctx, l); err != nil {
			log.Printf("lead %s: notifier %T: %v", l.ID, n, err)
		}
	}
	return l, nil
}
