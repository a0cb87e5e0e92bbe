package quiz

import (
	"log"

	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/flow"
)

type Option struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label,omitempty"`
	Value string `json:"value,omitempty"`
}

type Question struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"` // single_choice, multiple_choice, text, slider, contact
	Title string `json:"title"`

	Options []Option `json:"options,omitempty"`

	// ConditionalLogic is the raw rule blob as authored; empty means the
	// question falls through to the next one in order. Parsed form lives in
	// Logic and is not serialized.
	ConditionalLogic string      `json:"conditional_logic,omitempty"`
	Logic            *flow.Logic `json:"-"`
}

type Quiz struct {
	ID        string     `json:"id"`
	Slug      string     `json:"slug"`
	Title     string     `json:"title"`
	Status    string     `json:"status"` // draft|published|archived
	Questions []Question `json:"questions"`
	CreatedAt int64      `json:"created_at,omitempty"`
	UpdatedAt int64      `json:"updated_at,omitempty"`
}

// FlowQuestions projects the quiz's questions into the navigation engine's
// view, parsing rule blobs on the way. A blob that fails to parse is logged
// and treated as "no conditional logic" so a bad rule can never block a quiz
// taker.
func (q *Quiz) FlowQuestions() []flow.QuestionRef {
	refs := make([]flow.QuestionRef, 0, len(q.Questions))
	for i := range q.Questions {
		refs = append(refs, q.Questions[i].flowRef(q.ID))
	}
	return refs
}

func (qn *Question) flowRef(quizID string) flow.QuestionRef {
	if qn.Logic == nil && qn.ConditionalLogic != "" {
		lg, err := flow.Parse(qn.ConditionalLogic)
		if err != nil {
			log.Printf("quiz %s question %d: bad conditional logic, using sequential order: %v", quizID, qn.ID, err)
		} else {
			qn.Logic = lg
		}
	}
	return flow.QuestionRef{ID: qn.ID, Logic: qn.Logic}
}

// FirstQuestionID returns the entry point of the quiz, or 0 when it has no
// questions.
func (q *Quiz) FirstQuestionID() int64 {
	if len(q.Questions) == 0 {
		return 0
	}
	return q.Questions[0].ID
}

// QuestionByID returns the question with the given id, or nil.
func (q *Quiz) QuestionByID(id int64) *Question {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i]
		}
	}
	return nil
}
