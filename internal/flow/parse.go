package flow

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Wire shapes for the authoring JSON. The builder UI writes action fields on
// every condition; only the first condition's action is meaningful.
type wireCondition struct {
	ID               string `json:"id"`
	QuestionID       int64  `json:"questionId"`
	Operator         string `json:"operator"`
	Value            Value  `json:"value"`
	Action           string `json:"action"`
	TargetQuestionID *int64 `json:"targetQuestionId,omitempty"`
	TargetResultID   string `json:"targetResultId,omitempty"`
}

type wireRule struct {
	ID         string          `json:"id"`
	MatchType  string          `json:"matchType"`
	Conditions []wireCondition `json:"conditions"`
}

type wireLogic struct {
	Rules         []wireRule `json:"rules"`
	DefaultAction *struct {
		Action           string `json:"action"`
		TargetQuestionID *int64 `json:"targetQuestionId,omitempty"`
	} `json:"defaultAction,omitempty"`
}

// Parse decodes a question's serialized rule set into its evaluated form.
// The blob is decoded once at load time, not on every navigation call.
//
// Parse is strict about shape (malformed JSON, non-object payloads and bad
// value types return an error) but lenient about content: unknown operators
// are kept and evaluate to false, and a rule with no conditions parses with
// no action. Callers treat any error as "no conditional logic" so a bad blob
// degrades to sequential navigation instead of breaking the quiz.
func Parse(raw string) (*Logic, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var w wireLogic
	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("decode conditional logic: %w", err)
	}

	lg := &Logic{Rules: make([]Rule, 0, len(w.Rules))}
	for _, wr := range w.Rules {
		r := Rule{
			ID:        wr.ID,
			MatchType: MatchType(wr.MatchType),
		}
		// Anything other than "all" evaluates as a disjunction, matching
		// how the authoring tool's evaluator branches on the match type.
		if r.MatchType != MatchAll {
			r.MatchType = MatchAny
		}
		for _, wc := range wr.Conditions {
			r.Conditions = append(r.Conditions, Condition{
				ID:         wc.ID,
				QuestionID: wc.QuestionID,
				Operator:   Operator(wc.Operator),
				Value:      wc.Value,
			})
		}
		if len(wr.Conditions) > 0 {
			first := wr.Conditions[0]
			r.Action = Action(first.Action)
			if first.TargetQuestionID != nil {
				r.TargetQuestionID = *first.TargetQuestionID
			}
			r.TargetResultID = first.TargetResultID
		}
		lg.Rules = append(lg.Rules, r)
	}

	if w.DefaultAction != nil {
		d := &DefaultAction{Action: Action(w.DefaultAction.Action)}
		if w.DefaultAction.TargetQuestionID != nil {
			d.TargetQuestionID = *w.DefaultAction.TargetQuestionID
		}
		lg.Default = d
	}
	return lg, nil
}
