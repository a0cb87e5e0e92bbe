package flow

import (
	"errors"
	"fmt"
)

// ErrQuestionNotFound reports a resolver call whose current question id is
// not in the question list. That is a caller bug (stale session state), not a
// data-quality problem in authored rules, so it surfaces as an error instead
// of degrading silently.
var ErrQuestionNotFound = errors.New("question not found")

// Decision is the outcome of one navigation step.
type Decision struct {
	Kind           DecisionKind `json:"kind"`
	NextQuestionID int64        `json:"next_question_id,omitempty"`
	ResultID       string       `json:"result_id,omitempty"`
}

type DecisionKind string

const (
	// DecisionNext advances to NextQuestionID.
	DecisionNext DecisionKind = "next"
	// DecisionComplete ends the quiz with no result page.
	DecisionComplete DecisionKind = "complete"
	// DecisionCompleteWithResult ends the quiz and names a result page.
	DecisionCompleteWithResult DecisionKind = "complete_with_result"
)

// EvalRule reports whether a rule matches the collected answers. Conditions
// look up answers by their own question id, so a rule may reference any
// earlier question's answer, not just the question it is attached to.
//
// matchType "all" is a conjunction and is vacuously true for an empty
// condition list; "any" is a disjunction and vacuously false.
func EvalRule(r Rule, answers Answers) bool {
	if r.MatchType == MatchAny {
		for _, c := range r.Conditions {
			if EvalCondition(c, answers[c.QuestionID]) {
				return true
			}
		}
		return false
	}
	for _, c := range r.Conditions {
		if !EvalCondition(c, answers[c.QuestionID]) {
			return false
		}
	}
	return true
}

// Resolve decides what follows currentID: the next question to show, or
// quiz completion. It is a pure function of its arguments; the session state
// machine lives in the caller.
//
// Rules are evaluated in list order and the first match wins. A matched
// show_question/skip_to_question whose target is unset completes the quiz;
// a target that does not exist in the question list falls back to the next
// question in sequence rather than failing the session. When no rule
// matches, a show_question default action applies, and otherwise navigation
// is strictly sequential.
func Resolve(currentID int64, answers Answers, questions []QuestionRef) (Decision, error) {
	idx := indexOf(questions, currentID)
	if idx < 0 {
		return Decision{}, fmt.Errorf("%w: %d", ErrQuestionNotFound, currentID)
	}

	lg := questions[idx].Logic
	if lg == nil {
		return sequential(idx, questions), nil
	}

	for _, r := range lg.Rules {
		if !EvalRule(r, answers) {
			continue
		}
		switch r.Action {
		case ActionShowQuestion, ActionSkipToQuestion:
			return jump(idx, r.TargetQuestionID, questions), nil
		case ActionEndQuiz:
			return Decision{Kind: DecisionComplete}, nil
		case ActionShowResult:
			return Decision{Kind: DecisionCompleteWithResult, ResultID: r.TargetResultID}, nil
		default:
			// Matched rule with no usable action (e.g. empty condition
			// list): keep the quiz moving.
			return sequential(idx, questions), nil
		}
	}

	if d := lg.Default; d != nil && d.Action == ActionShowQuestion {
		return jump(idx, d.TargetQuestionID, questions), nil
	}
	return sequential(idx, questions), nil
}

// jump targets a specific question. An unset target is terminal; a dangling
// target degrades to sequential order so authored data can never strand a
// quiz taker.
func jump(fromIdx int, targetID int64, questions []QuestionRef) Decision {
	if targetID == 0 {
		return Decision{Kind: DecisionComplete}
	}
	if indexOf(questions, targetID) < 0 {
		return sequential(fromIdx, questions)
	}
	return Decision{Kind: DecisionNext, NextQuestionID: targetID}
}

func sequential(idx int, questions []QuestionRef) Decision {
	if idx+1 < len(questions) {
		return Decision{Kind: DecisionNext, NextQuestionID: questions[idx+1].ID}
	}
	return Decision{Kind: DecisionComplete}
}

func indexOf(questions []QuestionRef, id int64) int {
	for i, q := range questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}
