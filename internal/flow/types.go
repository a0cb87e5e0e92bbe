package flow

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Operator compares a collected answer against a condition's value.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
	OpIsEmpty     Operator = "is_empty"
	OpIsNotEmpty  Operator = "is_not_empty"
)

// Action is what a matched rule does to the quiz flow.
type Action string

const (
	ActionNone           Action = ""
	ActionShowQuestion   Action = "show_question"
	ActionSkipToQuestion Action = "skip_to_question"
	ActionEndQuiz        Action = "end_quiz"
	ActionShowResult     Action = "show_result"
)

// MatchType selects conjunction or disjunction over a rule's conditions.
type MatchType string

const (
	MatchAll MatchType = "all"
	MatchAny MatchType = "any"
)

// Value is a condition's comparison operand. The authoring format allows a
// string or a number; anything else is rejected at parse time.
type Value struct {
	Kind ValueKind
	Text string
	Num  float64
}

type ValueKind int

const (
	ValueText ValueKind = iota
	ValueNumber
)

func TextValue(s string) Value    { return Value{Kind: ValueText, Text: s} }
func NumberValue(n float64) Value { return Value{Kind: ValueNumber, Num: n} }

func (v *Value) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = TextValue(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*v = NumberValue(n)
		return nil
	}
	return fmt.Errorf("condition value must be a string or number, got %s", string(b))
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == ValueNumber {
		return json.Marshal(v.Num)
	}
	return json.Marshal(v.Text)
}

// String renders the operand the way answers are stringified for substring
// operators.
func (v Value) String() string {
	if v.Kind == ValueNumber {
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return v.Text
}

// Condition inspects one previously collected answer. The answer inspected is
// answers[QuestionID], which may belong to an earlier question than the one
// the owning rule is attached to.
type Condition struct {
	ID         string
	QuestionID int64
	Operator   Operator
	Value      Value
}

// Rule is an ordered list of conditions plus the action taken when it
// matches. The authoring format carries action fields on every condition but
// only the first condition's action is ever applied, so the parsed model
// hoists it here.
type Rule struct {
	ID               string
	MatchType        MatchType
	Conditions       []Condition
	Action           Action
	TargetQuestionID int64 // 0 means unset
	TargetResultID   string
}

// DefaultAction is the fallback applied when no rule matches. Only
// show_question is honored; any other action falls through to sequential
// navigation.
type DefaultAction struct {
	Action           Action
	TargetQuestionID int64
}

// Logic is a question's parsed rule set. Rules are evaluated in order and the
// first match wins.
type Logic struct {
	Rules   []Rule
	Default *DefaultAction
}

// Answers maps question id to the collected answer value: a string, a
// float64, a bool, or a []any for multi-select. The engine only reads it.
type Answers map[int64]any

// QuestionRef is the engine's view of one question: its id and parsed logic
// (nil when the question has none).
type QuestionRef struct {
	ID    int64
	Logic *Logic
}
