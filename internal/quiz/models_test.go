package quiz

import (
	"testing"

	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/flow"
)

func TestFlowQuestionsParsesLogicBlobs(t *testing.T) {
	q := Quiz{
		ID: "q1",
		Questions: []Question{
			{ID: 1, ConditionalLogic: `{"rules":[{"id":"r","matchType":"all","conditions":[
				{"id":"c","questionId":1,"operator":"equals","value":"x","action":"end_quiz"}]}]}`},
			{ID: 2},
			{ID: 3, ConditionalLogic: `{"broken`},
		},
	}

	refs := q.FlowQuestions()
	if len(refs) != 3 {
		t.Fatalf("expected 3 refs, got %d", len(refs))
	}
	if refs[0].Logic == nil || len(refs[0].Logic.Rules) != 1 {
		t.Errorf("question 1 logic should parse, got %+v", refs[0].Logic)
	}
	if refs[1].Logic != nil {
		t.Errorf("question 2 has no blob, logic should be nil")
	}
	if refs[2].Logic != nil {
		t.Errorf("broken blob should yield nil logic, got %+v", refs[2].Logic)
	}

	// A broken blob behaves exactly like no logic at all.
	d, err := flow.Resolve(3, flow.Answers{}, refs)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.Kind != flow.DecisionComplete {
		t.Errorf("question 3 is last, expected completion, got %+v", d)
	}
}

func TestQuestionLookupHelpers(t *testing.T) {
	q := Quiz{Questions: []Question{{ID: 7}, {ID: 9}}}
	if got := q.FirstQuestionID(); got != 7 {
		t.Errorf("FirstQuestionID = %d", got)
	}
	if qn := q.QuestionByID(9); qn == nil || qn.ID != 9 {
		t.Errorf("QuestionByID(9) = %+v", qn)
	}
	if qn := q.QuestionByID(8); qn != nil {
		t.Errorf("QuestionByID(8) should be nil")
	}

	empty := Quiz{}
	if got := empty.FirstQuestionID(); got != 0 {
		t.Errorf("empty quiz FirstQuestionID = %d", got)
	}
}
