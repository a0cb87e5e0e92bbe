package flow

import "testing"

func TestParseAuthoredLogic(t *testing.T) {
	raw := `{
		"rules": [
			{
				"id": "rule-1",
				"matchType": "all",
				"conditions": [
					{
						"id": "c1",
						"questionId": 1,
						"operator": "equals",
						"value": "premium",
						"action": "show_question",
						"targetQuestionId": 4
					},
					{
						"id": "c2",
						"questionId": 2,
						"operator": "greater_than",
						"value": 500,
						"action": "end_quiz"
					}
				]
			}
		],
		"defaultAction": {"action": "show_question", "targetQuestionId": 2}
	}`

	lg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(lg.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(lg.Rules))
	}

	r := lg.Rules[0]
	if r.MatchType != MatchAll {
		t.Errorf("matchType = %q, want all", r.MatchType)
	}
	if len(r.Conditions) != 2 {
		t.Fatalf("expected 2 conditions, got %d", len(r.Conditions))
	}
	// The action comes from the first condition only.
	if r.Action != ActionShowQuestion || r.TargetQuestionID != 4 {
		t.Errorf("hoisted action = %q target=%d, want show_question/4", r.Action, r.TargetQuestionID)
	}
	if r.Conditions[0].Value != TextValue("premium") {
		t.Errorf("condition 0 value = %+v", r.Conditions[0].Value)
	}
	if r.Conditions[1].Value != NumberValue(500) {
		t.Errorf("condition 1 value = %+v", r.Conditions[1].Value)
	}
	if lg.Default == nil || lg.Default.Action != ActionShowQuestion || lg.Default.TargetQuestionID != 2 {
		t.Errorf("default action = %+v", lg.Default)
	}
}

func TestParseMalformedJSON(t *testing.T) {
	for _, raw := range []string{
		`{"rules": [`,
		`not json at all`,
		`{"rules": [{"conditions": [{"value": {"nested": true}}]}]}`,
	} {
		if _, err := Parse(raw); err == nil {
			t.Errorf("Parse(%q) should fail", raw)
		}
	}
}

func TestParseEmptyBlob(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		lg, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q): %v", raw, err)
		}
		if lg != nil {
			t.Errorf("Parse(%q) = %+v, want nil logic", raw, lg)
		}
	}
}

func TestParseEmptyConditionsRule(t *testing.T) {
	lg, err := Parse(`{"rules": [{"id": "r", "matchType": "all", "conditions": []}]}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(lg.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(lg.Rules))
	}
	if lg.Rules[0].Action != ActionNone {
		t.Errorf("rule without conditions should carry no action, got %q", lg.Rules[0].Action)
	}

	// Such a rule matches vacuously under "all" but must not derail the
	// quiz: navigation continues in sequence.
	qs := withLogic(linearQuestions(1, 2), 1, lg)
	d, err := Resolve(1, Answers{}, qs)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.Kind != DecisionNext || d.NextQuestionID != 2 {
		t.Errorf("expected sequential navigation, got %+v", d)
	}
}

func TestParseMatchTypeFallback(t *testing.T) {
	// Only "all" selects conjunction; anything else, including unknown
	// values, evaluates as "any".
	tests := []struct {
		in   string
		want MatchType
	}{
		{"all", MatchAll},
		{"any", MatchAny},
		{"most", MatchAny},
		{"", MatchAny},
	}
	for _, tt := range tests {
		lg, err := Parse(`{"rules": [{"id": "r", "matchType": "` + tt.in + `", "conditions": []}]}`)
		if err != nil {
			t.Fatalf("Parse(matchType=%q): %v", tt.in, err)
		}
		if got := lg.Rules[0].MatchType; got != tt.want {
			t.Errorf("matchType %q parsed as %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseRoundTripsThroughResolve(t *testing.T) {
	raw := `{"rules": [{"id": "r1", "matchType": "any", "conditions": [
		{"id": "c1", "questionId": 1, "operator": "contains", "value": "LUX", "action": "skip_to_question", "targetQuestionId": 3}
	]}]}`
	lg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	qs := withLogic(linearQuestions(1, 2, 3), 1, lg)
	d, err := Resolve(1, Answers{1: "deluxe package"}, qs)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.Kind != DecisionNext || d.NextQuestionID != 3 {
		t.Errorf("expected skip to 3, got %+v", d)
	}
}
