package lead

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		lead Lead
		want int
	}{
		{
			name: "bare completion",
			lead: Lead{AnswersJSON: `{}`},
			want: 20,
		},
		{
			name: "invalid answers json gets minimum answer points",
			lead: Lead{AnswersJSON: `not json`},
			want: 25,
		},
		{
			name: "email and telegram",
			lead: Lead{AnswersJSON: `{}`, Email: "a@b.c", Telegram: "@abc"},
			want: 50,
		},
		{
			name: "detailed answers",
			lead: Lead{AnswersJSON: `{"1":"a","2":"b","3":"c","4":"d","5":"e"}`},
			want: 50,
		},
		{
			name: "three answers",
			lead: Lead{AnswersJSON: `{"1":"a","2":"b","3":"c"}`},
			want: 40,
		},
		{
			name: "single answer",
			lead: Lead{AnswersJSON: `{"1":"a"}`},
			want: 30,
		},
		{
			name: "branded campaign and paid source",
			lead: Lead{AnswersJSON: `{}`, UTMCampaign: "official-brand-lift", UTMSource: "google"},
			want: 35,
		},
		{
			name: "generic campaign and organic source",
			lead: Lead{AnswersJSON: `{}`, UTMCampaign: "spring", UTMSource: "newsletter"},
			want: 27,
		},
		{
			name: "long-tail keyword",
			lead: Lead{AnswersJSON: `{}`, UTMKeyword: "best seo agency berlin"},
			want: 25,
		},
		{
			name: "two-word keyword",
			lead: Lead{AnswersJSON: `{}`, UTMKeyword: "seo agency"},
			want: 23,
		},
		{
			name: "capped at 100",
			lead: Lead{
				AnswersJSON: `{"1":"a","2":"b","3":"c","4":"d","5":"e","6":"f"}`,
				Email:       "a@b.c", Telegram: "@abc",
				UTMCampaign: "brand", UTMKeyword: "best seo agency berlin", UTMSource: "google",
			},
			want: 100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.lead); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreBand(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{95, "high"}, {80, "high"}, {79, "good"}, {60, "good"},
		{59, "medium"}, {40, "medium"}, {39, "low"}, {0, "low"},
	}
	for _, tt := range tests {
		if got := ScoreBand(tt.score); got != tt.want {
			t.Errorf("ScoreBand(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
