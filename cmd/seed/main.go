// Seeds a demo branching quiz so the flow engine is exercisable right after
// first start:
//
//	go run ./cmd/seed
//	curl -X POST localhost:8080/sessions -d '{"slug":"agency-brief"}'
package main

import (
	"context"
	"log"
	"time"

	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/config"
	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/db"
	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/quiz"
)

func main() {
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := quiz.NewSQLStore(dbh)

	demo := quiz.Quiz{
		ID:     "demo-agency-brief",
		Slug:   "agency-brief",
		Title:  "Project Brief",
		Status: "published",
		Questions: []quiz.Question{
			{
				ID:    1,
				Type:  "single_choice",
				Title: "What service are you interested in?",
				Options: []quiz.Option{
					{ID: "seo", Label: "SEO", Value: "seo"},
					{ID: "ads", Label: "Paid ads", Value: "ads"},
					{ID: "premium", Label: "Full premium package", Value: "premium"},
				},
				// Premium prospects skip the budget qualifier.
				ConditionalLogic: `{"rules":[{"id":"rule-premium","matchType":"all","conditions":[
					{"id":"c1","questionId":1,"operator":"equals","value":"premium",
					 "action":"skip_to_question","targetQuestionId":4}]}]}`,
			},
			{
				ID:    2,
				Type:  "slider",
				Title: "What is your monthly budget (USD)?",
			},
			{
				ID:    3,
				Type:  "text",
				Title: "What should we focus on first?",
				// Low budgets end the quiz early.
				ConditionalLogic: `{"rules":[{"id":"rule-low-budget","matchType":"all","conditions":[
					{"id":"c1","questionId":2,"operator":"less_than","value":300,
					 "action":"end_quiz"}]}]}`,
			},
			{
				ID:    4,
				Type:  "contact",
				Title: "Where can we send the proposal?",
			},
		},
	}

	if err := store.PutQuiz(ctx, demo); err != nil {
		log.Fatalf("seed quiz: %v", err)
	}
	log.Printf("seeded quiz %s (%s) with %d questions", demo.ID, demo.Slug, len(demo.Questions))
}
