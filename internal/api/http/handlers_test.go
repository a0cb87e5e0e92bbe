package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/lead"
	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/quiz"
	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/session"
)

func newTestRouter(t *testing.T) (*chi.Mux, quiz.Store, lead.Store) {
	t.Helper()
	quizzes := quiz.NewInMemoryStore()
	leads := lead.NewInMemoryStore()
	svc := session.NewService(quizzes, session.NewInMemoryStore())
	pipeline := lead.NewPipeline(leads)

	r := chi.NewRouter()
	r.Post("/quizzes", CreateQuizHandler(quizzes))
	r.Get("/quizzes", ListQuizzesHandler(quizzes))
	r.Get("/quizzes/{quizID}", GetQuizHandler(quizzes))
	r.Delete("/quizzes/{quizID}", DeleteQuizHandler(quizzes))
	r.Post("/sessions", StartSessionHandler(svc))
	r.Get("/sessions/{sessionID}", GetSessionHandler(svc))
	r.Post("/sessions/{sessionID}/answers", AnswerHandler(svc))
	r.Post("/sessions/{sessionID}/lead", SubmitLeadHandler(svc, pipeline))
	r.Get("/leads", ListLeadsHandler(leads))
	r.Get("/leads/{leadID}", GetLeadHandler(leads))
	r.Patch("/leads/{leadID}/status", UpdateLeadStatusHandler(leads))
	r.Get("/leads/{leadID}/history", LeadHistoryHandler(leads))
	return r, quizzes, leads
}

func seedQuiz(t *testing.T, quizzes quiz.Store) {
	t.Helper()
	err := quizzes.PutQuiz(context.Background(), quiz.Quiz{
		ID:     "quiz-1",
		Slug:   "brief",
		Title:  "Brief",
		Status: "published",
		Questions: []quiz.Question{
			{ID: 1, Type: "single_choice", Title: "Plan?",
				ConditionalLogic: `{"rules":[{"id":"r1","matchType":"all","conditions":[
					{"id":"c1","questionId":1,"operator":"equals","value":"premium",
					 "action":"show_question","targetQuestionId":3}]}]}`},
			{ID: 2, Type: "text", Title: "Budget?"},
			{ID: 3, Type: "contact", Title: "Contact?"},
		},
	})
	if err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return v
}

func TestQuizCRUD(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/quizzes", map[string]any{
		"slug": "new-quiz", "title": "New Quiz",
		"questions": []map[string]any{{"id": 1, "type": "text", "title": "Q1"}},
	})
	if w.Code != 200 {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	created := decode[quiz.Quiz](t, w)
	if created.ID == "" || created.Status != "draft" {
		t.Errorf("created = %+v", created)
	}

	w = doJSON(t, r, "GET", "/quizzes/"+created.ID, nil)
	if w.Code != 200 {
		t.Fatalf("get: %d", w.Code)
	}

	w = doJSON(t, r, "GET", "/quizzes", nil)
	if got := decode[[]quiz.Summary](t, w); len(got) != 1 || got[0].QuestionCount != 1 {
		t.Errorf("list = %+v", got)
	}

	w = doJSON(t, r, "DELETE", "/quizzes/"+created.ID, nil)
	if w.Code != 204 {
		t.Fatalf("delete: %d", w.Code)
	}
	w = doJSON(t, r, "GET", "/quizzes/"+created.ID, nil)
	if w.Code != 404 {
		t.Errorf("get after delete: %d", w.Code)
	}
}

func TestCreateQuizValidation(t *testing.T) {
	r, _, _ := newTestRouter(t)
	if w := doJSON(t, r, "POST", "/quizzes", map[string]any{"title": "no slug"}); w.Code != 400 {
		t.Errorf("missing slug: %d", w.Code)
	}
	if w := doJSON(t, r, "POST", "/quizzes", nil); w.Code != 400 {
		t.Errorf("empty body: %d", w.Code)
	}
}

func TestQuizTakingFlow(t *testing.T) {
	r, quizzes, _ := newTestRouter(t)
	seedQuiz(t, quizzes)

	// Start by slug.
	w := doJSON(t, r, "POST", "/sessions", map[string]any{"slug": "brief"})
	if w.Code != 200 {
		t.Fatalf("start: %d %s", w.Code, w.Body.String())
	}
	st := decode[session.Step](t, w)
	if st.Question == nil || st.Question.ID != 1 {
		t.Fatalf("start step = %+v", st)
	}
	id := st.Session.ID

	// Premium branches straight to the contact question.
	w = doJSON(t, r, "POST", fmt.Sprintf("/sessions/%s/answers", id),
		map[string]any{"question_id": 1, "value": "premium"})
	if w.Code != 200 {
		t.Fatalf("answer: %d %s", w.Code, w.Body.String())
	}
	st = decode[session.Step](t, w)
	if st.Session.CurrentQuestionID != 3 {
		t.Fatalf("expected branch to question 3, got %+v", st.Session)
	}

	// Answering out of order conflicts.
	w = doJSON(t, r, "POST", fmt.Sprintf("/sessions/%s/answers", id),
		map[string]any{"question_id": 2, "value": "ignored"})
	if w.Code != 409 {
		t.Errorf("out-of-order answer: %d", w.Code)
	}

	// Finish and submit the lead.
	w = doJSON(t, r, "POST", fmt.Sprintf("/sessions/%s/answers", id),
		map[string]any{"question_id": 3, "value": "reach me on telegram"})
	if w.Code != 200 {
		t.Fatalf("final answer: %d %s", w.Code, w.Body.String())
	}
	st = decode[session.Step](t, w)
	if st.Session.Status != session.StatusCompleted {
		t.Fatalf("expected completed session, got %+v", st.Session)
	}

	w = doJSON(t, r, "POST", fmt.Sprintf("/sessions/%s/lead", id),
		map[string]any{"name": "Ada", "telegram": "@ada", "utm_source": "google"})
	if w.Code != 200 {
		t.Fatalf("submit lead: %d %s", w.Code, w.Body.String())
	}
	l := decode[lead.Lead](t, w)
	if l.QuizID != "quiz-1" || l.Score == 0 {
		t.Errorf("lead = %+v", l)
	}

	// CRM surface sees it.
	w = doJSON(t, r, "GET", "/leads?quiz_id=quiz-1", nil)
	if got := decode[[]lead.Lead](t, w); len(got) != 1 {
		t.Errorf("list leads = %+v", got)
	}
	w = doJSON(t, r, "GET", "/leads/"+l.ID+"/history", nil)
	if got := decode[[]lead.Event](t, w); len(got) != 1 || got[0].Type != "lead_created" {
		t.Errorf("history = %+v", got)
	}
}

func TestSubmitLeadRequiresCompletedSession(t *testing.T) {
	r, quizzes, _ := newTestRouter(t)
	seedQuiz(t, quizzes)

	w := doJSON(t, r, "POST", "/sessions", map[string]any{"quiz_id": "quiz-1"})
	st := decode[session.Step](t, w)

	w = doJSON(t, r, "POST", fmt.Sprintf("/sessions/%s/lead", st.Session.ID),
		map[string]any{"name": "Too Early"})
	if w.Code != 409 {
		t.Errorf("lead for in-progress session: %d", w.Code)
	}
}

func TestStartSessionUnknownQuiz(t *testing.T) {
	r, _, _ := newTestRouter(t)
	if w := doJSON(t, r, "POST", "/sessions", map[string]any{"quiz_id": "missing"}); w.Code != 404 {
		t.Errorf("unknown quiz: %d", w.Code)
	}
	if w := doJSON(t, r, "POST", "/sessions", map[string]any{}); w.Code != 400 {
		t.Errorf("no quiz reference: %d", w.Code)
	}
}

func TestUpdateLeadStatus(t *testing.T) {
	r, _, leads := newTestRouter(t)
	if err := leads.PutLead(context.Background(), lead.Lead{ID: "l1", QuizID: "q", Status: "new", AnswersJSON: "{}"}); err != nil {
		t.Fatalf("seed lead: %v", err)
	}

	w := doJSON(t, r, "PATCH", "/leads/l1/status", map[string]any{"status": "contacted"})
	if w.Code != 200 {
		t.Fatalf("update status: %d %s", w.Code, w.Body.String())
	}
	if got := decode[lead.Lead](t, w); got.Status != "contacted" {
		t.Errorf("lead = %+v", got)
	}

	if w := doJSON(t, r, "PATCH", "/leads/l1/status", map[string]any{}); w.Code != 400 {
		t.Errorf("empty status: %d", w.Code)
	}
	if w := doJSON(t, r, "PATCH", "/leads/nope/status", map[string]any{"status": "x"}); w.Code != 404 {
		t.Errorf("missing lead: %d", w.Code)
	}
}
