package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/quiz"
	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/session"
)

func StartSessionHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuizID string `json:"quiz_id"`
			Slug   string `json:"slug"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}

		var (
			st  session.Step
			err error
		)
		switch {
		case req.QuizID != "":
			st, err = svc.Start(r.Context(), req.QuizID)
		case req.Slug != "":
			st, err = svc.StartBySlug(r.Context(), req.Slug)
		default:
			http.Error(w, "quiz_id or slug required", 400)
			return
		}
		if err != nil {
			if errors.Is(err, quiz.ErrNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 400)
			return
		}
		_ = json.NewEncoder(w).Encode(st)
	}
}

func GetSessionHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Get(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(st)
	}
}

// AnswerHandler records one answer and returns the next step: either the
// question to render or the completed session. Data-integrity problems in
// authored rules never surface here; the flow engine degrades them to
// sequential navigation.
func AnswerHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		var req struct {
			QuestionID int64 `json:"question_id"`
			Value      any   `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.QuestionID == 0 {
			http.Error(w, "question_id required", 400)
			return
		}

		st, err := svc.Answer(r.Context(), id, req.QuestionID, req.Value)
		if err != nil {
			switch {
			case errors.Is(err, session.ErrNotFound):
				http.Error(w, err.Error(), 404)
			case errors.Is(err, session.ErrNotCurrentQuestion), errors.Is(err, session.ErrFinished):
				http.Error(w, err.Error(), 409)
			default:
				http.Error(w, err.Error(), 500)
			}
			return
		}
		_ = json.NewEncoder(w).Encode(st)
	}
}
