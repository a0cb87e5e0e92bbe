package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/quiz"
)

func CreateQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q quiz.Quiz
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if q.Title == "" || q.Slug == "" {
			http.Error(w, "title and slug required", 400)
			return
		}
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if q.Status == "" {
			q.Status = "draft"
		}
		if err := store.PutQuiz(r.Context(), q); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		_ = json.NewEncoder(w).Encode(q)
	}
}

func GetQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.GetQuiz(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			if errors.Is(err, quiz.ErrNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(q)
	}
}

func ListQuizzesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := quiz.ListOpts{
			Q:      r.URL.Query().Get("q"),
			Status: r.URL.Query().Get("status"),
		}
		opts.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
		opts.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

		out, err := store.ListQuizzes(r.Context(), opts)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

func DeleteQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteQuiz(r.Context(), chi.URLParam(r, "quizID")); err != nil {
			if errors.Is(err, quiz.ErrNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
