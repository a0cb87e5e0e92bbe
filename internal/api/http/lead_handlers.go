package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/lead"
	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/session"
)

// SubmitLeadHandler runs the lead pipeline for a completed session: it takes
// the contact form, pairs it with the session's collected answers and hands
// the result to CRM channels.
func SubmitLeadHandler(svc *session.Service, pipeline *lead.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")
		var req struct {
			Name        string `json:"name"`
			Phone       string `json:"phone"`
			Email       string `json:"email"`
			Telegram    string `json:"telegram"`
			UTMSource   string `json:"utm_source"`
			UTMCampaign string `json:"utm_campaign"`
			UTMKeyword  string `json:"utm_keyword"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}

		st, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		if !st.Session.Finished() {
			http.Error(w, "session is not completed", 409)
			return
		}

		l, err := pipeline.Submit(r.Context(), lead.Submission{
			QuizID:      st.Session.QuizID,
			SessionID:   st.Session.ID,
			Answers:     st.Session.Answers,
			ResultID:    st.Session.ResultID,
			Name:        req.Name,
			Phone:       req.Phone,
			Email:       req.Email,
			Telegram:    req.Telegram,
			UTMSource:   req.UTMSource,
			UTMCampaign: req.UTMCampaign,
			UTMKeyword:  req.UTMKeyword,
		})
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(l)
	}
}

func ListLeadsHandler(store lead.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := lead.ListOpts{
			QuizID: r.URL.Query().Get("quiz_id"),
			Status: r.URL.Query().Get("status"),
		}
		opts.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
		opts.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

		out, err := store.ListLeads(r.Context(), opts)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

func GetLeadHandler(store lead.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := store.GetLead(r.Context(), chi.URLParam(r, "leadID"))
		if err != nil {
			if errors.Is(err, lead.ErrNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(l)
	}
}

func UpdateLeadStatusHandler(store lead.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
			http.Error(w, "status required", 400)
			return
		}
		l, err := store.UpdateStatus(r.Context(), chi.URLParam(r, "leadID"), req.Status)
		if err != nil {
			if errors.Is(err, lead.ErrNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(l)
	}
}

func LeadHistoryHandler(store lead.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := store.ListEvents(r.Context(), chi.URLParam(r, "leadID"))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(events)
	}
}
