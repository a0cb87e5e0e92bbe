package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	api "github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/api/http"
	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/config"
	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/db"
	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/lead"
	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/quiz"
	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/session"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	quizzes := quiz.NewSQLStore(dbh)
	leads := lead.NewSQLStore(dbh)

	// --- Sessions ---
	var sessions session.Store
	switch cfg.SessionBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis ping failed: %v", err)
		}
		sessions = session.NewRedisStore(rdb, time.Duration(cfg.SessionTTLMin)*time.Minute)
	default:
		sessions = session.NewInMemoryStore()
	}
	svc := session.NewService(quizzes, sessions)
	pipeline := lead.NewPipeline(leads, lead.LogNotifier{})

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Quiz authoring/admin
	r.Post("/quizzes", api.CreateQuizHandler(quizzes))
	r.Get("/quizzes", api.ListQuizzesHandler(quizzes))
	r.Get("/quizzes/{quizID}", api.GetQuizHandler(quizzes))
	r.Delete("/quizzes/{quizID}", api.DeleteQuizHandler(quizzes))

	// Quiz taking
	r.Post("/sessions", api.StartSessionHandler(svc))
	r.Get("/sessions/{sessionID}", api.GetSessionHandler(svc))
	r.Post("/sessions/{sessionID}/answers", api.AnswerHandler(svc))
	r.Post("/sessions/{sessionID}/lead", api.SubmitLeadHandler(svc, pipeline))

	// CRM
	r.Get("/leads", api.ListLeadsHandler(leads))
	r.Get("/leads/{leadID}", api.GetLeadHandler(leads))
	r.Patch("/leads/{leadID}/status", api.UpdateLeadStatusHandler(leads))
	r.Get("/leads/{leadID}/history", api.LeadHistoryHandler(leads))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, sessions=%s)", cfg.HTTPAddr, cfg.DBDriver, cfg.SessionBackend)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
