package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/flow"
	"github.com/pikaleadswork-eng/pikaleads-quiz-system-sub000/internal/quiz"
)

// Service drives quiz-taking sessions: it records answers, asks the flow
// engine what comes next and applies the decision. The engine itself stays a
// pure function; all mutation happens here.
type Service struct {
	quizzes  quiz.Store
	sessions Store
}

func NewService(quizzes quiz.Store, sessions Store) *Service {
	return &Service{quizzes: quizzes, sessions: sessions}
}

// Step is what the UI renders after starting a session or recording an
// answer: the session state plus, while in progress, the question to show.
type Step struct {
	Session  *Session       `json:"session"`
	Question *quiz.Question `json:"question,omitempty"`
}

// Start creates a session positioned on the quiz's first question.
func (s *Service) Start(ctx context.Context, quizID string) (Step, error) {
	qz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return Step{}, err
	}
	return s.start(ctx, qz)
}

// StartBySlug is Start for public quiz links.
func (s *Service) StartBySlug(ctx context.Context, slug string) (Step, error) {
	qz, err := s.quizzes.GetQuizBySlug(ctx, slug)
	if err != nil {
		return Step{}, err
	}
	return s.start(ctx, qz)
}

func (s *Service) start(ctx context.Context, qz quiz.Quiz) (Step, error) {
	first := qz.FirstQuestionID()
	if first == 0 {
		return Step{}, fmt.Errorf("quiz %s has no questions", qz.ID)
	}
	sess := &Session{
		ID:                uuid.NewString(),
		QuizID:            qz.ID,
		Status:            StatusInProgress,
		CurrentQuestionID: first,
		Answers:           flow.Answers{},
		StartedAt:         time.Now().Unix(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return Step{}, err
	}
	return Step{Session: sess, Question: qz.QuestionByID(first)}, nil
}

// Get returns the session and, while in progress, its current question.
func (s *Service) Get(ctx context.Context, id string) (Step, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return Step{}, err
	}
	st := Step{Session: sess}
	if !sess.Finished() {
		if qz, err := s.quizzes.GetQuiz(ctx, sess.QuizID); err == nil {
			st.Question = qz.QuestionByID(sess.CurrentQuestionID)
		}
	}
	return st, nil
}

// Answer records the answer for the session's current question and advances
// the session per the flow engine's decision. Answering a question other
// than the current one is a caller contract violation and is rejected;
// re-answering the current question with the same value is a harmless retry.
func (s *Service) Answer(ctx context.Context, sessionID string, questionID int64, value any) (Step, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Step{}, err
	}
	if sess.Finished() {
		return Step{}, ErrFinished
	}
	if questionID != sess.CurrentQuestionID {
		return Step{}, fmt.Errorf("%w: got %d, current is %d", ErrNotCurrentQuestion, questionID, sess.CurrentQuestionID)
	}

	qz, err := s.quizzes.GetQuiz(ctx, sess.QuizID)
	if err != nil {
		return Step{}, err
	}

	sess.Answers[questionID] = value

	decision, err := flow.Resolve(sess.CurrentQuestionID, sess.Answers, qz.FlowQuestions())
	if err != nil {
		// The current question vanished from the quiz under the session.
		// Resolve's error contract flags this as a state bug upstream.
		if errors.Is(err, flow.ErrQuestionNotFound) {
			return Step{}, fmt.Errorf("session %s out of sync with quiz %s: %w", sess.ID, qz.ID, err)
		}
		return Step{}, err
	}

	switch decision.Kind {
	case flow.DecisionNext:
		sess.CurrentQuestionID = decision.NextQuestionID
	case flow.DecisionComplete:
		sess.Status = StatusCompleted
		sess.CurrentQuestionID = 0
		sess.CompletedAt = time.Now().Unix()
	case flow.DecisionCompleteWithResult:
		sess.Status = StatusCompletedWithResult
		sess.CurrentQuestionID = 0
		sess.ResultID = decision.ResultID
		sess.CompletedAt = time.Now().Unix()
	}

	if err := s.sessions.Put(ctx, sess); err != nil {
		return Step{}, err
	}

	st := Step{Session: sess}
	if !sess.Finished() {
		st.Question = qz.QuestionByID(sess.CurrentQuestionID)
	}
	return st, nil
}
