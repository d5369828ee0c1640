package attempt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/victornm/solarium/internal/domain"
	"github.com/victornm/solarium/internal/errors"
	"github.com/victornm/solarium/internal/event"
	"github.com/victornm/solarium/internal/quiz"
	"github.com/victornm/solarium/internal/validation"
)

const defaultHistoryLimit = 50

var submittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "solarium",
	Name:      "quiz_attempts_submitted_total",
	Help:      "Number of graded quiz attempts.",
}, []string{"result"})

// Repository persists attempts.
type Repository interface {
	SaveAttempt(ctx context.Context, a *domain.Attempt) error
	ListAttempts(ctx context.Context, player string, limit int) ([]domain.Attempt, error)
	QuizStats(ctx context.Context) ([]domain.QuizStats, error)
}

// Quizzes returns an active quiz with its active questions in play order.
type Quizzes interface {
	GetActiveQuiz(ctx context.Context, req quiz.GetQuizRequest) (*domain.Quiz, error)
}

type Config struct {
	EventBus *event.Bus
	Quizzes  Quizzes
	Repo     Repository
	Now      func() time.Time
}

type Service struct {
	eb      *event.Bus
	quizzes Quizzes
	repo    Repository
	now     func() time.Time
}

func NewService(c Config) *Service {
	s := &Service{
		eb:      c.EventBus,
		quizzes: c.Quizzes,
		repo:    c.Repo,
		now:     c.Now,
	}

	if s.now == nil {
		s.now = time.Now
	}

	return s
}

// SubmitRequest carries a player's answers. Answers are matched by position with the quiz
// questions, missing answers count as wrong.
type SubmitRequest struct {
	QuizID  int64    `json:"-"`
	Player  string   `json:"player" validate:"required,max=64"`
	Answers []string `json:"answers" validate:"max=500,dive,max=255"`
}

// Submit grades the answers against the quiz, stores the attempt and announces it.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*domain.Attempt, error) {
	req.Player = strings.TrimSpace(req.Player)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	q, err := s.quizzes.GetActiveQuiz(ctx, quiz.GetQuizRequest{ID: req.QuizID})
	if err != nil {
		return nil, err
	}

	if len(q.Questions) == 0 {
		return nil, errors.InvalidArgument("quiz has no questions: id=%d", q.ID)
	}
	if len(req.Answers) > len(q.Questions) {
		return nil, errors.InvalidArgument("got %d answers for %d questions", len(req.Answers), len(q.Questions))
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate attempt ID: %w", err)
	}

	a := Grade(q.Questions, req.Answers)
	a.ID = id.String()
	a.QuizID = q.ID
	a.Player = req.Player
	a.SubmitTime = s.now().UTC()

	if err := s.repo.SaveAttempt(ctx, a); err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}

	result := "partial"
	switch a.Correct {
	case a.Total:
		result = "perfect"
	case 0:
		result = "zero"
	}
	submittedTotal.WithLabelValues(result).Inc()

	s.eb.Publish(ctx, domain.EventAttemptSubmitted{
		Attempt: *a,
	})

	return a, nil
}

// Grade walks the questions in order and scores answers[i] against question i.
// The percentage is the share of correct answers, rounded to 2 decimals.
func Grade(questions []domain.Question, answers []string) *domain.Attempt {
	a := &domain.Attempt{
		Results: make([]domain.AnswerResult, 0, len(questions)),
		Total:   len(questions),
	}

	for i, q := range questions {
		var answer string
		if i < len(answers) {
			answer = answers[i]
		}

		ok := answer != "" && matches(q, answer)
		r := domain.AnswerResult{
			QuestionID:    q.ID,
			Answer:        answer,
			Correct:       ok,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}

		a.MaxPoints += q.Points
		if ok {
			r.Points = q.Points
			a.Correct++
			a.Points += q.Points
		}

		a.Results = append(a.Results, r)
	}

	a.Percentage = decimal.Zero
	if a.Total > 0 {
		a.Percentage = decimal.NewFromInt(int64(a.Correct)).
			Mul(decimal.NewFromInt(100)).
			DivRound(decimal.NewFromInt(int64(a.Total)), 2)
	}

	return a
}

func matches(q domain.Question, answer string) bool {
	switch q.Type {
	case domain.QuestionTypeMultipleChoice:
		return strings.TrimSpace(answer) == q.CorrectAnswer
	default:
		return strings.EqualFold(collapse(answer), collapse(q.CorrectAnswer))
	}
}

// collapse trims s and squeezes inner runs of whitespace into one space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type HistoryRequest struct {
	Player string
	Limit  int
}

// History returns the attempts of a player, newest first.
func (s *Service) History(ctx context.Context, req HistoryRequest) ([]domain.Attempt, error) {
	req.Player = strings.TrimSpace(req.Player)
	if req.Player == "" {
		return nil, errors.InvalidArgument("player is required")
	}
	if req.Limit <= 0 || req.Limit > defaultHistoryLimit {
		req.Limit = defaultHistoryLimit
	}

	return s.repo.ListAttempts(ctx, req.Player, req.Limit)
}

// Stats aggregates attempts per quiz.
func (s *Service) Stats(ctx context.Context) ([]domain.QuizStats, error) {
	return s.repo.QuizStats(ctx)
}
