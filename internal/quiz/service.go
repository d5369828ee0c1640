package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/victornm/solarium/internal/domain"
	"github.com/victornm/solarium/internal/errors"
	"github.com/victornm/solarium/internal/event"
	"github.com/victornm/solarium/internal/validation"
)

// Repository persists quizzes and their questions. Lookups of missing records return NotFound,
// deleting a quiz deletes its questions.
type Repository interface {
	CreateQuiz(ctx context.Context, q *domain.Quiz) error
	GetQuiz(ctx context.Context, id int64) (*domain.Quiz, error)
	ListQuizzes(ctx context.Context, activeOnly bool) ([]domain.Quiz, error)
	UpdateQuiz(ctx context.Context, q *domain.Quiz) error
	DeleteQuiz(ctx context.Context, id int64) error

	CreateQuestion(ctx context.Context, q *domain.Question) error
	GetQuestion(ctx context.Context, id int64) (*domain.Question, error)
	ListQuestions(ctx context.Context, quizID int64, activeOnly bool) ([]domain.Question, error)
	UpdateQuestion(ctx context.Context, q *domain.Question) error
	DeleteQuestion(ctx context.Context, id int64) error
}

// Planets tells whether a planet slug exists.
type Planets interface {
	HasPlanet(slug string) bool
}

type Config struct {
	// EventBus is optional, without it deletions are not announced.
	EventBus *event.Bus
	Repo     Repository
	Planets  Planets
	Now      func() time.Time
}

type Service struct {
	eb      *event.Bus
	repo    Repository
	planets Planets
	now     func() time.Time
}

func NewService(c Config) *Service {
	s := &Service{
		eb:      c.EventBus,
		repo:    c.Repo,
		planets: c.Planets,
		now:     c.Now,
	}

	if s.now == nil {
		s.now = time.Now
	}

	return s
}

type CreateQuizRequest struct {
	Title        string `json:"title" validate:"required,max=255"`
	Description  string `json:"description" validate:"max=2000"`
	Active       *bool  `json:"active"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
}

// CreateQuiz creates a quiz. Quizzes are active unless told otherwise.
func (s *Service) CreateQuiz(ctx context.Context, req CreateQuizRequest) (*domain.Quiz, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	q := &domain.Quiz{
		Title:        req.Title,
		Description:  req.Description,
		Active:       req.Active == nil || *req.Active,
		DisplayOrder: req.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateQuiz(ctx, q); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}

	return q, nil
}

type GetQuizRequest struct {
	ID int64
}

// GetQuiz returns a quiz with all of its questions, including inactive ones and answers.
func (s *Service) GetQuiz(ctx context.Context, req GetQuizRequest) (*domain.Quiz, error) {
	q, err := s.repo.GetQuiz(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	q.Questions, err = s.repo.ListQuestions(ctx, q.ID, false)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return q, nil
}

// ListQuizzes returns every quiz by display order.
func (s *Service) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	return s.repo.ListQuizzes(ctx, false)
}

type UpdateQuizRequest struct {
	ID           int64   `json:"-"`
	Title        *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description  *string `json:"description" validate:"omitempty,max=2000"`
	Active       *bool   `json:"active"`
	DisplayOrder *int    `json:"display_order" validate:"omitempty,min=0"`
}

func (s *Service) UpdateQuiz(ctx context.Context, req UpdateQuizRequest) (*domain.Quiz, error) {
	req.Title = trimPtr(req.Title)
	req.Description = trimPtr(req.Description)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	q, err := s.repo.GetQuiz(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		q.Title = *req.Title
	}
	if req.Description != nil {
		q.Description = *req.Description
	}
	if req.Active != nil {
		q.Active = *req.Active
	}
	if req.DisplayOrder != nil {
		q.DisplayOrder = *req.DisplayOrder
	}
	q.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateQuiz(ctx, q); err != nil {
		return nil, err
	}

	return q, nil
}

type DeleteQuizRequest struct {
	ID int64
}

// DeleteQuiz deletes the quiz together with its questions and publishes quiz.deleted.
func (s *Service) DeleteQuiz(ctx context.Context, req DeleteQuizRequest) error {
	if err := s.repo.DeleteQuiz(ctx, req.ID); err != nil {
		return err
	}

	if s.eb != nil {
		s.eb.Publish(ctx, domain.EventQuizDeleted{QuizID: req.ID})
	}

	return nil
}

// PlayableQuiz is the public view of an active quiz. It never carries answers.
type PlayableQuiz struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Questions   []PlayableQuestion `json:"questions"`
}

type PlayableQuestion struct {
	ID       int64               `json:"id"`
	PlanetID string              `json:"planet_id,omitempty"`
	Text     string              `json:"text"`
	Type     domain.QuestionType `json:"type"`
	Options  []string            `json:"options,omitempty"`
	Points   int                 `json:"points"`
	Order    int                 `json:"order"`
}

// ListActiveQuizzes returns the quizzes visible to players.
func (s *Service) ListActiveQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	return s.repo.ListQuizzes(ctx, true)
}

// GetPlayableQuiz returns an active quiz with its active questions, stripped of answers.
func (s *Service) GetPlayableQuiz(ctx context.Context, req GetQuizRequest) (*PlayableQuiz, error) {
	q, err := s.GetActiveQuiz(ctx, req)
	if err != nil {
		return nil, err
	}

	pq := &PlayableQuiz{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Questions:   make([]PlayableQuestion, 0, len(q.Questions)),
	}

	for _, qs := range q.Questions {
		pq.Questions = append(pq.Questions, PlayableQuestion{
			ID:       qs.ID,
			PlanetID: qs.PlanetID,
			Text:     qs.Text,
			Type:     qs.Type,
			Options:  qs.Options,
			Points:   qs.Points,
			Order:    qs.Order,
		})
	}

	return pq, nil
}

// GetActiveQuiz returns an active quiz with its active questions in play order, answers included.
// Inactive quizzes are reported as not found.
func (s *Service) GetActiveQuiz(ctx context.Context, req GetQuizRequest) (*domain.Quiz, error) {
	q, err := s.repo.GetQuiz(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if !q.Active {
		return nil, errors.NotFound("quiz not found: id=%d", req.ID)
	}

	q.Questions, err = s.repo.ListQuestions(ctx, q.ID, true)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return q, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
