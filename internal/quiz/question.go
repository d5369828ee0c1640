package quiz

import (
	"context"
	"fmt"
	"strings"

	"github.com/victornm/solarium/internal/domain"
	"github.com/victornm/solarium/internal/errors"
	"github.com/victornm/solarium/internal/validation"
)

const defaultPoints = 1

var trueFalseOptions = []string{"true", "false"}

type CreateQuestionRequest struct {
	QuizID        int64               `json:"-"`
	PlanetID      string              `json:"planet_id" validate:"omitempty,slug"`
	Text          string              `json:"text" validate:"required,max=1000"`
	Type          domain.QuestionType `json:"type" validate:"required,oneof=multiple_choice true_false text"`
	Options       []string            `json:"options" validate:"max=10,dive,max=255"`
	CorrectAnswer string              `json:"correct_answer" validate:"required,max=255"`
	Explanation   string              `json:"explanation" validate:"max=2000"`
	Points        int                 `json:"points" validate:"min=0,max=100"`
	Order         int                 `json:"order" validate:"min=0"`
	Active        *bool               `json:"active"`
}

// CreateQuestion appends a question to a quiz. Without an explicit order the question goes last.
func (s *Service) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (*domain.Question, error) {
	req.PlanetID = normalizePlanet(req.PlanetID)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetQuiz(ctx, req.QuizID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	q := &domain.Question{
		QuizID:        req.QuizID,
		PlanetID:      req.PlanetID,
		Text:          req.Text,
		Type:          req.Type,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Points:        req.Points,
		Order:         req.Order,
		Active:        req.Active == nil || *req.Active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.checkQuestion(q); err != nil {
		return nil, err
	}

	if q.Order == 0 {
		next, err := s.nextOrder(ctx, req.QuizID)
		if err != nil {
			return nil, err
		}
		q.Order = next
	}

	if err := s.repo.CreateQuestion(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	return q, nil
}

type ListQuestionsRequest struct {
	QuizID int64
}

func (s *Service) ListQuestions(ctx context.Context, req ListQuestionsRequest) ([]domain.Question, error) {
	if _, err := s.repo.GetQuiz(ctx, req.QuizID); err != nil {
		return nil, err
	}

	return s.repo.ListQuestions(ctx, req.QuizID, false)
}

// UpdateQuestionRequest changes only the fields that are set. The whole question is checked
// again after the change, so switching the type may require new options and answer.
type UpdateQuestionRequest struct {
	ID            int64                `json:"-"`
	PlanetID      *string              `json:"planet_id" validate:"omitempty,slug"`
	Text          *string              `json:"text" validate:"omitempty,min=1,max=1000"`
	Type          *domain.QuestionType `json:"type" validate:"omitempty,oneof=multiple_choice true_false text"`
	Options       *[]string            `json:"options" validate:"omitempty,max=10,dive,max=255"`
	CorrectAnswer *string              `json:"correct_answer" validate:"omitempty,min=1,max=255"`
	Explanation   *string              `json:"explanation" validate:"omitempty,max=2000"`
	Points        *int                 `json:"points" validate:"omitempty,min=0,max=100"`
	Order         *int                 `json:"order" validate:"omitempty,min=1"`
	Active        *bool                `json:"active"`
}

func (s *Service) UpdateQuestion(ctx context.Context, req UpdateQuestionRequest) (*domain.Question, error) {
	if req.PlanetID != nil {
		p := normalizePlanet(*req.PlanetID)
		req.PlanetID = &p
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	q, err := s.repo.GetQuestion(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.PlanetID != nil {
		q.PlanetID = *req.PlanetID
	}
	if req.Text != nil {
		q.Text = *req.Text
	}
	if req.Type != nil {
		q.Type = *req.Type
	}
	if req.Options != nil {
		q.Options = *req.Options
	}
	if req.CorrectAnswer != nil {
		q.CorrectAnswer = *req.CorrectAnswer
	}
	if req.Explanation != nil {
		q.Explanation = *req.Explanation
	}
	if req.Points != nil {
		q.Points = *req.Points
	}
	if req.Order != nil {
		q.Order = *req.Order
	}
	if req.Active != nil {
		q.Active = *req.Active
	}
	q.UpdatedAt = s.now().UTC()

	if err := s.checkQuestion(q); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateQuestion(ctx, q); err != nil {
		return nil, err
	}

	return q, nil
}

type DeleteQuestionRequest struct {
	ID int64
}

func (s *Service) DeleteQuestion(ctx context.Context, req DeleteQuestionRequest) error {
	return s.repo.DeleteQuestion(ctx, req.ID)
}

// checkQuestion normalizes q in place and enforces the rules of its type.
func (s *Service) checkQuestion(q *domain.Question) error {
	q.Text = strings.TrimSpace(q.Text)
	q.CorrectAnswer = strings.TrimSpace(q.CorrectAnswer)
	q.Explanation = strings.TrimSpace(q.Explanation)
	q.PlanetID = normalizePlanet(q.PlanetID)
	if q.Points == 0 {
		q.Points = defaultPoints
	}

	invalid := func(field, msg string) error {
		return errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("invalid question: %s", msg),
			errors.WithField(field, msg),
		)
	}

	if q.Text == "" {
		return invalid("text", "this field is required")
	}
	if q.CorrectAnswer == "" {
		return invalid("correct_answer", "this field is required")
	}
	if q.PlanetID != "" && s.planets != nil && !s.planets.HasPlanet(q.PlanetID) {
		return invalid("planet_id", fmt.Sprintf("unknown planet %q", q.PlanetID))
	}

	switch q.Type {
	case domain.QuestionTypeMultipleChoice:
		opts := make([]string, 0, len(q.Options))
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			o = strings.TrimSpace(o)
			if o == "" {
				return invalid("options", "options must not be empty")
			}
			if seen[o] {
				return invalid("options", fmt.Sprintf("duplicate option %q", o))
			}
			seen[o] = true
			opts = append(opts, o)
		}
		if len(opts) < 2 {
			return invalid("options", "multiple choice questions need at least 2 options")
		}
		if !seen[q.CorrectAnswer] {
			return invalid("correct_answer", "the correct answer must be one of the options")
		}
		q.Options = opts

	case domain.QuestionTypeTrueFalse:
		a := strings.ToLower(q.CorrectAnswer)
		if a != "true" && a != "false" {
			return invalid("correct_answer", "must be true or false")
		}
		q.CorrectAnswer = a
		q.Options = append([]string(nil), trueFalseOptions...)

	case domain.QuestionTypeText:
		if len(q.Options) > 0 {
			return invalid("options", "text questions take no options")
		}
		q.Options = nil

	default:
		return invalid("type", fmt.Sprintf("unknown question type %q", q.Type))
	}

	return nil
}

func normalizePlanet(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func (s *Service) nextOrder(ctx context.Context, quizID int64) (int, error) {
	qs, err := s.repo.ListQuestions(ctx, quizID, false)
	if err != nil {
		return 0, fmt.Errorf("list questions: %w", err)
	}

	next := 1
	for _, q := range qs {
		if q.Order >= next {
			next = q.Order + 1
		}
	}

	return next, nil
}
