package memory

import (
	"context"
	"sort"

	"github.com/victornm/solarium/internal/domain"
	"github.com/victornm/solarium/internal/errors"
)

func (s *Store) CreateQuiz(_ context.Context, q *domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.quiz++
	q.ID = s.seq.quiz
	q.Questions = nil
	s.quizzes[q.ID] = *q
	return nil
}

func (s *Store) GetQuiz(_ context.Context, id int64) (*domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quizzes[id]
	if !ok {
		return nil, errors.NotFound("quiz not found: id=%d", id)
	}

	return &q, nil
}

func (s *Store) ListQuizzes(_ context.Context, activeOnly bool) ([]domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedQuizzes(activeOnly), nil
}

func (s *Store) UpdateQuiz(_ context.Context, q *domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.quizzes[q.ID]
	if !ok {
		return errors.NotFound("quiz not found: id=%d", q.ID)
	}

	q.CreatedAt = old.CreatedAt
	stored := *q
	stored.Questions = nil
	s.quizzes[q.ID] = stored
	return nil
}

// DeleteQuiz removes the quiz with its questions and attempts.
func (s *Store) DeleteQuiz(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quizzes[id]; !ok {
		return errors.NotFound("quiz not found: id=%d", id)
	}

	delete(s.quizzes, id)
	for qid, q := range s.questions {
		if q.QuizID == id {
			delete(s.questions, qid)
		}
	}

	kept := s.attempts[:0]
	for _, a := range s.attempts {
		if a.QuizID != id {
			kept = append(kept, a)
		}
	}
	s.attempts = kept

	return nil
}

func (s *Store) CreateQuestion(_ context.Context, q *domain.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quizzes[q.QuizID]; !ok {
		return errors.NotFound("quiz not found: id=%d", q.QuizID)
	}

	s.seq.question++
	q.ID = s.seq.question
	s.questions[q.ID] = cloneQuestion(*q)
	return nil
}

func (s *Store) GetQuestion(_ context.Context, id int64) (*domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.questions[id]
	if !ok {
		return nil, errors.NotFound("question not found: id=%d", id)
	}

	q = cloneQuestion(q)
	return &q, nil
}

// ListQuestions returns the questions of a quiz by order, then by ID.
func (s *Store) ListQuestions(_ context.Context, quizID int64, activeOnly bool) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	qs := make([]domain.Question, 0)
	for _, q := range s.questions {
		if q.QuizID != quizID || (activeOnly && !q.Active) {
			continue
		}
		qs = append(qs, cloneQuestion(q))
	}

	sort.Slice(qs, func(i, j int) bool {
		if qs[i].Order != qs[j].Order {
			return qs[i].Order < qs[j].Order
		}
		return qs[i].ID < qs[j].ID
	})

	return qs, nil
}

func (s *Store) UpdateQuestion(_ context.Context, q *domain.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.questions[q.ID]
	if !ok {
		return errors.NotFound("question not found: id=%d", q.ID)
	}

	q.QuizID = old.QuizID
	q.CreatedAt = old.CreatedAt
	s.questions[q.ID] = cloneQuestion(*q)
	return nil
}

func (s *Store) DeleteQuestion(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return errors.NotFound("question not found: id=%d", id)
	}

	delete(s.questions, id)
	return nil
}

// sortedQuizzes must be called with the lock held.
func (s *Store) sortedQuizzes(activeOnly bool) []domain.Quiz {
	qs := make([]domain.Quiz, 0, len(s.quizzes))
	for _, q := range s.quizzes {
		if activeOnly && !q.Active {
			continue
		}
		qs = append(qs, q)
	}

	sort.Slice(qs, func(i, j int) bool {
		if qs[i].DisplayOrder != qs[j].DisplayOrder {
			return qs[i].DisplayOrder < qs[j].DisplayOrder
		}
		return qs[i].ID < qs[j].ID
	})

	return qs
}

func cloneQuestion(q domain.Question) domain.Question {
	if q.Options != nil {
		q.Options = append([]string(nil), q.Options...)
	}
	return q
}
