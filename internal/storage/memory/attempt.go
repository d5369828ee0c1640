package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/victornm/solarium/internal/domain"
	"github.com/victornm/solarium/internal/errors"
)

func (s *Store) SaveAttempt(_ context.Context, a *domain.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quizzes[a.QuizID]; !ok {
		return errors.NotFound("quiz not found: id=%d", a.QuizID)
	}

	c := *a
	c.Results = append([]domain.AnswerResult(nil), a.Results...)
	s.attempts = append(s.attempts, c)
	return nil
}

// ListAttempts returns the attempts of a player, newest first. A limit <= 0 means no limit.
func (s *Store) ListAttempts(_ context.Context, player string, limit int) ([]domain.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	as := make([]domain.Attempt, 0)
	for i := len(s.attempts) - 1; i >= 0; i-- {
		if s.attempts[i].Player == player {
			as = append(as, s.attempts[i])
		}
	}

	sort.SliceStable(as, func(i, j int) bool { return as[i].SubmitTime.After(as[j].SubmitTime) })

	if limit > 0 && len(as) > limit {
		as = as[:limit]
	}
	return as, nil
}

// QuizStats aggregates attempts for every quiz, including quizzes nobody attempted yet.
func (s *Store) QuizStats(_ context.Context) ([]domain.QuizStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type acc struct {
		n    int
		sum  decimal.Decimal
		best decimal.Decimal
	}

	byQuiz := make(map[int64]*acc)
	for _, a := range s.attempts {
		st, ok := byQuiz[a.QuizID]
		if !ok {
			st = &acc{}
			byQuiz[a.QuizID] = st
		}
		st.n++
		st.sum = st.sum.Add(a.Percentage)
		if a.Percentage.GreaterThan(st.best) {
			st.best = a.Percentage
		}
	}

	quizzes := s.sortedQuizzes(false)
	stats := make([]domain.QuizStats, 0, len(quizzes))
	for _, q := range quizzes {
		st := domain.QuizStats{
			QuizID:            q.ID,
			Title:             q.Title,
			AveragePercentage: decimal.Zero,
			BestPercentage:    decimal.Zero,
		}

		if a, ok := byQuiz[q.ID]; ok {
			st.Attempts = a.n
			st.AveragePercentage = a.sum.Div(decimal.NewFromInt(int64(a.n))).Round(2)
			st.BestPercentage = a.best
		}

		stats = append(stats, st)
	}

	return stats, nil
}
