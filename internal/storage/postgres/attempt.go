package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/victornm/solarium/internal/domain"
)

func (s *Store) SaveAttempt(ctx context.Context, a *domain.Attempt) error {
	const stmt = `
INSERT INTO attempts (id, quiz_id, player, results, correct, total, points, max_points, percentage, submit_time)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	_, err := s.db.Exec(ctx, stmt,
		a.ID, a.QuizID, a.Player, a.Results, a.Correct, a.Total, a.Points, a.MaxPoints, a.Percentage, a.SubmitTime,
	)
	return convert(err, "quiz: id=%d", a.QuizID)
}

// ListAttempts returns the attempts of a player, newest first. A limit <= 0 means no limit.
func (s *Store) ListAttempts(ctx context.Context, player string, limit int) ([]domain.Attempt, error) {
	const stmt = `
SELECT id, quiz_id, player, results, correct, total, points, max_points, percentage, submit_time
FROM attempts
WHERE player = $1
ORDER BY submit_time DESC
LIMIT NULLIF($2, 0);`

	if limit < 0 {
		limit = 0
	}

	rows, err := s.db.Query(ctx, stmt, player, limit)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(r pgx.CollectableRow) (domain.Attempt, error) {
		var a domain.Attempt
		err := r.Scan(&a.ID, &a.QuizID, &a.Player, &a.Results, &a.Correct, &a.Total, &a.Points, &a.MaxPoints,
			&a.Percentage, &a.SubmitTime)
		return a, err
	})
}

// QuizStats aggregates attempts for every quiz, including quizzes nobody attempted yet.
func (s *Store) QuizStats(ctx context.Context) ([]domain.QuizStats, error) {
	const stmt = `
SELECT q.id, q.title, COUNT(a.id),
	COALESCE(ROUND(AVG(a.percentage), 2), 0),
	COALESCE(MAX(a.percentage), 0)
FROM quizzes q
LEFT JOIN attempts a ON a.quiz_id = q.id
GROUP BY q.id
ORDER BY q.display_order, q.id;`

	rows, err := s.db.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(r pgx.CollectableRow) (domain.QuizStats, error) {
		var st domain.QuizStats
		err := r.Scan(&st.QuizID, &st.Title, &st.Attempts, &st.AveragePercentage, &st.BestPercentage)
		return st, err
	})
}
