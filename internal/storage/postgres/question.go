package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/victornm/solarium/internal/domain"
)

const questionColumns = `id, quiz_id, planet_id, text, type, options, correct_answer, explanation, points, sort_order, active, created_at, updated_at`

func (s *Store) CreateQuestion(ctx context.Context, q *domain.Question) error {
	const stmt = `
INSERT INTO questions (quiz_id, planet_id, text, type, options, correct_answer, explanation, points, sort_order, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id;`

	err := s.db.QueryRow(ctx, stmt,
		q.QuizID, q.PlanetID, q.Text, q.Type, options(q.Options), q.CorrectAnswer, q.Explanation,
		q.Points, q.Order, q.Active, q.CreatedAt, q.UpdatedAt,
	).Scan(&q.ID)
	return convert(err, "quiz: id=%d", q.QuizID)
}

func (s *Store) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	const stmt = `SELECT ` + questionColumns + ` FROM questions WHERE id = $1;`

	rows, err := s.db.Query(ctx, stmt, id)
	if err != nil {
		return nil, err
	}

	q, err := pgx.CollectExactlyOneRow(rows, scanQuestion)
	if err != nil {
		return nil, convert(err, "question: id=%d", id)
	}
	return &q, nil
}

// ListQuestions returns the questions of a quiz by order, then by ID.
func (s *Store) ListQuestions(ctx context.Context, quizID int64, activeOnly bool) ([]domain.Question, error) {
	const stmt = `
SELECT ` + questionColumns + `
FROM questions
WHERE quiz_id = $1 AND (active OR NOT $2)
ORDER BY sort_order, id;`

	rows, err := s.db.Query(ctx, stmt, quizID, activeOnly)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, scanQuestion)
}

func (s *Store) UpdateQuestion(ctx context.Context, q *domain.Question) error {
	const stmt = `
UPDATE questions
SET planet_id = $2, text = $3, type = $4, options = $5, correct_answer = $6, explanation = $7,
	points = $8, sort_order = $9, active = $10, updated_at = $11
WHERE id = $1
RETURNING quiz_id, created_at;`

	err := s.db.QueryRow(ctx, stmt,
		q.ID, q.PlanetID, q.Text, q.Type, options(q.Options), q.CorrectAnswer, q.Explanation,
		q.Points, q.Order, q.Active, q.UpdatedAt,
	).Scan(&q.QuizID, &q.CreatedAt)
	return convert(err, "question: id=%d", q.ID)
}

func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM questions WHERE id = $1;`, id)
	return mustAffect(tag, err, "question: id=%d", id)
}

func scanQuestion(r pgx.CollectableRow) (domain.Question, error) {
	var q domain.Question
	err := r.Scan(&q.ID, &q.QuizID, &q.PlanetID, &q.Text, &q.Type, &q.Options, &q.CorrectAnswer, &q.Explanation,
		&q.Points, &q.Order, &q.Active, &q.CreatedAt, &q.UpdatedAt)
	if len(q.Options) == 0 {
		q.Options = nil
	}
	return q, err
}

// options stores a nil slice as an empty array, the column is NOT NULL.
func options(o []string) []string {
	if o == nil {
		return []string{}
	}
	return o
}
