package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/victornm/solarium/internal/domain"
)

const quizColumns = `id, title, description, active, display_order, created_at, updated_at`

func (s *Store) CreateQuiz(ctx context.Context, q *domain.Quiz) error {
	const stmt = `
INSERT INTO quizzes (title, description, active, display_order, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id;`

	q.Questions = nil
	err := s.db.QueryRow(ctx, stmt, q.Title, q.Description, q.Active, q.DisplayOrder, q.CreatedAt, q.UpdatedAt).Scan(&q.ID)
	return convert(err, "quiz")
}

func (s *Store) GetQuiz(ctx context.Context, id int64) (*domain.Quiz, error) {
	const stmt = `SELECT ` + quizColumns + ` FROM quizzes WHERE id = $1;`

	rows, err := s.db.Query(ctx, stmt, id)
	if err != nil {
		return nil, err
	}

	q, err := pgx.CollectExactlyOneRow(rows, scanQuiz)
	if err != nil {
		return nil, convert(err, "quiz: id=%d", id)
	}
	return &q, nil
}

func (s *Store) ListQuizzes(ctx context.Context, activeOnly bool) ([]domain.Quiz, error) {
	const stmt = `
SELECT ` + quizColumns + `
FROM quizzes
WHERE active OR NOT $1
ORDER BY display_order, id;`

	rows, err := s.db.Query(ctx, stmt, activeOnly)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, scanQuiz)
}

func (s *Store) UpdateQuiz(ctx context.Context, q *domain.Quiz) error {
	const stmt = `
UPDATE quizzes
SET title = $2, description = $3, active = $4, display_order = $5, updated_at = $6
WHERE id = $1
RETURNING created_at;`

	err := s.db.QueryRow(ctx, stmt, q.ID, q.Title, q.Description, q.Active, q.DisplayOrder, q.UpdatedAt).Scan(&q.CreatedAt)
	return convert(err, "quiz: id=%d", q.ID)
}

// DeleteQuiz removes the quiz, questions and attempts go with it through ON DELETE CASCADE.
func (s *Store) DeleteQuiz(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM quizzes WHERE id = $1;`, id)
	return mustAffect(tag, err, "quiz: id=%d", id)
}

func scanQuiz(r pgx.CollectableRow) (domain.Quiz, error) {
	var q domain.Quiz
	err := r.Scan(&q.ID, &q.Title, &q.Description, &q.Active, &q.DisplayOrder, &q.CreatedAt, &q.UpdatedAt)
	return q, err
}
