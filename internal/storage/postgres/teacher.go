package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/victornm/solarium/internal/domain"
)

const teacherColumns = `id, email, password_hash, name, role, created_at, updated_at`

func (s *Store) CreateTeacher(ctx context.Context, t *domain.Teacher) error {
	const stmt = `
INSERT INTO teachers (email, password_hash, name, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id;`

	err := s.db.QueryRow(ctx, stmt, t.Email, t.PasswordHash, t.Name, t.Role, t.CreatedAt, t.UpdatedAt).Scan(&t.ID)
	return convert(err, "teacher")
}

func (s *Store) GetTeacher(ctx context.Context, id int64) (*domain.Teacher, error) {
	const stmt = `SELECT ` + teacherColumns + ` FROM teachers WHERE id = $1;`

	rows, err := s.db.Query(ctx, stmt, id)
	if err != nil {
		return nil, err
	}

	t, err := pgx.CollectExactlyOneRow(rows, scanTeacher)
	if err != nil {
		return nil, convert(err, "teacher: id=%d", id)
	}
	return &t, nil
}

func (s *Store) GetTeacherByEmail(ctx context.Context, email string) (*domain.Teacher, error) {
	const stmt = `SELECT ` + teacherColumns + ` FROM teachers WHERE email = $1;`

	rows, err := s.db.Query(ctx, stmt, email)
	if err != nil {
		return nil, err
	}

	t, err := pgx.CollectExactlyOneRow(rows, scanTeacher)
	if err != nil {
		return nil, convert(err, "teacher: email=%s", email)
	}
	return &t, nil
}

func (s *Store) ListTeachers(ctx context.Context) ([]domain.Teacher, error) {
	const stmt = `SELECT ` + teacherColumns + ` FROM teachers ORDER BY id;`

	rows, err := s.db.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, scanTeacher)
}

func (s *Store) UpdateTeacher(ctx context.Context, t *domain.Teacher) error {
	const stmt = `
UPDATE teachers
SET email = $2, password_hash = $3, name = $4, role = $5, updated_at = $6
WHERE id = $1
RETURNING created_at;`

	err := s.db.QueryRow(ctx, stmt, t.ID, t.Email, t.PasswordHash, t.Name, t.Role, t.UpdatedAt).Scan(&t.CreatedAt)
	return convert(err, "teacher: id=%d", t.ID)
}

func (s *Store) DeleteTeacher(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM teachers WHERE id = $1;`, id)
	return mustAffect(tag, err, "teacher: id=%d", id)
}

func (s *Store) CountTeachers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM teachers;`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanTeacher(r pgx.CollectableRow) (domain.Teacher, error) {
	var t domain.Teacher
	err := r.Scan(&t.ID, &t.Email, &t.PasswordHash, &t.Name, &t.Role, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
