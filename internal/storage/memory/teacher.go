package memory

import (
	"context"
	"sort"

	"github.com/victornm/solarium/internal/domain"
	"github.com/victornm/solarium/internal/errors"
)

func (s *Store) CreateTeacher(_ context.Context, t *domain.Teacher) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(t.Email, 0) {
		return errors.New(errors.CodeAlreadyExists)
	}

	s.seq.teacher++
	t.ID = s.seq.teacher
	s.teachers[t.ID] = cloneTeacher(*t)
	return nil
}

func (s *Store) GetTeacher(_ context.Context, id int64) (*domain.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teachers[id]
	if !ok {
		return nil, errors.NotFound("teacher not found: id=%d", id)
	}

	t = cloneTeacher(t)
	return &t, nil
}

func (s *Store) GetTeacherByEmail(_ context.Context, email string) (*domain.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.teachers {
		if t.Email == email {
			t = cloneTeacher(t)
			return &t, nil
		}
	}

	return nil, errors.NotFound("teacher not found: email=%s", email)
}

func (s *Store) ListTeachers(_ context.Context) ([]domain.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ts := make([]domain.Teacher, 0, len(s.teachers))
	for _, t := range s.teachers {
		ts = append(ts, cloneTeacher(t))
	}

	sort.Slice(ts, func(i, j int) bool { return ts[i].ID < ts[j].ID })
	return ts, nil
}

func (s *Store) UpdateTeacher(_ context.Context, t *domain.Teacher) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.teachers[t.ID]
	if !ok {
		return errors.NotFound("teacher not found: id=%d", t.ID)
	}
	if s.emailTaken(t.Email, t.ID) {
		return errors.New(errors.CodeAlreadyExists)
	}

	t.CreatedAt = old.CreatedAt
	s.teachers[t.ID] = cloneTeacher(*t)
	return nil
}

func (s *Store) DeleteTeacher(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teachers[id]; !ok {
		return errors.NotFound("teacher not found: id=%d", id)
	}

	delete(s.teachers, id)
	return nil
}

func (s *Store) CountTeachers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.teachers), nil
}

func (s *Store) emailTaken(email string, except int64) bool {
	for id, t := range s.teachers {
		if id != except && t.Email == email {
			return true
		}
	}
	return false
}

func cloneTeacher(t domain.Teacher) domain.Teacher {
	t.PasswordHash = append([]byte(nil), t.PasswordHash...)
	return t
}
