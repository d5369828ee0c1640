package teacher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/victornm/solarium/internal/auth"
	"github.com/victornm/solarium/internal/domain"
	"github.com/victornm/solarium/internal/errors"
	"github.com/victornm/solarium/internal/validation"
)

// Repository persists teachers. CreateTeacher and UpdateTeacher return AlreadyExists when the
// email is taken, lookups return NotFound.
type Repository interface {
	CreateTeacher(ctx context.Context, t *domain.Teacher) error
	GetTeacher(ctx context.Context, id int64) (*domain.Teacher, error)
	GetTeacherByEmail(ctx context.Context, email string) (*domain.Teacher, error)
	ListTeachers(ctx context.Context) ([]domain.Teacher, error)
	UpdateTeacher(ctx context.Context, t *domain.Teacher) error
	DeleteTeacher(ctx context.Context, id int64) error
	CountTeachers(ctx context.Context) (int, error)
}

type Config struct {
	Repo   Repository
	Tokens *auth.Tokens
	Now    func() time.Time
}

type Service struct {
	repo   Repository
	tokens *auth.Tokens
	now    func() time.Time
}

func NewService(c Config) *Service {
	s := &Service{
		repo:   c.Repo,
		tokens: c.Tokens,
		now:    c.Now,
	}

	if s.now == nil {
		s.now = time.Now
	}

	return s
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Teacher   domain.Teacher `json:"teacher"`
}

// Login checks the credentials and issues an access token. Unknown emails and wrong passwords
// are reported the same way.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	invalid := errors.New(errors.CodeUnauthenticated, errors.WithMessagef("invalid email or password"))

	t, err := s.repo.GetTeacherByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, errors.CodeNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}

	if !auth.CheckPassword(t.PasswordHash, req.Password) {
		return nil, invalid
	}

	token, exp, err := s.tokens.Issue(*t)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		Teacher:   *t,
	}, nil
}

type CreateTeacherRequest struct {
	Email    string      `json:"email" validate:"required,email,max=255"`
	Password string      `json:"password" validate:"required,min=8,max=72"`
	Name     string      `json:"name" validate:"required,max=255"`
	Role     domain.Role `json:"role" validate:"omitempty,oneof=teacher admin"`
}

func (s *Service) CreateTeacher(ctx context.Context, req CreateTeacherRequest) (*domain.Teacher, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Role == "" {
		req.Role = domain.RoleTeacher
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	t := &domain.Teacher{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateTeacher(ctx, t); err != nil {
		return nil, emailTaken(err, req.Email)
	}

	return t, nil
}

type GetTeacherRequest struct {
	ID int64
}

func (s *Service) GetTeacher(ctx context.Context, req GetTeacherRequest) (*domain.Teacher, error) {
	return s.repo.GetTeacher(ctx, req.ID)
}

func (s *Service) ListTeachers(ctx context.Context) ([]domain.Teacher, error) {
	return s.repo.ListTeachers(ctx)
}

// UpdateTeacherRequest changes only the fields that are set.
type UpdateTeacherRequest struct {
	ID       int64        `json:"-"`
	Email    *string      `json:"email" validate:"omitempty,email,max=255"`
	Password *string      `json:"password" validate:"omitempty,min=8,max=72"`
	Name     *string      `json:"name" validate:"omitempty,min=1,max=255"`
	Role     *domain.Role `json:"role" validate:"omitempty,oneof=teacher admin"`
}

func (s *Service) UpdateTeacher(ctx context.Context, req UpdateTeacherRequest) (*domain.Teacher, error) {
	if req.Email != nil {
		e := normalizeEmail(*req.Email)
		req.Email = &e
	}
	if req.Name != nil {
		n := strings.TrimSpace(*req.Name)
		req.Name = &n
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	t, err := s.repo.GetTeacher(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		t.Email = *req.Email
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Role != nil {
		t.Role = *req.Role
	}
	if req.Password != nil {
		if t.PasswordHash, err = auth.HashPassword(*req.Password); err != nil {
			return nil, err
		}
	}
	t.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateTeacher(ctx, t); err != nil {
		return nil, emailTaken(err, t.Email)
	}

	return t, nil
}

type DeleteTeacherRequest struct {
	ID int64
	// ActorID is the teacher performing the deletion.
	ActorID int64
}

func (s *Service) DeleteTeacher(ctx context.Context, req DeleteTeacherRequest) error {
	if req.ID == req.ActorID {
		return errors.InvalidArgument("you cannot delete your own account")
	}

	return s.repo.DeleteTeacher(ctx, req.ID)
}

type EnsureAdminRequest struct {
	Email    string
	Password string
	Name     string
}

// EnsureAdmin creates the bootstrap admin when there are no teachers yet.
// It returns true when an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, req EnsureAdminRequest) (bool, error) {
	n, err := s.repo.CountTeachers(ctx)
	if err != nil {
		return false, fmt.Errorf("count teachers: %w", err)
	}

	if n > 0 {
		return false, nil
	}

	if req.Name == "" {
		req.Name = "Administrator"
	}

	t, err := s.CreateTeacher(ctx, CreateTeacherRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}

	slog.InfoContext(ctx, "teacher: bootstrap admin created", "email", t.Email)
	return true, nil
}

func emailTaken(err error, email string) error {
	if errors.Is(err, errors.CodeAlreadyExists) {
		return errors.New(errors.CodeAlreadyExists,
			errors.WithMessagef("a teacher with this email already exists: %s", email),
			errors.WithField("email", "already exists"),
			errors.WithCause(err),
		)
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
