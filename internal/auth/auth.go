package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/victornm/solarium/internal/domain"
	"github.com/victornm/solarium/internal/errors"
)

const (
	defaultTTL = 24 * time.Hour
	issuer     = "solarium"
)

type Config struct {
	Secret string
	TTL    time.Duration
	// Now is used to stamp and verify tokens, defaults to time.Now.
	Now func() time.Time
}

// Claims carried by an access token.
type Claims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// TeacherID returns the subject as a teacher ID.
func (c Claims) TeacherID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// Tokens issues and verifies HS256 signed access tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(c Config) *Tokens {
	t := &Tokens{
		secret: []byte(c.Secret),
		ttl:    c.TTL,
		now:    c.Now,
	}

	if t.ttl <= 0 {
		t.ttl = defaultTTL
	}
	if t.now == nil {
		t.now = time.Now
	}

	return t
}

// Issue returns a signed token for the teacher and its expiry.
func (t *Tokens) Issue(teacher domain.Teacher) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(teacher.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: teacher.Email,
		Role:  teacher.Role,
	}

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return s, exp, nil
}

// Verify parses the token and checks signature, issuer and expiry.
func (t *Tokens) Verify(token string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(tk *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, errors.New(errors.CodeUnauthenticated,
			errors.WithMessagef("invalid or expired token"),
			errors.WithCause(err),
		)
	}

	if !claims.Role.Valid() {
		return nil, errors.New(errors.CodeUnauthenticated, errors.WithMessagef("invalid or expired token"))
	}

	return &claims, nil
}

// HashPassword hashes a plain password with bcrypt.
func HashPassword(password string) ([]byte, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return h, nil
}

// CheckPassword reports whether password matches the hash.
func CheckPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
