package api

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/victornm/solarium/internal/domain"
	"github.com/victornm/solarium/internal/errors"
	"github.com/victornm/solarium/internal/teacher"
)

const teacherKey = "teacher"

// authenticate requires a valid bearer token of a teacher that still exists and whose
// stored role is one of roles. A wrong role is answered like a missing token.
func (a *API) authenticate(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeError(c, errors.New(errors.CodeUnauthenticated, errors.WithMessagef("missing bearer token")))
			return
		}

		claims, err := a.tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			writeError(c, err)
			return
		}

		id, err := claims.TeacherID()
		if err != nil {
			writeError(c, errors.New(errors.CodeUnauthenticated,
				errors.WithMessagef("invalid or expired token"),
				errors.WithCause(err),
			))
			return
		}

		t, err := a.ts.GetTeacher(c.Request.Context(), teacher.GetTeacherRequest{ID: id})
		if errors.Is(err, errors.CodeNotFound) {
			writeError(c, errors.New(errors.CodeUnauthenticated,
				errors.WithMessagef("invalid or expired token"),
				errors.WithCause(err),
			))
			return
		}
		if err != nil {
			writeError(c, err)
			return
		}

		if !slices.Contains(roles, t.Role) {
			writeError(c, errors.New(errors.CodeUnauthenticated,
				errors.WithMessagef("role %s is not allowed to access this resource", t.Role),
			))
			return
		}

		c.Set(teacherKey, t)
		c.Next()
	}
}

// currentTeacher returns the teacher loaded by authenticate.
func currentTeacher(c *gin.Context) (*domain.Teacher, error) {
	v, ok := c.Get(teacherKey)
	if !ok {
		return nil, errors.New(errors.CodeUnauthenticated)
	}
	return v.(*domain.Teacher), nil
}
