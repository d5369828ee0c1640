package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/victornm/solarium/internal/errors"
)

type errorResponse struct {
	Error *errors.Error `json:"error"`
}

// writeError converts err and writes it as the response body. Internal errors are logged and
// replaced by a generic message.
func writeError(c *gin.Context, err error) {
	e := errors.Convert(err)

	if e.Code == errors.CodeInternal {
		slog.ErrorContext(c.Request.Context(), "api: request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		e = errors.New(errors.CodeInternal, errors.WithMessagef("internal server error"))
	}

	c.AbortWithStatusJSON(e.HTTPStatusCode(), errorResponse{Error: e})
}

// bindJSON decodes the request body into req.
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("invalid JSON body"),
			errors.WithCause(err),
		)
	}
	return nil
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("invalid %s: %q", name, c.Param(name)),
			errors.WithField(name, "must be a positive integer"),
		)
	}
	return id, nil
}

// queryFloat reads a float query parameter, def is used when it is absent.
func queryFloat(c *gin.Context, name string, def float64) (float64, error) {
	v, ok := c.GetQuery(name)
	if !ok || v == "" {
		return def, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("invalid %s: %q", name, v),
			errors.WithField(name, "must be a number"),
		)
	}
	return f, nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	v, ok := c.GetQuery(name)
	if !ok || v == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("invalid %s: %q", name, v),
			errors.WithField(name, "must be an integer"),
		)
	}
	return n, nil
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
