// Package validation validates request structs with go-playground/validator and reports
// failures as InvalidArgument errors keyed by JSON field name.
package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/victornm/solarium/internal/errors"
)

var (
	validate = newValidator()

	slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// An empty value passes so that optional pointer fields can be cleared.
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || slugRegex.MatchString(s)
	})

	return v
}

// Struct validates s and returns an InvalidArgument error describing every failing field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !stderrors.As(err, &ves) {
		return errors.Internal(fmt.Errorf("validate: %w", err))
	}

	opts := []errors.Option{errors.WithMessagef("invalid request"), errors.WithCause(err)}
	for _, fe := range ves {
		opts = append(opts, errors.WithField(fe.Field(), message(fe)))
	}

	return errors.New(errors.CodeInvalidArgument, opts...)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "slug":
		return "must contain only lowercase letters, digits and dashes"
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
