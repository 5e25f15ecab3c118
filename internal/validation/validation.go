// Package validation checks struct `validate` tags with go-playground/validator
// and reports failures as apperror validation errors.
//
// The same tags guard three places: request bodies in the dev API, response
// bodies in the HTTP client, and form input in the view-models.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/realspace/realspace/internal/apperror"
)

// Validator wraps a configured *validator.Validate. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator that names fields by their json tag and treats
// `required` on a nested struct as "must not be the zero value".
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Struct validates s. On failure the returned error wraps apperror.ErrValidation;
// its Field is the first offending field and its Message lists every failure.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validation: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldPath(fe)+" "+friendlyMessage(fe))
	}
	return apperror.ValidationFailed(fieldPath(fieldErrs[0]), strings.Join(msgs, "; "))
}

// fieldPath drops the top-level struct name: "PostResponse.author.id" -> "author.id".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
