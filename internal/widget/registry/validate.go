package registry

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/aussiebroadwan/checkout/internal/widget/domain"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// Validate checks a record before it enters a registry: non-empty printable
// id, a secret long enough to key a session token, and allow-list entries in
// serialized origin form. Secrets never appear in the returned error.
func Validate(rec domain.ClientRecord) error {
	if err := validate.Struct(rec); err != nil {
		return normalizeValidationError(err)
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	if err := v.RegisterValidation("origin", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return domain.IsOrigin(value)
	}); err != nil {
		panic(err)
	}

	return v
}

func normalizeValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	first := validationErrs[0]
	return fmt.Errorf("%s %s", jsonPath(first), validationMessage(first))
}

func jsonPath(fe validator.FieldError) string {
	path := fe.Namespace()
	if idx := strings.Index(path, "."); idx >= 0 {
		path = path[idx+1:]
	}
	if path == "" {
		return fe.Field()
	}
	return path
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("cannot exceed %s characters", fe.Param())
	case "printascii":
		return "must contain printable ASCII only"
	case "origin":
		return "must be a serialized origin like https://shop.example.com (no path or trailing slash)"
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}
