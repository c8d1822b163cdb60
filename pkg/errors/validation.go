package errors

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// validate is the shared struct validator. It is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs the `validate` struct tags on v and converts the first
// failure into an INVALID_DIAGRAM error naming the offending field.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return Wrap(ErrCodeInvalidDiagram, err, "validation failed")
	}
	return New(ErrCodeInvalidDiagram, "%s", describeFieldError(fieldErrs[0]))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt", "gte", "min":
		return fmt.Sprintf("%s must be at least %s (got %v)", field, fe.Param(), fe.Value())
	case "lt", "lte", "max":
		return fmt.Sprintf("%s must be at most %s (got %v)", field, fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got %v)", field, fe.Param(), fe.Value())
	case "hexcolor", "color":
		return fmt.Sprintf("%s must be a color like #RRGGBB (got %v)", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}

// ValidateID validates a node, connection or board identifier.
// Identifiers end up in cache keys, store keys and URLs, so they are kept to
// printable characters without separators.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "id %q contains whitespace or control characters", id)
		}
	}

	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "id %q contains path characters", id)
	}

	return nil
}
