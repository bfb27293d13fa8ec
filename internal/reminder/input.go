package reminder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// InputError describes why create input was rejected.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateInput normalises in and checks it before it reaches Store.Create.
// The title and description are trimmed; a blank description becomes absent.
func ValidateInput(in Input) (Input, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			in.Description = nil
		} else {
			in.Description = &d
		}
	}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return in, toInputError(verrs[0])
		}
		return in, fmt.Errorf("failed to validate input: %w", err)
	}

	// RFC 3339 cannot represent years outside 0000-9999.
	if y := in.DueDate.UTC().Year(); y < 1 || y > 9999 {
		return in, &InputError{Field: "dueDate", Reason: "year must be between 1 and 9999"}
	}

	return in, nil
}

func toInputError(fe validator.FieldError) *InputError {
	switch fe.Tag() {
	case "required":
		return &InputError{Field: fe.Field(), Reason: "is required"}
	case "max":
		return &InputError{Field: fe.Field(), Reason: fmt.Sprintf("must be at most %s characters", fe.Param())}
	default:
		return &InputError{Field: fe.Field(), Reason: fmt.Sprintf("failed %q check", fe.Tag())}
	}
}
