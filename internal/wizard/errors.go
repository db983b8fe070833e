package wizard

import (
	"errors"
	"strings"
)

var (
	// ErrNotFinalStep is returned by Submit when called before the last step.
	ErrNotFinalStep = errors.New("submit is only allowed on the final step")
	// ErrFinalized is returned once the wizard has emitted its profile.
	ErrFinalized = errors.New("wizard already completed")
)

// FieldValidationError reports a single field failing its constraint.
type FieldValidationError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

func (e FieldValidationError) Error() string {
	return string(e.Field) + ": " + e.Message
}

// ValidationErrors is the full set of failing fields, in step order.
type ValidationErrors []FieldValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// Fields returns the failing field names in order.
func (v ValidationErrors) Fields() []Field {
	out := make([]Field, 0, len(v))
	for _, e := range v {
		out = append(out, e.Field)
	}
	return out
}

// Message returns the error message for f, or "" if f is not failing.
func (v ValidationErrors) Message(f Field) string {
	for _, e := range v {
		if e.Field == f {
			return e.Message
		}
	}
	return ""
}
