package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a field validation failure.
type Kind string

const (
	KindRequiredField Kind = "RequiredField"
	KindInvalidFormat Kind = "InvalidFormat"
	KindOutOfRange    Kind = "OutOfRange"
	KindTooLong       Kind = "TooLong"
)

// FieldError is the single message kept for a failing field.
type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("validation: %s: %s", e.Field, e.Kind)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// Result maps field names to their failure. An empty Result means the
// submission is valid.
type Result map[string]FieldError

// Valid reports whether no field failed.
func (r Result) Valid() bool {
	return len(r) == 0
}

// Has reports whether field failed with the given kind.
func (r Result) Has(field string, kind Kind) bool {
	err, ok := r[field]
	return ok && err.Kind == kind
}

// Fields returns the failing field names in sorted order.
func (r Result) Fields() []string {
	if len(r) == 0 {
		return nil
	}
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Messages converts the result into the field -> messages shape renderers
// consume for inline errors.
func (r Result) Messages() map[string][]string {
	if len(r) == 0 {
		return nil
	}
	out := make(map[string][]string, len(r))
	for name, err := range r {
		message := strings.TrimSpace(err.Message)
		if message == "" {
			message = string(err.Kind)
		}
		out[name] = []string{message}
	}
	return out
}

// List returns the failures ordered by field name.
func (r Result) List() []FieldError {
	names := r.Fields()
	if len(names) == 0 {
		return nil
	}
	out := make([]FieldError, 0, len(names))
	for _, name := range names {
		out = append(out, r[name])
	}
	return out
}
