package submission

import (
	"net/url"
	"sort"
	"strings"
)

// Field names accepted on the inbound form. Multi-value fields are posted with
// a trailing "[]" (sports[], hobbies[]); FromValues accepts both spellings.
const (
	FieldFullName  = "fullName"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldProgram   = "program"
	FieldBio       = "bio"
	FieldCETNumber = "cetNumber"
	FieldPct10     = "pct10"
	FieldPct12     = "pct12"
	FieldGender    = "gender"
	FieldSports    = "sports"
	FieldHobbies   = "hobbies"
)

var scalarFields = []string{
	FieldFullName,
	FieldEmail,
	FieldPhone,
	FieldProgram,
	FieldBio,
	FieldCETNumber,
	FieldPct10,
	FieldPct12,
	FieldGender,
}

var listFields = []string{FieldSports, FieldHobbies}

// Submission is the immutable set of raw values received from one form post.
// Values are kept exactly as submitted; callers sanitize and validate copies.
type Submission struct {
	scalars map[string]string
	lists   map[string][]string
}

// New builds a Submission from scalar values and multi-value lists. Unknown
// names are kept so variants can define fields beyond the built-in set.
func New(scalars map[string]string, lists map[string][]string) Submission {
	sub := Submission{
		scalars: make(map[string]string, len(scalars)),
		lists:   make(map[string][]string, len(lists)),
	}
	for name, value := range scalars {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		sub.scalars[key] = value
	}
	for name, values := range lists {
		key := normalizeListName(name)
		if key == "" || len(values) == 0 {
			continue
		}
		sub.lists[key] = append([]string(nil), values...)
	}
	return sub
}

// FromValues reads a form-encoded payload. The first value wins for scalar
// fields; list fields keep every non-empty value in submission order.
func FromValues(values url.Values) Submission {
	scalars := make(map[string]string)
	lists := make(map[string][]string)
	for name, raw := range values {
		if len(raw) == 0 {
			continue
		}
		if isListName(name) {
			key := normalizeListName(name)
			for _, value := range raw {
				if strings.TrimSpace(value) == "" {
					continue
				}
				lists[key] = append(lists[key], value)
			}
			continue
		}
		scalars[name] = raw[0]
	}
	return New(scalars, lists)
}

// Value returns the raw scalar value for name, or "" when absent.
func (s Submission) Value(name string) string {
	return s.scalars[name]
}

// List returns a copy of the raw values for a multi-value field.
func (s Submission) List(name string) []string {
	values := s.lists[normalizeListName(name)]
	if len(values) == 0 {
		return nil
	}
	return append([]string(nil), values...)
}

// Has reports whether name was submitted with a non-empty value.
func (s Submission) Has(name string) bool {
	if strings.TrimSpace(s.scalars[name]) != "" {
		return true
	}
	return len(s.lists[normalizeListName(name)]) > 0
}

// Names returns the submitted field names in sorted order.
func (s Submission) Names() []string {
	names := make([]string, 0, len(s.scalars)+len(s.lists))
	for name := range s.scalars {
		names = append(names, name)
	}
	for name := range s.lists {
		if _, dup := s.scalars[name]; dup {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map transforms every value with fn, returning a new Submission. It is how
// sanitized copies are derived without mutating the original.
func (s Submission) Map(fn func(string) string) Submission {
	if fn == nil {
		return s
	}
	scalars := make(map[string]string, len(s.scalars))
	for name, value := range s.scalars {
		scalars[name] = fn(value)
	}
	lists := make(map[string][]string, len(s.lists))
	for name, values := range s.lists {
		mapped := make([]string, 0, len(values))
		for _, value := range values {
			mapped = append(mapped, fn(value))
		}
		lists[name] = mapped
	}
	return New(scalars, lists)
}

// Scalars returns a copy of the single-value fields.
func (s Submission) Scalars() map[string]string {
	out := make(map[string]string, len(s.scalars))
	for name, value := range s.scalars {
		out[name] = value
	}
	return out
}

// Lists returns a copy of the multi-value fields.
func (s Submission) Lists() map[string][]string {
	out := make(map[string][]string, len(s.lists))
	for name, values := range s.lists {
		out[name] = append([]string(nil), values...)
	}
	return out
}

// Values exposes the submission as render prefill data: scalars map to
// strings and lists map to []string.
func (s Submission) Values() map[string]any {
	if len(s.scalars) == 0 && len(s.lists) == 0 {
		return nil
	}
	out := make(map[string]any, len(s.scalars)+len(s.lists))
	for name, value := range s.scalars {
		out[name] = value
	}
	for name, values := range s.lists {
		out[name] = append([]string(nil), values...)
	}
	return out
}

// Encode renders the submission back into form-encoded values, using the
// "name[]" spelling for list fields.
func (s Submission) Encode() url.Values {
	out := url.Values{}
	for name, value := range s.scalars {
		out.Set(name, value)
	}
	for name, values := range s.lists {
		out[name+"[]"] = append([]string(nil), values...)
	}
	return out
}

// ScalarFields lists the built-in single-value field names.
func ScalarFields() []string {
	return append([]string(nil), scalarFields...)
}

// ListFields lists the built-in multi-value field names.
func ListFields() []string {
	return append([]string(nil), listFields...)
}

// IsListField reports whether name is one of the built-in multi-value fields.
func IsListField(name string) bool {
	key := normalizeListName(name)
	for _, field := range listFields {
		if field == key {
			return true
		}
	}
	return false
}

func isListName(name string) bool {
	return strings.HasSuffix(name, "[]") || IsListField(name)
}

func normalizeListName(name string) string {
	return strings.TrimSuffix(strings.TrimSpace(name), "[]")
}
