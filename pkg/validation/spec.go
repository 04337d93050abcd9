package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-regform/pkg/submission"
)

// ErrUnknownRule is returned by Lookup for rule names it does not know.
var ErrUnknownRule = errors.New("validation: unknown rule")

// FieldSpec declares how one form field is validated. Variants are lists of
// FieldSpecs, so a new form is data rather than code.
type FieldSpec struct {
	Name            string
	Label           string
	Required        bool
	RequiredMessage string
	// Multi marks fields posted as several values (sports[], hobbies[]). Rules
	// run against every value.
	Multi bool
	// Placeholders lists values that count as "nothing chosen", such as the
	// "Select a Program" option of a select input.
	Placeholders []string
	Rules        []Rule
}

// Check evaluates the spec against sub. Only the first failing rule is
// reported.
func (f FieldSpec) Check(sub submission.Submission) (FieldError, bool) {
	if f.Multi {
		return f.checkList(sub.List(f.Name))
	}
	return f.checkValue(sub.Value(f.Name))
}

func (f FieldSpec) checkValue(raw string) (FieldError, bool) {
	value := strings.TrimSpace(raw)
	if f.isPlaceholder(value) {
		value = ""
	}
	if value == "" {
		if f.Required {
			return f.requiredError(), true
		}
		return FieldError{}, false
	}
	for _, rule := range f.Rules {
		if rule.Check == nil || rule.Check(value) {
			continue
		}
		return f.ruleError(rule), true
	}
	return FieldError{}, false
}

func (f FieldSpec) checkList(raw []string) (FieldError, bool) {
	values := make([]string, 0, len(raw))
	for _, value := range raw {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" || f.isPlaceholder(trimmed) {
			continue
		}
		values = append(values, trimmed)
	}
	if len(values) == 0 {
		if f.Required {
			return f.requiredError(), true
		}
		return FieldError{}, false
	}
	for _, rule := range f.Rules {
		if rule.Check == nil {
			continue
		}
		for _, value := range values {
			if !rule.Check(value) {
				return f.ruleError(rule), true
			}
		}
	}
	return FieldError{}, false
}

func (f FieldSpec) isPlaceholder(value string) bool {
	for _, placeholder := range f.Placeholders {
		if value == strings.TrimSpace(placeholder) {
			return true
		}
	}
	return false
}

func (f FieldSpec) requiredError() FieldError {
	message := strings.TrimSpace(f.RequiredMessage)
	if message == "" {
		message = fmt.Sprintf("%s is required.", f.label())
	}
	return FieldError{Field: f.Name, Kind: KindRequiredField, Message: message}
}

func (f FieldSpec) ruleError(rule Rule) FieldError {
	message := strings.TrimSpace(rule.Message)
	if message == "" {
		message = fmt.Sprintf("%s is invalid.", f.label())
	}
	return FieldError{Field: f.Name, Kind: rule.Kind, Message: message}
}

func (f FieldSpec) label() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.Name
}

// Validate runs every spec independently and collects all failures. It never
// short-circuits across fields.
func Validate(specs []FieldSpec, sub submission.Submission) Result {
	result := Result{}
	for _, spec := range specs {
		if strings.TrimSpace(spec.Name) == "" {
			continue
		}
		if err, failed := spec.Check(sub); failed {
			result[spec.Name] = err
		}
	}
	return result
}
