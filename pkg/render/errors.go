package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-regform/pkg/processor"
	"github.com/goliatone/go-regform/pkg/validation"
)

// FieldErrors converts a validation result into the per-field message map
// renderers consume.
func FieldErrors(result validation.Result) map[string][]string {
	if len(result) == 0 {
		return nil
	}
	out := make(map[string][]string, len(result))
	for field, messages := range result.Messages() {
		if normalized := normalizeMessages(messages); len(normalized) > 0 {
			out[field] = normalized
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// RejectedSummary is the form-level message shown above a rejected form.
func RejectedSummary(result validation.Result) string {
	switch n := len(result); n {
	case 0:
		return ""
	case 1:
		return "Please correct the highlighted field below."
	default:
		return fmt.Sprintf("Please correct the %d highlighted fields below.", n)
	}
}

// OptionsFor fills Values and Errors from an outcome. Rejected outcomes echo
// the original values and add a form-level summary; accepted ones carry the
// sanitized values.
func OptionsFor(outcome processor.Outcome, base RenderOptions) RenderOptions {
	switch o := outcome.(type) {
	case processor.Rejected:
		base.Values = o.Submission.Values()
		base.Errors = FieldErrors(o.Errors)
		base.FormErrors = MergeFormErrors(base.FormErrors, RejectedSummary(o.Errors))
	case processor.Accepted:
		base.Values = o.Submission.Values()
		base.Errors = nil
		base.FormErrors = nil
	}
	return base
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
