// Package sanitize cleans submitted field values before they are echoed back
// on confirmation views or exported.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Field trims surrounding whitespace, drops backslash escapes, and removes any
// markup so the value can be embedded in an HTML response as-is. Markup
// significant characters that survive are entity-escaped. Running Field over
// its own output leaves it unchanged unless the value still holds backslashes.
func Field(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	unslashed := StripSlashes(trimmed)
	return strings.TrimSpace(strictPolicy().Sanitize(unslashed))
}

// List applies Field to every value, dropping entries that end up empty.
func List(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if cleaned := Field(value); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// StripSlashes removes one level of backslash escaping: "\x" becomes "x" and
// "\\" becomes "\". A trailing lone backslash is dropped.
func StripSlashes(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	escaped := false
	for _, r := range value {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func strictPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}
