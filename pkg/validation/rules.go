package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule checks a trimmed, non-empty value. Check returns true when the value
// passes.
type Rule struct {
	Name    string
	Kind    Kind
	Message string
	Check   func(value string) bool
}

// WithMessage returns a copy of the rule reporting msg on failure. Blank
// messages keep the default.
func (r Rule) WithMessage(msg string) Rule {
	if trimmed := strings.TrimSpace(msg); trimmed != "" {
		r.Message = trimmed
	}
	return r
}

// Built-in rule names usable from variant documents.
const (
	RuleLetters    = "letters"
	RuleEmail      = "email"
	RulePhone      = "phone"
	RulePercentage = "percentage"
	RuleMaxLength  = "maxLength"
	RulePattern    = "pattern"
	RuleOneOf      = "oneOf"
)

// MaxBioLength is the character limit applied to free-text bios.
const MaxBioLength = 500

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	// Plain decimals only. Exponents, hex floats and infinities are rejected.
	decimalPattern = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
)

// Letters accepts values made only of letters and whitespace.
func Letters() Rule {
	return Rule{
		Name:    RuleLetters,
		Kind:    KindInvalidFormat,
		Message: "Name should only contain letters and spaces.",
		Check: func(value string) bool {
			for _, r := range value {
				if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
					return false
				}
			}
			return true
		},
	}
}

// Email accepts values shaped like local@domain.tld.
func Email() Rule {
	return Rule{
		Name:    RuleEmail,
		Kind:    KindInvalidFormat,
		Message: "Please enter a valid email address.",
		Check:   emailPattern.MatchString,
	}
}

// Phone normalises the value and accepts 7 to 15 digits with an optional
// leading plus sign.
func Phone() Rule {
	return Rule{
		Name:    RulePhone,
		Kind:    KindInvalidFormat,
		Message: "Please enter a valid phone number (7-15 digits, optional leading +).",
		Check: func(value string) bool {
			return phonePattern.MatchString(NormalizePhone(value))
		},
	}
}

// Percentage accepts decimal values within [0, 100].
func Percentage() Rule {
	return Rule{
		Name:    RulePercentage,
		Kind:    KindOutOfRange,
		Message: "Percentage must be a number between 0 and 100.",
		Check: func(value string) bool {
			if !decimalPattern.MatchString(value) {
				return false
			}
			n, err := strconv.ParseFloat(value, 64)
			if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
				return false
			}
			return n >= 0 && n <= 100
		},
	}
}

// MaxLength rejects values longer than limit characters. Length is counted
// in runes, not bytes, and a CRLF line break counts as one character.
func MaxLength(limit int) Rule {
	return Rule{
		Name:    RuleMaxLength,
		Kind:    KindTooLong,
		Message: fmt.Sprintf("Must be at most %d characters.", limit),
		Check: func(value string) bool {
			value = strings.ReplaceAll(value, "\r\n", "\n")
			return utf8.RuneCountInString(value) <= limit
		},
	}
}

// Pattern accepts values matching expr.
func Pattern(expr *regexp.Regexp) Rule {
	return Rule{
		Name:    RulePattern,
		Kind:    KindInvalidFormat,
		Message: "Please match the requested format.",
		Check: func(value string) bool {
			return expr != nil && expr.MatchString(value)
		},
	}
}

// OneOf accepts only the listed option values.
func OneOf(options ...string) Rule {
	allowed := make(map[string]struct{}, len(options))
	for _, option := range options {
		allowed[strings.TrimSpace(option)] = struct{}{}
	}
	return Rule{
		Name:    RuleOneOf,
		Kind:    KindInvalidFormat,
		Message: "Please choose one of the listed options.",
		Check: func(value string) bool {
			_, ok := allowed[value]
			return ok
		},
	}
}

// NormalizePhone strips every character except digits and a leading plus
// sign. Normalising an already normalised number returns it unchanged.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lookup resolves a rule by name for variant documents. param carries the
// rule argument (the limit for maxLength, the expression for pattern).
func Lookup(name, param string) (Rule, error) {
	switch strings.TrimSpace(name) {
	case RuleLetters:
		return Letters(), nil
	case RuleEmail:
		return Email(), nil
	case RulePhone:
		return Phone(), nil
	case RulePercentage:
		return Percentage(), nil
	case RuleMaxLength:
		limit, err := strconv.Atoi(strings.TrimSpace(param))
		if err != nil || limit <= 0 {
			return Rule{}, fmt.Errorf("validation: rule %q needs a positive integer param, got %q", name, param)
		}
		return MaxLength(limit), nil
	case RulePattern:
		expr, err := regexp.Compile(param)
		if err != nil {
			return Rule{}, fmt.Errorf("validation: rule %q: %w", name, err)
		}
		return Pattern(expr), nil
	default:
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
}
