package validation

import "strings"

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records a custom violation message for a field.
func (v Violations) Add(field, msg string) { v[field] = msg }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Email performs a minimal shape check; real verification happens at sign-in.
func Email(field, value string, v Violations) {
	s := strings.TrimSpace(value)
	at := strings.Index(s, "@")
	if at < 1 || at == len(s)-1 || strings.Count(s, "@") != 1 {
		v[field] = "invalid_email"
	}
}

func MinLen(field, value string, minLen int, v Violations) {
	if len(strings.TrimSpace(value)) < minLen {
		v[field] = "too_short"
	}
}

func IntRange(field string, val, minVal, maxVal int, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// OneOf checks that value is among the allowed set (e.g. attendance status).
func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_value"
}
