package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeCity(city string) string {
	return TrimAndNormalize(city)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeNotes trims free text but keeps line breaks, which carry meaning
// in booking notes and inquiry messages.
func NormalizeNotes(notes string) string {
	lines := strings.Split(strings.TrimSpace(notes), "\n")
	for i, line := range lines {
		lines[i] = TrimAndNormalize(line)
	}
	return strings.Join(lines, "\n")
}

// OptionalString normalizes s and returns nil when nothing is left.
func OptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := TrimAndNormalize(*s)
	if v == "" {
		return nil
	}
	return &v
}
