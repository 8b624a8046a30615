package strcase

import (
	"strings"
	"unicode"
)

// Words splits s on separators ('.', '-', '_', spaces) and on case changes.
// An initialism stays one word: "IDToken" is ["ID", "Token"].
func Words(s string) []string {
	runes := []rune(s)
	var (
		words []string
		start = -1
	)

	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}
		start = -1
	}

	for i, r := range runes {
		if r == '.' || r == '-' || r == '_' || unicode.IsSpace(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}

		prev := runes[i-1]
		switch {
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush(i)
			start = i
		case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			flush(i)
			start = i
		}
	}
	flush(len(runes))

	return words
}

// ToLowerSnake renders s as lower_snake_case, used for validation field keys.
func ToLowerSnake(s string) string {
	return strings.ToLower(strings.Join(Words(s), "_"))
}

// ToUpperSnake renders s as UPPER_SNAKE_CASE, used for environment variable names.
func ToUpperSnake(s string) string {
	return strings.ToUpper(strings.Join(Words(s), "_"))
}
