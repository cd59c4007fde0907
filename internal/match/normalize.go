package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier to lower case and drops separators and
// pointer/slice punctuation, so "validate_ascii", "ValidateASCII" and
// "*validateAscii" compare equal.
func NormalizeIdent(s string) string {
	s = strings.TrimLeft(s, "*[]&")

	return stripSeparators(strings.ToLower(strings.Join(tokenizeCamelCase(s), "")))
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "AsciiStr" -> ["Ascii", "Str"]
//   - "validateASCII" -> ["validate", "ASCII"]
//   - "UTF8Buf" -> ["UTF8", "Buf"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i == 0 {
			current.WriteRune(r)

			continue
		}

		if shouldStartNewToken(runes, i) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prevRune := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prevRune)
	isPrevSep := isSeparator(prevRune)

	// lower -> upper: "validateASCII" splits before 'A'
	if isUpper && !isPrevUpper && !isPrevSep {
		return true
	}

	// acronym end: "ASCIIStr" splits before 'S'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
	if isUpper && isPrevUpper && hasNextLower {
		return true
	}

	return false
}

// stripSeparators removes common separators from a string.
func stripSeparators(s string) string {
	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if !isSeparator(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}
