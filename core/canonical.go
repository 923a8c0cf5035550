// Package core has the pure contribution-analysis logic: author identity
// canonicalization, file categorization, history parsing and ranking.
package core

import (
	"strings"
	"unicode"
)

// CanonicalName maps an arbitrary author string to a canonical display
// identity so that "TannerDyck", "Tanner Dyck" and "tanner-dyck" collapse
// into one key. It is the single normalization entry point shared by the
// metrics parser, ingestion and the ranking engine; comparing author
// identity any other way would silently split one contributor across keys.
//
// The function is pure and idempotent: canonicalizing an already-canonical
// name returns it unchanged.
func CanonicalName(raw string) string {
	if raw == "" {
		return ""
	}

	// 1. Split camel-case handles at every lowercase-to-uppercase boundary.
	var split strings.Builder
	split.Grow(len(raw) + 4)
	runes := []rune(raw)
	for i, r := range runes {
		if i > 0 && unicode.IsLower(runes[i-1]) && unicode.IsUpper(r) {
			split.WriteByte(' ')
		}
		split.WriteRune(r)
	}

	// 2. Collapse every run of non-alphanumeric characters into one space.
	var cleaned strings.Builder
	cleaned.Grow(split.Len())
	lastSpace := false
	for _, r := range split.String() {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			cleaned.WriteRune(r)
			lastSpace = false
		} else if !lastSpace {
			cleaned.WriteByte(' ')
			lastSpace = true
		}
	}

	// 3. Trim, collapse repeated whitespace and 4. title-case each word.
	words := strings.Fields(cleaned.String())
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

// titleWord uppercases the first rune and lowercases the rest. Lowercasing
// the tail is what makes CanonicalName idempotent: the result contains no
// interior uppercase letters for the camel-case split to break on again.
func titleWord(w string) string {
	runes := []rune(w)
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
