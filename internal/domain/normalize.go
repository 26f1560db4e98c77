package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldWord returns the case-folded form of a word for case-insensitive comparison.
// Surrounding whitespace is trimmed; inner whitespace and diacritics are kept.
func FoldWord(word string) string {
	// A Caser is stateful and must not be shared between goroutines.
	return cases.Fold().String(strings.TrimSpace(word))
}

// SameWord reports whether a and b name the same word ignoring case
func SameWord(a, b string) bool {
	return FoldWord(a) == FoldWord(b)
}
