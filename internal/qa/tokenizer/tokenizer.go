// Package tokenizer provides word tokenisation for the QA pipeline. It
// lower-cases input and splits on non-word boundaries. A word is a maximal
// run of letters, digits, and underscores.
//
// The same function is used when indexing documents and when tokenising an
// incoming question; any normalisation mismatch between the two sides
// silently degrades ranking quality.
package tokenizer

import (
	"strings"
	"unicode"
)

// Tokenize breaks text into a slice of lowercased word tokens.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
