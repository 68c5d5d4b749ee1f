// Package entity extracts query-side entities for the QA pipeline: person
// names, known locations, numbers, and the question type. All extractors
// are pure functions over the raw question text; none of them touch the
// corpus.
package entity

import (
	"regexp"
	"strings"
)

// questionWords are capitalized words that look like names at the start of
// a sentence but are really question or filler words.
var questionWords = map[string]struct{}{
	"what": {}, "when": {}, "why": {}, "where": {}, "how": {}, "who": {},
	"which": {}, "can": {}, "please": {}, "looking": {}, "will": {},
	"should": {}, "is": {}, "are": {}, "need": {}, "thank": {},
	"book": {}, "check": {}, "send": {}, "find": {}, "get": {},
	"arrange": {}, "could": {}, "would": {}, "do": {}, "does": {},
}

var (
	fullNameRe = regexp.MustCompile(`[A-Z][a-z]+(?: [A-Z][a-z]+)+`)
	capWordRe  = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
)

// Persons extracts person names from a question. Multi-word capitalized
// sequences ("Vikram Desai") win over single capitalized words; question
// words are discarded in both passes.
func Persons(q string) []string {
	full := discardQuestionWords(fullNameRe.FindAllString(q, -1))
	if len(full) > 0 {
		return full
	}
	return discardQuestionWords(capWordRe.FindAllString(q, -1))
}

func discardQuestionWords(names []string) []string {
	kept := names[:0]
	for _, n := range names {
		if _, isQuestionWord := questionWords[strings.ToLower(n)]; isQuestionWord {
			continue
		}
		kept = append(kept, n)
	}
	return kept
}
