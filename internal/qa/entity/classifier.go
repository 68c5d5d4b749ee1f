package entity

import "regexp"

// QuestionType is the closed set of question categories the answer
// synthesizer dispatches on.
type QuestionType int

const (
	TypeGeneric QuestionType = iota
	TypeWho
	TypeWhen
	TypeWhere
	TypeHowMany
	TypeWhatAre
	TypeWhich
	TypeWhy
)

func (t QuestionType) String() string {
	switch t {
	case TypeWho:
		return "WHO"
	case TypeWhen:
		return "WHEN"
	case TypeWhere:
		return "WHERE"
	case TypeHowMany:
		return "HOW_MANY"
	case TypeWhatAre:
		return "WHAT_ARE"
	case TypeWhich:
		return "WHICH"
	case TypeWhy:
		return "WHY"
	default:
		return "GENERIC"
	}
}

// classifierRules are checked in priority order; the first whole-word match
// wins. A question containing both "who" and "when" is therefore WHO.
var classifierRules = []struct {
	re    *regexp.Regexp
	qtype QuestionType
}{
	{regexp.MustCompile(`(?i)\bwho\b`), TypeWho},
	{regexp.MustCompile(`(?i)\bwhen\b`), TypeWhen},
	{regexp.MustCompile(`(?i)\bwhere\b`), TypeWhere},
	{regexp.MustCompile(`(?i)\bhow many\b`), TypeHowMany},
	{regexp.MustCompile(`(?i)\bwhat are\b`), TypeWhatAre},
	{regexp.MustCompile(`(?i)\bwhich\b`), TypeWhich},
	{regexp.MustCompile(`(?i)\bwhy\b`), TypeWhy},
}

// Classify determines the question type from the raw question text.
func Classify(q string) QuestionType {
	for _, rule := range classifierRules {
		if rule.re.MatchString(q) {
			return rule.qtype
		}
	}
	return TypeGeneric
}
