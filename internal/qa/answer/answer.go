// Package answer turns a classified question plus its candidate set into
// the final answer text. Each question type applies its own pattern-matching
// policy; every scan is a linear first-match pass over the candidate order
// established by expansion and filtering, never a re-ranking.
package answer

import (
	"regexp"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/qa/entity"
)

// Request carries everything a branch may need: the raw question, the
// extracted entities, the filtered candidate positions, the raw top-ranked
// positions, and the full corpus (the WHEN branch widens its search to all
// messages from the extracted persons).
type Request struct {
	Question   string
	Type       entity.QuestionType
	Persons    []string
	Locations  []string
	Candidates []int
	TopIDs     []int
	Messages   []corpus.Message
}

var (
	whereRe   = regexp.MustCompile(`\b(?:to|in|at)\s+([A-Z][a-z]+(?: [A-Z][a-z]+)*)`)
	howManyRe = regexp.MustCompile(`how many\s+(\w+)`)
)

// Synthesize dispatches on the question type and returns the answer text
// and whether a structural match was found.
func Synthesize(req Request) (string, bool) {
	switch req.Type {
	case entity.TypeWho:
		return who(req)
	case entity.TypeWhen:
		return when(req)
	case entity.TypeWhere:
		return where(req)
	case entity.TypeHowMany:
		return howMany(req)
	case entity.TypeWhich:
		return cutAfter(req, " at ")
	case entity.TypeWhatAre:
		return cutAfter(req, " are ")
	case entity.TypeWhy:
		return why(req)
	default:
		return generic(req)
	}
}

// who answers with the speaker of the single top-ranked message.
func who(req Request) (string, bool) {
	if len(req.TopIDs) == 0 {
		return "", false
	}
	return req.Messages[req.TopIDs[0]].Speaker, true
}

// when scans the filtered candidates for a date-bearing message, then
// widens to every corpus message from an extracted person. In the widened
// scan a message that also mentions an extracted location wins; when no
// locations were extracted any date-bearing message from the person does.
func when(req Request) (string, bool) {
	for _, i := range req.Candidates {
		if containsDate(req.Messages[i].Text) {
			return req.Messages[i].Text, true
		}
	}

	if len(req.Persons) == 0 {
		return "", false
	}
	for _, msg := range req.Messages {
		if !anyFold(msg.Speaker, req.Persons) || !containsDate(msg.Text) {
			continue
		}
		if len(req.Locations) > 0 {
			if anyFold(msg.Text, req.Locations) {
				return msg.Text, true
			}
			continue
		}
		return msg.Text, true
	}
	return "", false
}

// where returns the first capitalized phrase following a to/in/at
// preposition among the candidates.
func where(req Request) (string, bool) {
	for _, i := range req.Candidates {
		if m := whereRe.FindStringSubmatch(req.Messages[i].Text); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// howMany pulls the counted noun out of the question, then returns the
// strict single-number extraction of the first candidate mentioning that
// noun.
func howMany(req Request) (string, bool) {
	m := howManyRe.FindStringSubmatch(strings.ToLower(req.Question))
	if m == nil {
		return "", false
	}
	noun := m[1]
	for _, i := range req.Candidates {
		text := req.Messages[i].Text
		if !strings.Contains(strings.ToLower(text), noun) {
			continue
		}
		if num, ok := entity.StrictNumber(text); ok {
			return num, true
		}
	}
	return "", false
}

// cutAfter returns the substring after the first occurrence of sep in the
// first candidate containing it. WHICH uses " at " (venues, places);
// WHAT_ARE uses " are " (lists, descriptions).
func cutAfter(req Request, sep string) (string, bool) {
	for _, i := range req.Candidates {
		if _, after, found := strings.Cut(req.Messages[i].Text, sep); found {
			return after, true
		}
	}
	return "", false
}

// why returns the first candidate message that states a cause.
func why(req Request) (string, bool) {
	for _, i := range req.Candidates {
		if strings.Contains(strings.ToLower(req.Messages[i].Text), "because") {
			return req.Messages[i].Text, true
		}
	}
	return "", false
}

// generic falls back to the most relevant text available: the first
// candidate, else the top-ranked message.
func generic(req Request) (string, bool) {
	if len(req.Candidates) > 0 {
		return req.Messages[req.Candidates[0]].Text, true
	}
	if len(req.TopIDs) > 0 {
		return req.Messages[req.TopIDs[0]].Text, true
	}
	return "", false
}

func anyFold(haystack string, needles []string) bool {
	hlow := strings.ToLower(haystack)
	for _, n := range needles {
		if strings.Contains(hlow, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
