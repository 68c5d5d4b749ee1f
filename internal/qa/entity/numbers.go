package entity

import (
	"regexp"
	"strings"
)

var digitRunRe = regexp.MustCompile(`\b(\d+)\b`)

// numberWord maps a spelled-out number to its digit form. The slice order
// is significant: StrictNumber scans it front to back.
type numberWord struct {
	word  string
	value string
}

// wordNumbers covers the spelled-out numbers recognised by Numbers.
var wordNumbers = []numberWord{
	{"zero", "0"}, {"one", "1"}, {"two", "2"}, {"three", "3"},
	{"four", "4"}, {"five", "5"}, {"six", "6"}, {"seven", "7"},
	{"eight", "8"}, {"nine", "9"}, {"ten", "10"}, {"eleven", "11"},
	{"twelve", "12"}, {"twenty", "20"}, {"thirty", "30"}, {"hundred", "100"},
}

// strictWordNumbers is the shorter list used by StrictNumber.
var strictWordNumbers = []numberWord{
	{"one", "1"}, {"two", "2"}, {"three", "3"}, {"four", "4"},
	{"five", "5"}, {"six", "6"}, {"seven", "7"}, {"eight", "8"},
	{"nine", "9"}, {"ten", "10"},
}

var (
	wordNumberRe        = buildWordRe(wordNumbers)
	wordNumberValues    = buildValueMap(wordNumbers)
	strictWordNumberRes = buildWholeWordRes(strictWordNumbers)
)

func buildWordRe(words []numberWord) *regexp.Regexp {
	alts := make([]string, len(words))
	for i, w := range words {
		alts[i] = w.word
	}
	return regexp.MustCompile(`\b(` + strings.Join(alts, "|") + `)\b`)
}

func buildValueMap(words []numberWord) map[string]string {
	m := make(map[string]string, len(words))
	for _, w := range words {
		m[w.word] = w.value
	}
	return m
}

func buildWholeWordRes(words []numberWord) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		res[i] = regexp.MustCompile(`\b` + w.word + `\b`)
	}
	return res
}

// Numbers extracts all standalone digit runs plus recognised spelled-out
// numbers as digit strings. Digit runs come first as a block, followed by
// word numbers in text order.
func Numbers(text string) []string {
	var out []string
	out = append(out, digitRunRe.FindAllString(text, -1)...)
	for _, w := range wordNumberRe.FindAllString(strings.ToLower(text), -1) {
		out = append(out, wordNumberValues[w])
	}
	return out
}

// StrictNumber extracts a single number from a message: the first
// standalone digit run, or failing that the first spelled-out number found
// by scanning the one-through-ten word list in list order. List order, not
// text position, decides which word wins when several appear.
func StrictNumber(text string) (string, bool) {
	if m := digitRunRe.FindString(text); m != "" {
		return m, true
	}
	tlow := strings.ToLower(text)
	for i, re := range strictWordNumberRes {
		if re.MatchString(tlow) {
			return strictWordNumbers[i].value, true
		}
	}
	return "", false
}
