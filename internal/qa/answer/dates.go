package answer

import "regexp"

// datePatterns is the fixed, ordered list of date and time shapes the WHEN
// branch recognises: month-day, relative day words, weekday names, and
// numeric dates.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}`),
	regexp.MustCompile(`(?i)\b(today|tomorrow|tonight|next\s+\w+|this\s+\w+|last\s+\w+)\b`),
	regexp.MustCompile(`(?i)\b(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}(?:/\d{2,4})?\b`),
}

func containsDate(text string) bool {
	for _, re := range datePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
