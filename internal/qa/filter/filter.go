// Package filter narrows an expanded candidate set using extracted
// entities. Filtering is a precision booster applied only when it is
// provably safe: a restriction is adopted only when it leaves the set
// non-empty, and the location filter only runs when the pool is large
// enough that a location match is unlikely to be coincidental.
package filter

import (
	"strings"

	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/corpus"
)

// Candidates restricts the candidate positions by speaker (persons) and
// message text (locations), preserving relative order. locationMin is the
// candidate count above which the location filter applies. The input set is
// never filtered down to empty; when every restriction would empty it, the
// original set is returned unchanged.
func Candidates(cands []int, msgs []corpus.Message, persons, locations []string, locationMin int) []int {
	filtered := cands

	if len(persons) > 0 {
		bySpeaker := make([]int, 0, len(filtered))
		for _, i := range filtered {
			if anySubstring(msgs[i].Speaker, persons) {
				bySpeaker = append(bySpeaker, i)
			}
		}
		if len(bySpeaker) > 0 {
			filtered = bySpeaker
		}
	}

	if len(locations) > 0 && len(filtered) > locationMin {
		byLocation := make([]int, 0, len(filtered))
		for _, i := range filtered {
			if anySubstring(msgs[i].Text, locations) {
				byLocation = append(byLocation, i)
			}
		}
		if len(byLocation) > 0 {
			filtered = byLocation
		}
	}

	if len(filtered) == 0 {
		return cands
	}
	return filtered
}

func anySubstring(haystack string, needles []string) bool {
	hlow := strings.ToLower(haystack)
	for _, n := range needles {
		if strings.Contains(hlow, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
