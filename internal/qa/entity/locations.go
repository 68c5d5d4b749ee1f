package entity

import "strings"

// gazetteer is the curated list of place names known to appear in the
// conversation dataset. Matching is exact case-insensitive substring
// matching; no fuzzy or partial matches.
var gazetteer = []string{
	"london", "paris", "tokyo", "new york", "dubai", "singapore",
	"bangkok", "aspen", "maldives", "bali", "cannes", "monaco",
	"tuscany", "santorini", "riviera", "milan", "switzerland",
	"kyoto", "pebble beach",
}

// Locations returns every gazetteer entry that appears as a substring of
// the question, case-insensitively.
func Locations(q string) []string {
	qlow := strings.ToLower(q)
	var found []string
	for _, loc := range gazetteer {
		if strings.Contains(qlow, loc) {
			found = append(found, loc)
		}
	}
	return found
}
