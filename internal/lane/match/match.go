// internal/lane/match/match.go

// Package match holds the carrier-name matching rule shared by the rate
// reduction and the spot matrix summary. Both consumers must use the same
// rule or comparisons across the two would disagree.
package match

import "strings"

// Carrier reports whether a preferred-carrier name and a rate record's
// carrier identifier refer to the same carrier. The rule is bidirectional
// case-insensitive substring containment, so "ODFL" matches
// "BSL.ODFL_FREIGHT" and vice versa.
func Carrier(preferred, candidate string) bool {
	a := strings.ToLower(strings.TrimSpace(preferred))
	b := strings.ToLower(strings.TrimSpace(candidate))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
