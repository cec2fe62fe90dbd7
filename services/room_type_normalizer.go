package services

import (
	"regexp"
	"strings"
)

// Upstream booking feeds carry free-text room-type labels ("2 Bedroom
// Apartment", "Two Bedroom Apartments", "two bedroom") while inventory is
// grouped by a catalogued name. bedroomPattern collapses the known
// numeral/word variants to one canonical phrase per bedroom count so both
// sides produce the same lookup key.
var bedroomPattern = regexp.MustCompile(`(?i)^\s*(two|2|three|3)\s+bedroom`)

// NormalizeRoomType canonicalizes a free-text room-type name. Names that
// match a recognized bedroom-count pattern collapse to "Two Bedroom" or
// "Three Bedroom"; anything else passes through trimmed. A heuristic, not
// a parser: unrecognized formats simply fail to match any room group and
// are reported as "no matching room type" downstream.
func NormalizeRoomType(rawName string) string {
	name := strings.TrimSpace(rawName)
	m := bedroomPattern.FindStringSubmatch(name)
	if m == nil {
		return name
	}
	switch strings.ToLower(m[1]) {
	case "2", "two":
		return "Two Bedroom"
	default:
		return "Three Bedroom"
	}
}
