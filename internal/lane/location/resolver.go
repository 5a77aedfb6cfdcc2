// internal/lane/location/resolver.go

// Package location normalizes free-text city strings into canonical location
// references. Resolution is deterministic: two semantically-equal inputs
// always resolve to the same CanonicalLocation.
package location

import (
	"strings"

	"lane-workers/internal/models"
)

const defaultCountry = "US"

// Resolve parses a free-text city string into a CanonicalLocation. It accepts
// the comma form ("City, ST, US" or "City, ST") and the space form
// ("City ST US" or "City ST"). A nil return means the text cannot be resolved
// and callers must treat it as a hard precondition failure for any downstream
// network call, never as "unknown, proceed with empty location".
func Resolve(cityText string) *models.CanonicalLocation {
	text := strings.TrimSpace(cityText)
	if text == "" {
		return nil
	}

	if strings.Contains(text, ",") {
		return resolveCommaForm(text)
	}
	return resolveSpaceForm(text)
}

func resolveCommaForm(text string) *models.CanonicalLocation {
	var parts []string
	for _, p := range strings.Split(text, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return nil
	}

	loc := &models.CanonicalLocation{
		City:        parts[0],
		RegionCode:  parts[1],
		CountryCode: defaultCountry,
	}
	if len(parts) >= 3 {
		loc.CountryCode = parts[2]
	}
	return loc
}

func resolveSpaceForm(text string) *models.CanonicalLocation {
	tokens := strings.Fields(text)
	if len(tokens) < 2 {
		return nil
	}

	last := tokens[len(tokens)-1]
	if len(tokens) >= 3 && len(last) <= 3 {
		// Trailing short token is a country code; the token before it is the
		// region.
		return &models.CanonicalLocation{
			City:        strings.Join(tokens[:len(tokens)-2], " "),
			RegionCode:  tokens[len(tokens)-2],
			CountryCode: last,
		}
	}

	return &models.CanonicalLocation{
		City:        strings.Join(tokens[:len(tokens)-1], " "),
		RegionCode:  last,
		CountryCode: defaultCountry,
	}
}
