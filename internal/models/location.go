// internal/models/location.go
package models

import "strings"

// CanonicalLocation is the normalized form of a free-text city string.
// Two semantically equal inputs must resolve to the same value.
type CanonicalLocation struct {
	City        string `json:"city"`
	RegionCode  string `json:"regionCode"`
	CountryCode string `json:"countryCode"`
}

// Uppercased returns the location with every field upper-cased, the form
// required at the boundary to the location-lookup service.
func (c CanonicalLocation) Uppercased() CanonicalLocation {
	return CanonicalLocation{
		City:        strings.ToUpper(c.City),
		RegionCode:  strings.ToUpper(c.RegionCode),
		CountryCode: strings.ToUpper(c.CountryCode),
	}
}
