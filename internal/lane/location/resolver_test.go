// internal/lane/location/resolver_test.go
package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lane-workers/internal/models"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *models.CanonicalLocation
	}{
		{
			name:     "comma form with country",
			input:    "Elwood, IL, US",
			expected: &models.CanonicalLocation{City: "Elwood", RegionCode: "IL", CountryCode: "US"},
		},
		{
			name:     "comma form without country defaults to US",
			input:    "Elwood, IL",
			expected: &models.CanonicalLocation{City: "Elwood", RegionCode: "IL", CountryCode: "US"},
		},
		{
			name:     "space form with country",
			input:    "Elwood IL US",
			expected: &models.CanonicalLocation{City: "Elwood", RegionCode: "IL", CountryCode: "US"},
		},
		{
			name:     "space form without country defaults to US",
			input:    "Elwood IL",
			expected: &models.CanonicalLocation{City: "Elwood", RegionCode: "IL", CountryCode: "US"},
		},
		{
			name:     "multi-word city in space form",
			input:    "Fort Worth TX US",
			expected: &models.CanonicalLocation{City: "Fort Worth", RegionCode: "TX", CountryCode: "US"},
		},
		{
			name:     "multi-word city without short trailing token",
			input:    "Fort Worth Texas",
			expected: &models.CanonicalLocation{City: "Fort Worth", RegionCode: "Texas", CountryCode: "US"},
		},
		{
			name:     "single token cannot resolve",
			input:    "Chicago",
			expected: nil,
		},
		{
			name:     "empty string cannot resolve",
			input:    "   ",
			expected: nil,
		},
		{
			name:     "lone comma cannot resolve",
			input:    "Chicago,",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(tt.input))
		})
	}
}

func TestResolveCommaAndSpaceFormsAgree(t *testing.T) {
	comma := Resolve("Elwood, IL, US")
	space := Resolve("Elwood IL US")

	require.NotNil(t, comma)
	require.NotNil(t, space)
	assert.Equal(t, comma, space)
}

func TestUppercasedAtBoundary(t *testing.T) {
	loc := Resolve("elwood, il, us")
	require.NotNil(t, loc)

	up := loc.Uppercased()
	assert.Equal(t, "ELWOOD", up.City)
	assert.Equal(t, "IL", up.RegionCode)
	assert.Equal(t, "US", up.CountryCode)
}
