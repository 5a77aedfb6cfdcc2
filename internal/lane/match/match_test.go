// internal/lane/match/match_test.go
package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCarrier(t *testing.T) {
	tests := []struct {
		name      string
		preferred string
		candidate string
		expected  bool
	}{
		{
			name:      "abbreviation contained in qualified identifier",
			preferred: "ODFL",
			candidate: "BSL.ODFL_FREIGHT",
			expected:  true,
		},
		{
			name:      "qualified identifier contained in long name",
			preferred: "XPO Logistics",
			candidate: "XPO",
			expected:  true,
		},
		{
			name:      "case insensitive",
			preferred: "odfl",
			candidate: "ODFL",
			expected:  true,
		},
		{
			name:      "no containment either direction",
			preferred: "ODFL",
			candidate: "XPO",
			expected:  false,
		},
		{
			name:      "empty preferred never matches",
			preferred: "",
			candidate: "XPO",
			expected:  false,
		},
		{
			name:      "whitespace-only candidate never matches",
			preferred: "ODFL",
			candidate: "   ",
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Carrier(tt.preferred, tt.candidate))
		})
	}
}
