// internal/lane/extract/extractor_test.go
package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strValue(t *testing.T, ptr *string) string {
	t.Helper()
	require.NotNil(t, ptr)
	return *ptr
}

func TestExtractStructuredBlock(t *testing.T) {
	answer := `Here is what I found for your shipment.

---STRUCTURED_DATA---
LANE: Chicago to Miami
SOURCE: Springfield
DESTINATION: Dayton
WEIGHT: 2500 lbs
VOLUME: N/A
EQUIPMENT: Refrigerated
SERVICE: Expedited
BEST_CARRIER: ODFL
BEST_PERFORMANCE: 95%
WORST_CARRIER: XPO
WORST_PERFORMANCE: 61%
---END_STRUCTURED_DATA---

Let me know if you need anything else.`

	lane := Extract(answer)

	// LANE overrides SOURCE/DESTINATION.
	assert.Equal(t, "Chicago", strValue(t, lane.SourceCity))
	assert.Equal(t, "Miami", strValue(t, lane.DestinationCity))
	assert.Equal(t, "Chicago to Miami", strValue(t, lane.LaneName))

	assert.Equal(t, "2500 lbs", strValue(t, lane.Weight))
	assert.Nil(t, lane.Volume, "N/A must map to absent")
	assert.Equal(t, "Refrigerated", strValue(t, lane.EquipmentType))
	assert.Equal(t, "Expedited", strValue(t, lane.ServiceType))
	assert.Equal(t, "ODFL", strValue(t, lane.BestCarrier))
	assert.Equal(t, "95%", strValue(t, lane.BestPerformance))
	assert.Equal(t, "XPO", strValue(t, lane.WorstCarrier))
	assert.Equal(t, "61%", strValue(t, lane.WorstPerformance))
	assert.Equal(t, "ODFL", strValue(t, lane.CarrierName))
}

func TestExtractStructuredBlockIgnoresFallbackText(t *testing.T) {
	answer := `Rates from Dallas to Houston look great.
---STRUCTURED_DATA---
LANE: Chicago to Miami
---END_STRUCTURED_DATA---`

	lane := Extract(answer)

	assert.Equal(t, "Chicago", strValue(t, lane.SourceCity))
	assert.Equal(t, "Miami", strValue(t, lane.DestinationCity))
}

func TestExtractFallbackCityPhrasingsAgree(t *testing.T) {
	variants := []struct {
		name   string
		answer string
	}{
		{"from-to", "Shipping from Chicago to Miami is busy this week."},
		{"between-and", "Rates between Chicago and Miami are trending down."},
		{"lane-suffix", "The Chicago to Miami lane has capacity."},
		{"lane-prefix", "Looking at lane Chicago to Miami today."},
		{"en-dash", "The Chicago – Miami corridor is tight."},
		{"spaced-hyphen", "The Chicago - Miami corridor is tight."},
	}

	for _, tt := range variants {
		t.Run(tt.name, func(t *testing.T) {
			lane := Extract(tt.answer)
			assert.Equal(t, "Chicago", strValue(t, lane.SourceCity))
			assert.Equal(t, "Miami", strValue(t, lane.DestinationCity))
			assert.Equal(t, "Chicago to Miami", strValue(t, lane.LaneName))
		})
	}
}

func TestExtractAnalysisClaim(t *testing.T) {
	answer := "Best Performance Analysis shows on-time delivery is 95% for carrier Old Dominion on Chicago to Miami lane."

	lane := Extract(answer)

	assert.Equal(t, "Chicago", strValue(t, lane.SourceCity))
	assert.Equal(t, "Miami", strValue(t, lane.DestinationCity))
	assert.Equal(t, "95%", strValue(t, lane.BestPerformance))
	assert.Equal(t, "ODFL (Old Dominion Freight Line)", strValue(t, lane.BestCarrier))
	assert.Equal(t, "ODFL (Old Dominion Freight Line)", strValue(t, lane.CarrierName))
}

func TestExtractIncrementalFields(t *testing.T) {
	answer := "We have 1200 lbs of freight on a flatbed, expedited if possible."

	lane := Extract(answer)

	// No city pair, but independent matchers still fill their fields.
	assert.False(t, lane.HasCityPair())
	assert.Nil(t, lane.LaneName)
	assert.Equal(t, "1200 lbs", strValue(t, lane.Weight))
	assert.Equal(t, "Flatbed", strValue(t, lane.EquipmentType))
	assert.Equal(t, "Expedited", strValue(t, lane.ServiceType))
}

func TestExtractVolumeAndCarrierMention(t *testing.T) {
	answer := "Quote 80 cuft moving from Dallas to Houston with carrier Estes Express, standard service."

	lane := Extract(answer)

	assert.Equal(t, "Dallas", strValue(t, lane.SourceCity))
	assert.Equal(t, "Houston", strValue(t, lane.DestinationCity))
	assert.Equal(t, "80 cuft", strValue(t, lane.Volume))
	assert.Equal(t, "Estes Express Lines", strValue(t, lane.CarrierName))
	assert.Equal(t, "Standard", strValue(t, lane.ServiceType))
}

func TestExtractEquipmentPriority(t *testing.T) {
	// "reefer" outranks "van" even when both appear.
	lane := Extract("Need a reefer, not a dry van, from Chicago to Miami.")
	assert.Equal(t, "Refrigerated", strValue(t, lane.EquipmentType))
}

func TestExtractNoMatchesLeavesEverythingNil(t *testing.T) {
	lane := Extract("hello there, how are you today?")

	assert.Nil(t, lane.SourceCity)
	assert.Nil(t, lane.DestinationCity)
	assert.Nil(t, lane.LaneName)
	assert.Nil(t, lane.Weight)
	assert.Nil(t, lane.Volume)
	assert.Nil(t, lane.EquipmentType)
	assert.Nil(t, lane.ServiceType)
	assert.Nil(t, lane.CarrierName)
	assert.False(t, lane.HasCityPair())
}

func TestExtractEndToEndScenarioAnswer(t *testing.T) {
	answer := "---STRUCTURED_DATA---\nLANE: Chicago to Miami\nBEST_CARRIER: ODFL\n---END_STRUCTURED_DATA---"

	lane := Extract(answer)

	assert.Equal(t, "Chicago", strValue(t, lane.SourceCity))
	assert.Equal(t, "Miami", strValue(t, lane.DestinationCity))
	assert.Equal(t, "ODFL", strValue(t, lane.CarrierName))
	assert.True(t, lane.HasCityPair())
}
