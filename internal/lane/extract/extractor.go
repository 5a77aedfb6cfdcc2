// internal/lane/extract/extractor.go

// Package extract turns one unstructured assistant answer into a partially
// filled LaneInfo. Extraction never fails: unmatched patterns leave the
// corresponding field nil and consumers decide whether the result is
// sufficient (both city fields present).
package extract

import (
	"strings"

	"lane-workers/internal/models"
)

const (
	// Delimiters of the authoritative structured section an assistant answer
	// may embed. When present, the block wins over every fallback matcher.
	BlockStart = "---STRUCTURED_DATA---"
	BlockEnd   = "---END_STRUCTURED_DATA---"

	// Literal placeholder the assistant emits for fields it has no value for.
	absentPlaceholder = "N/A"

	laneSeparator = " to "
)

// Extract parses one assistant answer into a fresh LaneInfo. If the answer
// carries a structured block, the block is parsed field-by-field and the
// fallback chain is skipped entirely; otherwise the ordered matchers in
// matchers.go fill fields incrementally.
func Extract(answerText string) *models.LaneInfo {
	lane := &models.LaneInfo{}

	if block, ok := structuredBlock(answerText); ok {
		parseStructuredBlock(block, lane)
	} else {
		runFallbackChain(answerText, lane)
	}

	if lane.HasCityPair() {
		name := *lane.SourceCity + laneSeparator + *lane.DestinationCity
		lane.LaneName = &name
	}
	return lane
}

// structuredBlock returns the text between the block delimiters.
func structuredBlock(text string) (string, bool) {
	start := strings.Index(text, BlockStart)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(BlockStart):]
	end := strings.Index(rest, BlockEnd)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// parseStructuredBlock reads KEY: value lines. Values equal to the literal
// "N/A" placeholder are treated as absent. A LANE field of the form "X to Y"
// overrides SOURCE/DESTINATION regardless of line order.
func parseStructuredBlock(block string, lane *models.LaneInfo) {
	fields := map[string]string{}

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		if value == "" || value == absentPlaceholder {
			continue
		}
		fields[key] = value
	}

	setIfPresent(fields, "SOURCE", &lane.SourceCity)
	setIfPresent(fields, "DESTINATION", &lane.DestinationCity)
	setIfPresent(fields, "WEIGHT", &lane.Weight)
	setIfPresent(fields, "VOLUME", &lane.Volume)
	setIfPresent(fields, "EQUIPMENT", &lane.EquipmentType)
	setIfPresent(fields, "SERVICE", &lane.ServiceType)
	setIfPresent(fields, "BEST_CARRIER", &lane.BestCarrier)
	setIfPresent(fields, "BEST_PERFORMANCE", &lane.BestPerformance)
	setIfPresent(fields, "WORST_CARRIER", &lane.WorstCarrier)
	setIfPresent(fields, "WORST_PERFORMANCE", &lane.WorstPerformance)

	// The best performer claimed by the assistant doubles as the preferred
	// carrier for the rate and spot comparisons.
	if lane.BestCarrier != nil {
		carrier := *lane.BestCarrier
		lane.CarrierName = &carrier
	}

	if laneField, ok := fields["LANE"]; ok {
		if src, dst, ok := splitLane(laneField); ok {
			lane.SourceCity = &src
			lane.DestinationCity = &dst
		}
	}
}

func setIfPresent(fields map[string]string, key string, target **string) {
	if v, ok := fields[key]; ok {
		value := v
		*target = &value
	}
}

func splitLane(laneField string) (string, string, bool) {
	parts := strings.SplitN(laneField, laneSeparator, 2)
	if len(parts) != 2 {
		return "", "", false
	}
	src := strings.TrimSpace(parts[0])
	dst := strings.TrimSpace(parts[1])
	if src == "" || dst == "" {
		return "", "", false
	}
	return src, dst, true
}

// runFallbackChain fills lane from free text. The city-pair chain stops at the
// first matcher producing both ends; every independent field matcher stops at
// its own first match, so fields fill incrementally rather than
// all-or-nothing.
func runFallbackChain(text string, lane *models.LaneInfo) {
	// The performance-analysis phrasing carries carrier and performance in
	// addition to the city pair, so it runs ahead of the plain city matchers.
	applyAnalysisClaim(text, lane)

	if !lane.HasCityPair() {
		for _, m := range cityMatchers {
			if src, dst, ok := m.fn(text); ok {
				lane.SourceCity = &src
				lane.DestinationCity = &dst
				break
			}
		}
	}

	if lane.Weight == nil {
		if w, ok := matchWeight(text); ok {
			lane.Weight = &w
		}
	}
	if lane.Volume == nil {
		if v, ok := matchVolume(text); ok {
			lane.Volume = &v
		}
	}
	if lane.EquipmentType == nil {
		if e, ok := matchEquipment(text); ok {
			lane.EquipmentType = &e
		}
	}
	if lane.ServiceType == nil {
		if s, ok := matchService(text); ok {
			lane.ServiceType = &s
		}
	}
	if lane.CarrierName == nil {
		if c, ok := matchCarrier(text); ok {
			lane.CarrierName = &c
		}
	}
}
