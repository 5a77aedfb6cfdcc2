// internal/lane/extract/matchers.go
package extract

import (
	"regexp"
	"strings"

	"lane-workers/internal/models"
)

// cityToken matches a capitalized word sequence ("Chicago", "Fort Worth",
// "St. Louis"). Keeping the city matchers case-sensitive stops them from
// swallowing surrounding prose.
const cityToken = `[A-Z][A-Za-z.'-]*(?:\s+[A-Z][A-Za-z.'-]*)*`

var (
	reAnalysis = regexp.MustCompile(
		`(?i)best performance analysis.*?([0-9]+(?:\.[0-9]+)?)%\s+for\s+(?:carrier\s+)?` +
			`([A-Za-z][A-Za-z0-9 .&'()_-]*?)\s+on\s+(` + cityToken + `)\s+to\s+(` + cityToken + `)\s+lane`)

	reFromTo     = regexp.MustCompile(`\bfrom\s+(` + cityToken + `)\s+to\s+(` + cityToken + `)`)
	reBetween    = regexp.MustCompile(`\bbetween\s+(` + cityToken + `)\s+and\s+(` + cityToken + `)`)
	reDashPair   = regexp.MustCompile(`(` + cityToken + `)(?:\s*[–—]\s*|\s+-\s+)(` + cityToken + `)`)
	reLanePrefix = regexp.MustCompile(`\blane\s+(` + cityToken + `)\s+to\s+(` + cityToken + `)`)
	reLaneSuffix = regexp.MustCompile(`(` + cityToken + `)\s+to\s+(` + cityToken + `)\s+lane`)

	reWeight = regexp.MustCompile(`(?i)\b([0-9][0-9,]*(?:\.[0-9]+)?)\s*(lbs?|pounds?|kgs?|kilograms?|tons?)\b`)
	reVolume = regexp.MustCompile(`(?i)\b([0-9][0-9,]*(?:\.[0-9]+)?)\s*(cu\.?\s*ft\.?|cuft|cubic\s+feet|cbm|cubic\s+meters?)\b`)

	reCarrierMention = regexp.MustCompile(`(?i)\bcarrier\s+([A-Za-z][A-Za-z0-9 .&'()_-]+?)(?:[,.;:!?\n]|$)`)
)

// cityMatcher attempts one phrasing of a city pair. The chain in extractor.go
// stops at the first matcher yielding both ends.
type cityMatcher struct {
	name string
	fn   func(string) (string, string, bool)
}

var cityMatchers = []cityMatcher{
	{"from-to", pairMatcher(reFromTo)},
	{"between-and", pairMatcher(reBetween)},
	{"dash-pair", pairMatcher(reDashPair)},
	{"lane-prefix", pairMatcher(reLanePrefix)},
	{"lane-suffix", pairMatcher(reLaneSuffix)},
}

func pairMatcher(re *regexp.Regexp) func(string) (string, string, bool) {
	return func(text string) (string, string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", "", false
		}
		src := cleanCity(m[1])
		dst := cleanCity(m[2])
		if src == "" || dst == "" {
			return "", "", false
		}
		return src, dst, true
	}
}

// applyAnalysisClaim parses the "Best Performance Analysis ... is N% for
// carrier C on X to Y lane" phrasing, which yields carrier and performance in
// addition to the city pair.
func applyAnalysisClaim(text string, lane *models.LaneInfo) {
	m := reAnalysis.FindStringSubmatch(text)
	if m == nil {
		return
	}

	performance := m[1] + "%"
	carrier := canonicalCarrier(m[2])
	lane.BestPerformance = &performance
	lane.BestCarrier = &carrier
	lane.CarrierName = &carrier

	src := cleanCity(m[3])
	dst := cleanCity(m[4])
	if src != "" && dst != "" {
		lane.SourceCity = &src
		lane.DestinationCity = &dst
	}
}

// leadingStopwords are capitalized sentence openers the city token pattern
// can swallow ("The Chicago – Miami corridor").
var leadingStopwords = map[string]bool{"The": true, "A": true, "An": true}

func cleanCity(s string) string {
	s = strings.Trim(strings.TrimSpace(s), ".,;:")
	fields := strings.Fields(s)
	for len(fields) > 1 && leadingStopwords[fields[0]] {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

func matchWeight(text string) (string, bool) {
	m := reWeight.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1] + " " + m[2], true
}

func matchVolume(text string) (string, bool) {
	m := reVolume.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1] + " " + m[2], true
}

// keywordRule maps a phrasing keyword to its canonical label. Rules are
// ordered by priority; the first keyword found in the text wins.
type keywordRule struct {
	re    *regexp.Regexp
	label string
}

func keyword(pattern, label string) keywordRule {
	return keywordRule{re: regexp.MustCompile(`(?i)\b` + pattern + `\b`), label: label}
}

var equipmentRules = []keywordRule{
	keyword(`reefer`, "Refrigerated"),
	keyword(`refrigerated`, "Refrigerated"),
	keyword(`flatbed`, "Flatbed"),
	keyword(`step\s+deck`, "Step Deck"),
	keyword(`dry\s+van`, "Dry Van"),
	keyword(`van`, "Dry Van"),
	keyword(`container`, "Container"),
}

var serviceRules = []keywordRule{
	keyword(`expedited`, "Expedited"),
	keyword(`guaranteed`, "Guaranteed"),
	keyword(`economy`, "Economy"),
	keyword(`standard`, "Standard"),
}

func matchEquipment(text string) (string, bool) {
	return firstKeyword(equipmentRules, text)
}

func matchService(text string) (string, bool) {
	return firstKeyword(serviceRules, text)
}

func firstKeyword(rules []keywordRule, text string) (string, bool) {
	for _, r := range rules {
		if r.re.MatchString(text) {
			return r.label, true
		}
	}
	return "", false
}

func matchCarrier(text string) (string, bool) {
	m := reCarrierMention.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return canonicalCarrier(m[1]), true
}

// carrierAliases maps known full carrier names onto the canonical abbreviated
// labels used across the rate panels.
var carrierAliases = []struct {
	substr string
	label  string
}{
	{"old dominion", "ODFL (Old Dominion Freight Line)"},
	{"fedex freight", "FedEx Freight"},
	{"xpo logistics", "XPO Logistics"},
	{"estes express", "Estes Express Lines"},
	{"saia", "Saia LTL Freight"},
	{"abf freight", "ABF Freight"},
}

func canonicalCarrier(raw string) string {
	carrier := strings.TrimSpace(raw)
	lowered := strings.ToLower(carrier)
	for _, alias := range carrierAliases {
		if strings.Contains(lowered, alias.substr) {
			return alias.label
		}
	}
	return carrier
}
