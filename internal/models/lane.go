// internal/models/lane.go
package models

// LaneInfo holds the shipment facts extracted from one assistant answer.
// Values are created fresh per answer and never mutated in place; downstream
// workers receive a copy in their job variables so a late-finishing run can
// never observe a newer lane.
type LaneInfo struct {
	SourceCity       *string `json:"sourceCity"`
	DestinationCity  *string `json:"destinationCity"`
	Weight           *string `json:"weight"`
	Volume           *string `json:"volume"`
	EquipmentType    *string `json:"equipmentType"`
	ServiceType      *string `json:"serviceType"`
	CarrierName      *string `json:"carrierName"`
	BestCarrier      *string `json:"bestCarrier"`
	BestPerformance  *string `json:"bestPerformance"`
	WorstCarrier     *string `json:"worstCarrier"`
	WorstPerformance *string `json:"worstPerformance"`
	LaneName         *string `json:"laneName"`
}

// HasCityPair reports whether extraction produced enough to trigger the
// downstream rate/spot/history flows.
func (l *LaneInfo) HasCityPair() bool {
	return l != nil && l.SourceCity != nil && l.DestinationCity != nil
}

// Source returns the source city or "".
func (l *LaneInfo) Source() string {
	if l == nil || l.SourceCity == nil {
		return ""
	}
	return *l.SourceCity
}

// Destination returns the destination city or "".
func (l *LaneInfo) Destination() string {
	if l == nil || l.DestinationCity == nil {
		return ""
	}
	return *l.DestinationCity
}

// PreferredCarrier returns the best-performer carrier name claimed by the
// assistant, or "" when none was extracted.
func (l *LaneInfo) PreferredCarrier() string {
	if l == nil || l.CarrierName == nil {
		return ""
	}
	return *l.CarrierName
}

// StringPtr is a convenience for building LaneInfo values in callers and tests.
func StringPtr(s string) *string {
	return &s
}
