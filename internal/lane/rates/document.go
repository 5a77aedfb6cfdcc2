// internal/lane/rates/document.go
package rates

import (
	"encoding/xml"
	"fmt"

	"lane-workers/internal/models"
)

// Per-field defaults for absent sub-nodes of a rate option. A missing node
// degrades that one field; it never aborts the record.
const (
	defaultCarrier      = "Unknown"
	defaultMode         = "Unknown"
	defaultCurrency     = "USD"
	defaultDistanceUnit = "MI"
	defaultTransitUnit  = "H"
)

// The comprehensive rate service answers with a namespace-qualified
// hierarchical XML document; unqualified local names below match any
// namespace prefix the service chooses.
type rateDocument struct {
	Options []rateOptionNode `xml:"RateOptions>RateOption"`
}

type rateOptionNode struct {
	ServiceProvider *struct {
		Code string `xml:"Code"`
		Name string `xml:"Name"`
	} `xml:"ServiceProvider"`
	TransportMode string `xml:"TransportMode"`
	TotalCost     *struct {
		Amount   *float64 `xml:"Amount"`
		Currency string   `xml:"Currency"`
	} `xml:"TotalCost"`
	Distance *struct {
		Value *float64 `xml:"Value"`
		Unit  string   `xml:"Unit"`
	} `xml:"Distance"`
	TransitTime *struct {
		Value *float64 `xml:"Value"`
		Unit  string   `xml:"Unit"`
	} `xml:"TransitTime"`
	IsOptimal bool `xml:"IsOptimal"`
}

// parseRateDocument flattens every rate-option node into a RateRecord.
func parseRateDocument(raw []byte) ([]models.RateRecord, error) {
	var doc rateDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("malformed rate document: %w", err)
	}

	records := make([]models.RateRecord, 0, len(doc.Options))
	for _, opt := range doc.Options {
		records = append(records, flattenOption(opt))
	}
	return records, nil
}

func flattenOption(opt rateOptionNode) models.RateRecord {
	record := models.RateRecord{
		Carrier:         defaultCarrier,
		TransportMode:   defaultMode,
		Currency:        defaultCurrency,
		DistanceUnit:    defaultDistanceUnit,
		TransitTimeUnit: defaultTransitUnit,
		IsOptimal:       opt.IsOptimal,
	}

	if opt.ServiceProvider != nil {
		switch {
		case opt.ServiceProvider.Code != "":
			record.Carrier = opt.ServiceProvider.Code
		case opt.ServiceProvider.Name != "":
			record.Carrier = opt.ServiceProvider.Name
		}
	}
	if opt.TransportMode != "" {
		record.TransportMode = opt.TransportMode
	}
	if opt.TotalCost != nil {
		record.Cost = opt.TotalCost.Amount
		if opt.TotalCost.Currency != "" {
			record.Currency = opt.TotalCost.Currency
		}
	}
	if opt.Distance != nil {
		record.Distance = opt.Distance.Value
		if opt.Distance.Unit != "" {
			record.DistanceUnit = opt.Distance.Unit
		}
	}
	if opt.TransitTime != nil {
		record.TransitTimeHours = opt.TransitTime.Value
		if opt.TransitTime.Unit != "" {
			record.TransitTimeUnit = opt.TransitTime.Unit
		}
	}
	return record
}
