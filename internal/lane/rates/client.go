// internal/lane/rates/client.go
package rates

import (
	"context"
	"encoding/json"
	"fmt"

	commonhttp "lane-workers/internal/common/http"
	"lane-workers/internal/common/logger"
	"lane-workers/internal/models"
)

// Client talks to the three external rate-related services: the
// location-lookup service, the comprehensive rate-quote service, and the
// legacy single-step rate service.
type Client struct {
	http        *commonhttp.Client
	locationURL string
	rateURL     string
	legacyURL   string
	logger      logger.Logger
}

func NewClient(httpClient *commonhttp.Client, locationURL, rateURL, legacyURL string, log logger.Logger) *Client {
	return &Client{
		http:        httpClient,
		locationURL: locationURL,
		rateURL:     rateURL,
		legacyURL:   legacyURL,
		logger:      log,
	}
}

type locationLookupRequest struct {
	SourceCity    string `json:"source_city"`
	SourceState   string `json:"source_state"`
	SourceCountry string `json:"source_country"`
	DestCity      string `json:"dest_city"`
	DestState     string `json:"dest_state"`
	DestCountry   string `json:"dest_country"`
}

type locationLookupResponse struct {
	SourceLocationID string `json:"source_location_id"`
	DestLocationID   string `json:"dest_location_id"`
}

// LookupLocations exchanges two canonical locations for the opaque location
// identifiers the rate services operate on. Fields are upper-cased at this
// boundary.
func (c *Client) LookupLocations(ctx context.Context, src, dst models.CanonicalLocation) (string, string, error) {
	src = src.Uppercased()
	dst = dst.Uppercased()

	req := locationLookupRequest{
		SourceCity:    src.City,
		SourceState:   src.RegionCode,
		SourceCountry: src.CountryCode,
		DestCity:      dst.City,
		DestState:     dst.RegionCode,
		DestCountry:   dst.CountryCode,
	}

	var resp locationLookupResponse
	if err := c.http.PostJSON(ctx, c.locationURL+"/locations/lookup", req, &resp); err != nil {
		return "", "", fmt.Errorf("location lookup: %w", err)
	}
	if resp.SourceLocationID == "" || resp.DestLocationID == "" {
		return "", "", fmt.Errorf("location lookup returned incomplete identifiers (source=%q dest=%q)",
			resp.SourceLocationID, resp.DestLocationID)
	}
	return resp.SourceLocationID, resp.DestLocationID, nil
}

type comprehensiveRateRequest struct {
	SourceLocationID string   `json:"source_location_id"`
	DestLocationID   string   `json:"dest_location_id"`
	Weight           float64  `json:"weight"`
	Volume           float64  `json:"volume"`
	WeightUnit       string   `json:"weight_unit"`
	VolumeUnit       string   `json:"volume_unit"`
	TransportModes   []string `json:"transport_modes"`
	CommodityClass   string   `json:"commodity_class"`
}

// FetchComprehensiveRates calls the comprehensive rate-quote service and
// flattens its XML document into RateRecords.
func (c *Client) FetchComprehensiveRates(ctx context.Context, req comprehensiveRateRequest) ([]models.RateRecord, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal rate request: %w", err)
	}

	raw, err := c.http.PostRaw(ctx, c.rateURL+"/comprehensive-rates", "application/json", payload)
	if err != nil {
		return nil, fmt.Errorf("comprehensive rate fetch: %w", err)
	}

	records, err := parseRateDocument(raw)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("comprehensive rates fetched", map[string]interface{}{
		"options": len(records),
	})
	return records, nil
}

type legacyItem struct {
	Weight     float64 `json:"weight"`
	WeightUnit string  `json:"weight_unit"`
	Volume     float64 `json:"volume"`
	VolumeUnit string  `json:"volume_unit"`
}

type legacyRateRequest struct {
	SourceLocation      string       `json:"source_location"`
	DestinationLocation string       `json:"destination_location"`
	Items               []legacyItem `json:"items"`
	RequestType         string       `json:"request_type"`
	Perspective         string       `json:"perspective"`
	Carrier             string       `json:"carrier,omitempty"`
}

type legacyRateResponse struct {
	Carrier         string   `json:"carrier"`
	TransportMode   string   `json:"transport_mode"`
	TotalCost       *float64 `json:"total_cost"`
	Currency        string   `json:"currency"`
	Distance        *float64 `json:"distance"`
	DistanceUnit    string   `json:"distance_unit"`
	TransitTime     *float64 `json:"transit_time"`
	TransitTimeUnit string   `json:"transit_time_unit"`
	Optimal         bool     `json:"optimal"`
}

// FetchLegacyRate calls one of the two legacy single-step endpoints. The
// request type selects cheapest-only or rate-for-named-carrier.
func (c *Client) FetchLegacyRate(ctx context.Context, req legacyRateRequest) (*models.RateRecord, error) {
	var resp legacyRateResponse
	if err := c.http.PostJSON(ctx, c.legacyURL+"/rates", req, &resp); err != nil {
		return nil, fmt.Errorf("legacy rate fetch (%s): %w", req.RequestType, err)
	}

	record := models.RateRecord{
		Carrier:          resp.Carrier,
		TransportMode:    resp.TransportMode,
		Cost:             resp.TotalCost,
		Currency:         resp.Currency,
		Distance:         resp.Distance,
		DistanceUnit:     resp.DistanceUnit,
		TransitTimeHours: resp.TransitTime,
		TransitTimeUnit:  resp.TransitTimeUnit,
		IsOptimal:        resp.Optimal,
	}
	if record.Carrier == "" {
		record.Carrier = defaultCarrier
	}
	if record.TransportMode == "" {
		record.TransportMode = defaultMode
	}
	if record.Currency == "" {
		record.Currency = defaultCurrency
	}
	if record.DistanceUnit == "" {
		record.DistanceUnit = defaultDistanceUnit
	}
	if record.TransitTimeUnit == "" {
		record.TransitTimeUnit = defaultTransitUnit
	}
	return &record, nil
}
