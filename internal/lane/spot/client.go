// internal/lane/spot/client.go
package spot

import (
	"context"

	apperrors "lane-workers/internal/common/errors"
	commonhttp "lane-workers/internal/common/http"
	"lane-workers/internal/common/logger"
	"lane-workers/internal/models"
)

// Client fetches per-carrier spot samples from the spot-rate-matrix service.
type Client struct {
	http    *commonhttp.Client
	baseURL string
	logger  logger.Logger
}

func NewClient(httpClient *commonhttp.Client, baseURL string, log logger.Logger) *Client {
	return &Client{http: httpClient, baseURL: baseURL, logger: log}
}

type matrixRequest struct {
	OriginCity    string `json:"origin_city"`
	OriginRegion  string `json:"origin_region"`
	OriginCountry string `json:"origin_country"`
	DestCity      string `json:"dest_city"`
	DestRegion    string `json:"dest_region"`
	DestCountry   string `json:"dest_country"`
	StartDate     string `json:"start_date,omitempty"`
}

type spotSample struct {
	ShipDate      string  `json:"ship_date"`
	TotalSpotCost float64 `json:"total_spot_cost"`
}

type carrierSamples struct {
	Carrier string       `json:"carrier"`
	Samples []spotSample `json:"samples"`
}

type matrixResponse struct {
	Carriers []carrierSamples `json:"carriers"`
}

// FetchMatrix retrieves the sparse carrier×date grid for a lane. Locations are
// sent upper-cased like every other external boundary.
func (c *Client) FetchMatrix(
	ctx context.Context,
	origin, dest models.CanonicalLocation,
	startDate string,
) ([]models.SpotMatrixEntry, error) {
	origin = origin.Uppercased()
	dest = dest.Uppercased()

	req := matrixRequest{
		OriginCity:    origin.City,
		OriginRegion:  origin.RegionCode,
		OriginCountry: origin.CountryCode,
		DestCity:      dest.City,
		DestRegion:    dest.RegionCode,
		DestCountry:   dest.CountryCode,
		StartDate:     startDate,
	}

	var resp matrixResponse
	if err := c.http.PostJSON(ctx, c.baseURL+"/spot-matrix", req, &resp); err != nil {
		c.logger.Error("spot matrix fetch failed", map[string]interface{}{
			"origin":      origin.City,
			"destination": dest.City,
			"error":       err.Error(),
		})
		return nil, apperrors.NewSpotMatrixError(err)
	}

	entries := make([]models.SpotMatrixEntry, 0, len(resp.Carriers))
	for _, row := range resp.Carriers {
		entry := models.SpotMatrixEntry{
			Carrier:     row.Carrier,
			PerDateCost: make(map[string]float64, len(row.Samples)),
		}
		for _, s := range row.Samples {
			if s.ShipDate == "" {
				continue
			}
			entry.PerDateCost[s.ShipDate] = s.TotalSpotCost
		}
		entries = append(entries, entry)
	}

	c.logger.Debug("spot matrix fetched", map[string]interface{}{
		"carriers": len(entries),
	})
	return entries, nil
}
