// internal/lane/rates/orchestrator.go
package rates

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "lane-workers/internal/common/errors"
	"lane-workers/internal/common/logger"
	"lane-workers/internal/common/metrics"
	"lane-workers/internal/common/observability"
	"lane-workers/internal/lane/location"
	"lane-workers/internal/models"
)

// Defaults applied when LaneInfo carries no parseable magnitude.
const (
	defaultWeightLB    = 1000.0
	defaultVolumeCUFT  = 50.0
	weightUnit         = "LB"
	volumeUnit         = "CUFT"
	defaultCommodity   = "50"
	perspectiveBuy     = "BUY"
	requestCheapest    = "CHEAPEST"
	requestForCarrier  = "CARRIER"
	pathTwoPhase       = "two-phase"
	pathLegacy         = "legacy"
	outcomeSuccess     = "success"
	outcomeFailure     = "error"
)

// transportModes is the fixed mode set sent on every comprehensive query.
var transportModes = []string{"LTL", "TL"}

// Orchestrator runs the two-phase rate workflow: location resolution first,
// then the comprehensive rate fetch. Phase 2 never starts before Phase 1 has
// produced both identifiers. The lane is taken by value so a late-finishing
// query can never observe a newer lane.
type Orchestrator struct {
	client  *Client
	cache   LocationIDCache
	tracer  *observability.Tracing
	logger  logger.Logger
	timeout time.Duration
}

func NewOrchestrator(
	client *Client,
	cache LocationIDCache,
	tracer *observability.Tracing,
	log logger.Logger,
	timeout time.Duration,
) *Orchestrator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Orchestrator{
		client:  client,
		cache:   cache,
		tracer:  tracer,
		logger:  log,
		timeout: timeout,
	}
}

// QueryRates runs the primary two-phase path.
func (o *Orchestrator) QueryRates(ctx context.Context, lane models.LaneInfo) (*models.RateQueryOutcome, error) {
	start := time.Now()
	queryID := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	ctx, span := o.tracer.StartSpan(ctx, "rates.query")
	defer span.End()

	log := o.logger.WithFields(map[string]interface{}{
		"queryId": queryID,
		"lane":    laneName(lane),
	})

	srcID, dstID, stdErr := o.resolveLocations(ctx, lane)
	if stdErr != nil {
		o.observe(pathTwoPhase, outcomeFailure, start)
		log.Error("phase 1 failed", map[string]interface{}{"error": stdErr.Error()})
		return nil, stdErr
	}

	records, stdErr := o.fetchComprehensive(ctx, lane, srcID, dstID)
	if stdErr != nil {
		o.observe(pathTwoPhase, outcomeFailure, start)
		log.Error("phase 2 failed", map[string]interface{}{"error": stdErr.Error()})
		return nil, stdErr
	}

	outcome := o.buildOutcome(records, lane, queryID, start)
	o.observe(pathTwoPhase, outcomeSuccess, start)
	log.Info("rate query complete", map[string]interface{}{
		"totalOptions": outcome.Metadata.TotalOptions,
		"softError":    outcome.Error,
	})
	return outcome, nil
}

// QueryRatesLegacy runs the retained legacy path: the cheapest-only and
// rate-for-named-carrier endpoints issued concurrently and joined with a
// partial-failure-tolerant policy — one branch failing never voids the other.
func (o *Orchestrator) QueryRatesLegacy(ctx context.Context, lane models.LaneInfo) (*models.RateQueryOutcome, error) {
	start := time.Now()
	queryID := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	ctx, span := o.tracer.StartSpan(ctx, "rates.query_legacy")
	defer span.End()

	srcID, dstID, stdErr := o.resolveLocations(ctx, lane)
	if stdErr != nil {
		o.observe(pathLegacy, outcomeFailure, start)
		return nil, stdErr
	}

	base := legacyRateRequest{
		SourceLocation:      srcID,
		DestinationLocation: dstID,
		Items: []legacyItem{{
			Weight:     parseMagnitude(lane.Weight, defaultWeightLB),
			WeightUnit: weightUnit,
			Volume:     parseMagnitude(lane.Volume, defaultVolumeCUFT),
			VolumeUnit: volumeUnit,
		}},
		Perspective: perspectiveBuy,
	}

	type branch struct {
		record *models.RateRecord
		err    error
	}

	cheapestCh := make(chan branch, 1)
	go func() {
		req := base
		req.RequestType = requestCheapest
		rec, err := o.client.FetchLegacyRate(ctx, req)
		cheapestCh <- branch{record: rec, err: err}
	}()

	preferredCarrier := lane.PreferredCarrier()
	preferredCh := make(chan branch, 1)
	if preferredCarrier != "" {
		go func() {
			req := base
			req.RequestType = requestForCarrier
			req.Carrier = preferredCarrier
			rec, err := o.client.FetchLegacyRate(ctx, req)
			preferredCh <- branch{record: rec, err: err}
		}()
	} else {
		preferredCh <- branch{}
	}

	cheapestRes := <-cheapestCh
	preferredRes := <-preferredCh

	if cheapestRes.err != nil {
		if preferredCarrier == "" {
			o.observe(pathLegacy, outcomeFailure, start)
			return nil, apperrors.NewRateQueryError(cheapestRes.err)
		}
		if preferredRes.err != nil {
			o.observe(pathLegacy, outcomeFailure, start)
			return nil, apperrors.NewRateQueryError(
				fmt.Errorf("both legacy branches failed: %v; %v", cheapestRes.err, preferredRes.err))
		}
	}

	outcome := &models.RateQueryOutcome{
		Metadata: models.RateQueryMetadata{QueryID: queryID},
	}
	if cheapestRes.record != nil {
		outcome.AllRecords = append(outcome.AllRecords, *cheapestRes.record)
	}
	if preferredRes.record != nil {
		outcome.AllRecords = append(outcome.AllRecords, *preferredRes.record)
	}

	// Branch identity is not trusted: the carrier branch can come back cheaper
	// than the cheapest-only branch, and either branch may have failed. The
	// collected records go through the same reduction as the two-phase path,
	// so cheapest is always the minimum valid cost over whatever survived.
	var softErr *apperrors.StandardError
	if len(outcome.AllRecords) > 0 {
		outcome.Cheapest, outcome.PreferredCarrier, softErr = Reduce(outcome.AllRecords, preferredCarrier)
	}

	var failures []string
	if cheapestRes.err != nil {
		failures = append(failures, fmt.Sprintf("cheapest branch: %v", cheapestRes.err))
	}
	if preferredCarrier != "" && preferredRes.err != nil {
		failures = append(failures, fmt.Sprintf("carrier branch: %v", preferredRes.err))
	} else if softErr != nil {
		failures = append(failures, softErr.Message)
	}
	outcome.Error = strings.Join(failures, "; ")
	outcome.Metadata.TotalOptions = len(outcome.AllRecords)
	outcome.Metadata.ElapsedMS = time.Since(start).Milliseconds()

	o.observe(pathLegacy, outcomeSuccess, start)
	return outcome, nil
}

// resolveLocations is Phase 1. Any failure here aborts the whole query with
// no partial data.
func (o *Orchestrator) resolveLocations(ctx context.Context, lane models.LaneInfo) (string, string, *apperrors.StandardError) {
	srcLoc := location.Resolve(lane.Source())
	if srcLoc == nil {
		return "", "", apperrors.NewLocationResolutionError(lane.Source(), "source city cannot be parsed")
	}
	dstLoc := location.Resolve(lane.Destination())
	if dstLoc == nil {
		return "", "", apperrors.NewLocationResolutionError(lane.Destination(), "destination city cannot be parsed")
	}

	if o.cache != nil {
		srcID, srcOK := o.cache.Get(ctx, *srcLoc)
		dstID, dstOK := o.cache.Get(ctx, *dstLoc)
		if srcOK && dstOK {
			return srcID, dstID, nil
		}
	}

	srcID, dstID, err := o.client.LookupLocations(ctx, *srcLoc, *dstLoc)
	if err != nil {
		return "", "", apperrors.NewLocationResolutionError(lane.Source(), err.Error())
	}

	if o.cache != nil {
		o.cache.Put(ctx, *srcLoc, srcID)
		o.cache.Put(ctx, *dstLoc, dstID)
	}
	return srcID, dstID, nil
}

// fetchComprehensive is Phase 2.
func (o *Orchestrator) fetchComprehensive(ctx context.Context, lane models.LaneInfo, srcID, dstID string) ([]models.RateRecord, *apperrors.StandardError) {
	req := comprehensiveRateRequest{
		SourceLocationID: srcID,
		DestLocationID:   dstID,
		Weight:           parseMagnitude(lane.Weight, defaultWeightLB),
		Volume:           parseMagnitude(lane.Volume, defaultVolumeCUFT),
		WeightUnit:       weightUnit,
		VolumeUnit:       volumeUnit,
		TransportModes:   transportModes,
		CommodityClass:   defaultCommodity,
	}

	records, err := o.client.FetchComprehensiveRates(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return nil, apperrors.NewRateQueryTimeoutError()
		}
		return nil, apperrors.NewRateQueryError(err)
	}
	return records, nil
}

// buildOutcome runs the reduction and assembles the outcome. Zero records is
// not a failure: empty AllRecords, TotalOptions 0 and a soft message.
func (o *Orchestrator) buildOutcome(records []models.RateRecord, lane models.LaneInfo, queryID string, start time.Time) *models.RateQueryOutcome {
	outcome := &models.RateQueryOutcome{
		AllRecords: records,
		Metadata: models.RateQueryMetadata{
			QueryID:      queryID,
			TotalOptions: len(records),
			ElapsedMS:    time.Since(start).Milliseconds(),
		},
	}

	if len(records) == 0 {
		outcome.Error = apperrors.NewEmptyRateResultError(laneName(lane)).Message
		return outcome
	}

	cheapest, preferred, softErr := Reduce(records, lane.PreferredCarrier())
	outcome.Cheapest = cheapest
	outcome.PreferredCarrier = preferred
	if softErr != nil {
		outcome.Error = softErr.Message
	}
	return outcome
}

func (o *Orchestrator) observe(path, result string, start time.Time) {
	metrics.RateQueriesTotal.WithLabelValues(path, result).Inc()
	metrics.RateQueryDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
}

func laneName(lane models.LaneInfo) string {
	if lane.LaneName != nil {
		return *lane.LaneName
	}
	return lane.Source() + " to " + lane.Destination()
}

var magnitudeRe = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]+)?`)

// parseMagnitude pulls the leading numeric magnitude out of a free-text
// value like "2500 lbs"; unparseable or absent values fall back to def.
func parseMagnitude(raw *string, def float64) float64 {
	if raw == nil {
		return def
	}
	m := magnitudeRe.FindString(*raw)
	if m == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
