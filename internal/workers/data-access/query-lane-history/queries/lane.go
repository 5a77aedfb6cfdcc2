// internal/workers/data-access/query-lane-history/queries/lane.go
package queries

import (
	"context"
	"database/sql"
	"time"

	"lane-workers/internal/models"
)

func LaneStats(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	laneName, ok := params["laneName"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	stats := models.LaneHistoryStats{LaneName: laneName}
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*), AVG(total_cost), MIN(total_cost), MAX(total_cost),
		       AVG(CASE WHEN delivered_on_time THEN 100.0 ELSE 0.0 END),
		       COUNT(DISTINCT carrier)
		FROM shipments
		WHERE lane_name = $1`, laneName).Scan(
		&stats.ShipmentCount, &stats.AvgCost, &stats.MinCost, &stats.MaxCost,
		&stats.OnTimePct, &stats.DistinctCarrier,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return stats, 1, execTime, nil
}

func LaneVolume(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	laneName, ok := params["laneName"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}
	months, ok := params["months"].(int)
	if !ok || months <= 0 {
		months = 12
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT to_char(date_trunc('month', ship_date), 'YYYY-MM') AS month,
		       COUNT(*), SUM(weight_lb)
		FROM shipments
		WHERE lane_name = $1
		  AND ship_date >= now() - ($2 || ' months')::interval
		GROUP BY 1
		ORDER BY 1`, laneName, months)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	result := []map[string]interface{}{}
	for rows.Next() {
		var month string
		var count int
		var totalWeight sql.NullFloat64
		if err := rows.Scan(&month, &count, &totalWeight); err != nil {
			return nil, 0, 0, err
		}
		entry := map[string]interface{}{
			"month":         month,
			"shipmentCount": count,
		}
		if totalWeight.Valid {
			entry["totalWeightLb"] = totalWeight.Float64
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return result, len(result), execTime, nil
}

func RecentQuotes(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	laneName, ok := params["laneName"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}
	limit, ok := params["limit"].(int)
	if !ok || limit <= 0 {
		limit = 10
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT quote_id, carrier, total_cost, currency, quoted_at
		FROM rate_quotes
		WHERE lane_name = $1
		ORDER BY quoted_at DESC
		LIMIT $2`, laneName, limit)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	result := []map[string]interface{}{}
	for rows.Next() {
		var quoteID, carrier, currency string
		var totalCost float64
		var quotedAt time.Time
		if err := rows.Scan(&quoteID, &carrier, &totalCost, &currency, &quotedAt); err != nil {
			return nil, 0, 0, err
		}
		result = append(result, map[string]interface{}{
			"quoteId":   quoteID,
			"carrier":   carrier,
			"totalCost": totalCost,
			"currency":  currency,
			"quotedAt":  quotedAt.UTC().Format(time.RFC3339),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return result, len(result), execTime, nil
}
