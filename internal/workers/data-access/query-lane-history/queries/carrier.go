// internal/workers/data-access/query-lane-history/queries/carrier.go
package queries

import (
	"context"
	"database/sql"
	"time"

	"lane-workers/internal/models"
)

func CarrierPerformance(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	laneName, ok := params["laneName"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT carrier, COUNT(*), AVG(total_cost),
		       AVG(CASE WHEN delivered_on_time THEN 100.0 ELSE 0.0 END)
		FROM shipments
		WHERE lane_name = $1
		GROUP BY carrier
		ORDER BY COUNT(*) DESC`, laneName)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	result := []models.CarrierPerformanceRow{}
	for rows.Next() {
		var row models.CarrierPerformanceRow
		if err := rows.Scan(&row.Carrier, &row.ShipmentCount, &row.AvgCost, &row.OnTimePct); err != nil {
			return nil, 0, 0, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return result, len(result), execTime, nil
}
