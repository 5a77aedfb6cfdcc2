// internal/workers/data-access/query-chat-insights/search.go
package querychatinsights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var ErrMissingIndex = errors.New("index name is required")

type insightSearch struct {
	Index    string
	LaneName string
	Cities   []string
	Carrier  string
	From     int
	Size     int
}

type searchResult struct {
	Data      []map[string]interface{}
	TotalHits int64
	MaxScore  float64
	Took      int64
}

// buildSearchRequest assembles the lane-mention query. The lane name drives
// relevance; city and carrier mentions widen recall so older conversations
// that never used the canonical lane name still surface.
func buildSearchRequest(search insightSearch) (*esapi.SearchRequest, error) {
	if search.Index == "" {
		return nil, ErrMissingIndex
	}

	shouldClauses := []interface{}{}
	if search.LaneName != "" {
		shouldClauses = append(shouldClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  search.LaneName,
				"fields": []string{"laneName^3", "text^2", "summary"},
				"type":   "best_fields",
			},
		})
	}
	for _, city := range search.Cities {
		if city == "" {
			continue
		}
		shouldClauses = append(shouldClauses, map[string]interface{}{
			"match": map[string]interface{}{"text": city},
		})
	}
	if search.Carrier != "" {
		shouldClauses = append(shouldClauses, map[string]interface{}{
			"match": map[string]interface{}{"carriers": search.Carrier},
		})
	}

	if len(shouldClauses) == 0 {
		return nil, fmt.Errorf("at least one of lane name, city or carrier is required")
	}

	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"should":               shouldClauses,
				"minimum_should_match": 1,
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"_score": "desc"},
			map[string]interface{}{"createdAt": map[string]interface{}{"order": "desc", "unmapped_type": "date"}},
		},
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{search.Index},
		Body:  strings.NewReader(string(body)),
		From:  &search.From,
		Size:  &search.Size,
	}
	return &req, nil
}

func runSearch(ctx context.Context, esClient *elasticsearch.Client, search insightSearch) (*searchResult, error) {
	req, err := buildSearchRequest(search)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	hits, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("malformed search response")
	}

	result := &searchResult{Took: time.Since(start).Milliseconds()}
	if total, ok := hits["total"].(map[string]interface{}); ok {
		if value, ok := total["value"].(float64); ok {
			result.TotalHits = int64(value)
		}
	}
	if maxScore, ok := hits["max_score"].(float64); ok {
		result.MaxScore = maxScore
	}
	if hitList, ok := hits["hits"].([]interface{}); ok {
		for _, hit := range hitList {
			if source, ok := hit.(map[string]interface{})["_source"].(map[string]interface{}); ok {
				result.Data = append(result.Data, source)
			}
		}
	}
	return result, nil
}
