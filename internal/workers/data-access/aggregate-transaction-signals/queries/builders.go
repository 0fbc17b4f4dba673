package queries

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrMissingIndex    = errors.New("index name is required")
	ErrMissingClientID = errors.New("client id is required")
	ErrInvalidLookback = errors.New("lookback months must be positive")
)

// Field names in the transactions index.
const (
	ClientIDField  = "clientId"
	CreatedAtField = "createdAt"
)

const monthlyAggregation = "monthly"

// MonthlyActivity counts a client's transactions per calendar month over the
// last LookbackMonths months plus the current one.
type MonthlyActivity struct {
	Index          string
	ClientID       string
	LookbackMonths int
}

func (q MonthlyActivity) validate() error {
	switch {
	case q.Index == "":
		return ErrMissingIndex
	case q.ClientID == "":
		return ErrMissingClientID
	case q.LookbackMonths < 1:
		return ErrInvalidLookback
	}
	return nil
}

// Body is the search body. Empty months are kept so that the variance sees them.
func (q MonthlyActivity) Body() map[string]interface{} {
	from := fmt.Sprintf("now-%dM/M", q.LookbackMonths)
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{ClientIDField: q.ClientID},
					},
					map[string]interface{}{
						"range": map[string]interface{}{
							CreatedAtField: map[string]interface{}{"gte": from},
						},
					},
				},
			},
		},
		"aggs": map[string]interface{}{
			monthlyAggregation: map[string]interface{}{
				"date_histogram": map[string]interface{}{
					"field":             CreatedAtField,
					"calendar_interval": "month",
					"min_doc_count":     0,
					"extended_bounds": map[string]interface{}{
						"min": from,
						"max": "now/M",
					},
				},
			},
		},
	}
}

func BuildQuery(q MonthlyActivity) (*esapi.SearchRequest, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(q.Body())
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	size := 0
	return &esapi.SearchRequest{
		Index: []string{q.Index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}, nil
}
