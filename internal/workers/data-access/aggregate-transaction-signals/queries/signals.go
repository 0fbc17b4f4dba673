package queries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/Nurbek-dev001/World-banking-system/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/shopspring/decimal"
)

var ErrIndexNotFound = errors.New("index not found")

const indexNotFoundType = "index_not_found_exception"

type searchResponse struct {
	Aggregations struct {
		Monthly struct {
			Buckets []struct {
				KeyAsString string `json:"key_as_string"`
				DocCount    int64  `json:"doc_count"`
			} `json:"buckets"`
		} `json:"monthly"`
	} `json:"aggregations"`
}

type errorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// Execute runs the monthly activity search and returns the per-month counts,
// oldest first.
func Execute(ctx context.Context, client *elasticsearch.Client, q MonthlyActivity) ([]int64, error) {
	req, err := BuildQuery(q)
	if err != nil {
		return nil, err
	}

	res, err := req.Do(ctx, client)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		var e errorResponse
		_ = json.NewDecoder(res.Body).Decode(&e)
		if res.StatusCode == http.StatusNotFound || e.Error.Type == indexNotFoundType {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, q.Index)
		}
		return nil, fmt.Errorf("search failed: %s %s: %s", res.Status(), e.Error.Type, e.Error.Reason)
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	counts := make([]int64, 0, len(r.Aggregations.Monthly.Buckets))
	for _, b := range r.Aggregations.Monthly.Buckets {
		counts = append(counts, b.DocCount)
	}
	return counts, nil
}

// Summarize turns monthly counts into scoring signals. The variance signal is
// the population standard deviation of the counts.
func Summarize(counts []int64) models.TransactionSignals {
	if len(counts) == 0 {
		return models.TransactionSignals{}
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	months := float64(len(counts))
	mean := float64(total) / months

	var squares float64
	for _, c := range counts {
		d := float64(c) - mean
		squares += d * d
	}

	return models.TransactionSignals{
		TotalTransactions:          int(total),
		AverageMonthlyTransactions: round2(mean),
		MonthlyVariance:            round2(math.Sqrt(squares / months)),
		MonthsObserved:             len(counts),
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
