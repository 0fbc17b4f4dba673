package queries

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	req, err := BuildQuery(MonthlyActivity{Index: "transactions", ClientID: "client-1", LookbackMonths: 6})
	require.NoError(t, err)

	assert.Equal(t, []string{"transactions"}, req.Index)
	require.NotNil(t, req.Size)
	assert.Equal(t, 0, *req.Size)

	raw, err := io.ReadAll(req.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))

	filters := body["query"].(map[string]interface{})["bool"].(map[string]interface{})["filter"].([]interface{})
	require.Len(t, filters, 2)
	assert.Equal(t, "client-1", filters[0].(map[string]interface{})["term"].(map[string]interface{})["clientId"])
	assert.Equal(t, "now-6M/M", filters[1].(map[string]interface{})["range"].(map[string]interface{})["createdAt"].(map[string]interface{})["gte"])

	histogram := body["aggs"].(map[string]interface{})["monthly"].(map[string]interface{})["date_histogram"].(map[string]interface{})
	assert.Equal(t, "createdAt", histogram["field"])
	assert.Equal(t, "month", histogram["calendar_interval"])
	assert.Equal(t, float64(0), histogram["min_doc_count"])
	assert.Equal(t, map[string]interface{}{"min": "now-6M/M", "max": "now/M"}, histogram["extended_bounds"])
}

func TestBuildQuery_Invalid(t *testing.T) {
	tests := []struct {
		name string
		q    MonthlyActivity
		want error
	}{
		{"missing index", MonthlyActivity{ClientID: "c", LookbackMonths: 1}, ErrMissingIndex},
		{"missing client", MonthlyActivity{Index: "transactions", LookbackMonths: 1}, ErrMissingClientID},
		{"zero lookback", MonthlyActivity{Index: "transactions", ClientID: "c"}, ErrInvalidLookback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildQuery(tt.q)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
