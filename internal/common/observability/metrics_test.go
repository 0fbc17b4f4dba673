package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/logger"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservability_RecordsJobs(t *testing.T) {
	reg := promclient.NewRegistry()
	obs := New("eligibility-workers-test", reg, logger.NewTestLogger(t))

	ctx := context.Background()
	obs.RecordJobProcessed(ctx, "calculate-loan-score", StatusCompleted)
	obs.RecordJobDuration(ctx, "calculate-loan-score", 25*time.Millisecond, StatusCompleted)

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	joined := strings.Join(names, ",")
	assert.Contains(t, joined, "jobs.processed_total")
	assert.Contains(t, joined, "jobs.duration_milliseconds")

	assert.NoError(t, obs.Shutdown(ctx))
}

func TestObservability_SubMillisecondDuration(t *testing.T) {
	reg := promclient.NewRegistry()
	obs := New("eligibility-workers-test", reg, logger.NewTestLogger(t))

	ctx := context.Background()
	obs.RecordJobDuration(ctx, "calculate-loan-score", 250*time.Microsecond, StatusCompleted)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() != "jobs.duration_milliseconds" {
			continue
		}
		require.Len(t, f.GetMetric(), 1)
		h := f.GetMetric()[0].GetHistogram()
		assert.Equal(t, uint64(1), h.GetSampleCount())
		assert.InDelta(t, 0.25, h.GetSampleSum(), 1e-9)
		found = true
	}
	assert.True(t, found)

	assert.NoError(t, obs.Shutdown(ctx))
}

func TestObservability_ZeroValueIsSafe(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		obs.RecordJobProcessed(context.Background(), "x", StatusFailed)
		obs.RecordJobDuration(context.Background(), "x", time.Second, StatusFailed)
		assert.NoError(t, obs.Shutdown(context.Background()))
	})
}
