package camunda

import (
	stderrors "errors"
	"testing"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/errors"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type handlerFunc func(client worker.JobClient, job entities.Job) error

func (f handlerFunc) Handle(client worker.JobClient, job entities.Job) error {
	return f(client, job)
}

func TestInstrument_Completed(t *testing.T) {
	const taskType = "instrument-completed"
	called := false

	handler := instrument(taskType, handlerFunc(func(worker.JobClient, entities.Job) error {
		called = true
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
		return nil
	}), nil, zaptest.NewLogger(t))

	handler(nil, createMockJob(7, "{}"))

	assert.True(t, called)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(taskType)))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
}

func TestInstrument_Failed(t *testing.T) {
	const taskType = "instrument-failed"

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"standard error", errors.NewLoanDeniedError("client-1", 20), "LOAN_DENIED"},
		{"plain error", stderrors.New("boom"), string(errors.ErrCodeInternal)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := instrument(taskType, handlerFunc(func(worker.JobClient, entities.Job) error {
				return tt.err
			}), nil, zaptest.NewLogger(t))

			handler(nil, createMockJob(8, "{}"))

			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(taskType, tt.wantCode)))
		})
	}
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(taskType)))
}
