package camunda

import (
	"context"
	"time"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/config"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/errors"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/metrics"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// JobHandler processes one job. Handlers complete or fail the job themselves;
// the returned error only drives metrics and logging.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job) error
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   *zap.Logger
	taskType string
}

// NewWorker opens a job worker for taskType. Every job is counted, timed and
// recorded in both the prometheus collectors and the otel meter.
func NewWorker(
	client zbc.Client,
	taskType string,
	cfg config.WorkerConfig,
	handler JobHandler,
	obs *observability.Observability,
	logger *zap.Logger,
) *CamundaWorker {
	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(instrument(taskType, handler, obs, logger)).
		MaxJobsActive(cfg.MaxJobsActive).
		Timeout(config.GetDuration(cfg.Timeout)).
		Name(taskType).
		Open()

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   logger,
		taskType: taskType,
	}
}

// instrument adapts a JobHandler to the zeebe handler signature.
func instrument(taskType string, handler JobHandler, obs *observability.Observability, logger *zap.Logger) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		defer metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()

		start := time.Now()
		err := handler.Handle(client, job)
		elapsed := time.Since(start)

		status := observability.StatusCompleted
		if err != nil {
			status = observability.StatusFailed
			code := errors.AsStandardError(err).Code
			metrics.WorkerJobsFailed.WithLabelValues(taskType, string(code)).Inc()
			logger.Error("handler returned error",
				zap.Error(err),
				zap.Int64("jobKey", job.Key),
				zap.String("errorCode", string(code)),
			)
		} else {
			metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		}

		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())

		ctx := context.Background()
		obs.RecordJobProcessed(ctx, taskType, status)
		obs.RecordJobDuration(ctx, taskType, elapsed, status)
	}
}

func (w *CamundaWorker) TaskType() string {
	return w.taskType
}

func (w *CamundaWorker) Start() {
	w.logger.Info("worker started", zap.String("taskType", w.taskType))
}

// Stop closes the job worker and waits for in-flight jobs. The shared zeebe
// client is closed by its owner.
func (w *CamundaWorker) Stop(ctx context.Context) {
	w.logger.Info("stopping worker", zap.String("taskType", w.taskType))

	done := make(chan struct{})
	go func() {
		w.worker.Close()
		w.worker.AwaitClose()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		w.logger.Warn("worker did not stop before deadline", zap.String("taskType", w.taskType))
	}
}
