package aggregatetransactionsignals

import (
	"context"
	stderrors "errors"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/camunda"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/errors"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/logger"
	"github.com/Nurbek-dev001/World-banking-system/internal/workers/data-access/aggregate-transaction-signals/queries"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
)

const (
	TaskType = "aggregate-transaction-signals"

	queryType = "transaction_signals"
)

type Handler struct {
	config *Config
	client *elasticsearch.Client
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, client *elasticsearch.Client, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		client: client,
		errors: errors.NewErrorHandler(scoped),
		logger: scoped,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := camunda.DecodeVariables(job, GetInputSchema(), &input); err != nil {
		return h.errors.HandleJobError(ctx, client, job, err)
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		return h.errors.HandleJobError(ctx, client, job, err)
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return err
	}
	return nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	lookback := h.config.DefaultLookbackMonths
	if input.LookbackMonths != nil {
		lookback = *input.LookbackMonths
	}

	counts, err := queries.Execute(ctx, h.client, queries.MonthlyActivity{
		Index:          h.config.Index,
		ClientID:       input.ClientID,
		LookbackMonths: lookback,
	})
	if err != nil {
		return nil, h.mapSearchError(ctx, err)
	}

	signals := queries.Summarize(counts)
	h.logger.Info("transaction signals aggregated", map[string]interface{}{
		"clientId":          input.ClientID,
		"lookbackMonths":    lookback,
		"monthsObserved":    signals.MonthsObserved,
		"totalTransactions": signals.TotalTransactions,
	})

	return &Output{TransactionSignals: signals}, nil
}

func (h *Handler) mapSearchError(ctx context.Context, err error) error {
	switch {
	case stderrors.Is(err, queries.ErrIndexNotFound):
		return errors.NewIndexNotFoundError(h.config.Index)
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(ctx.Err(), context.DeadlineExceeded):
		return errors.NewSearchTimeoutError(queryType)
	default:
		return errors.NewSearchQueryFailedError(queryType, err)
	}
}
