package calculatedepositscore

import (
	"context"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/camunda"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/errors"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/logger"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/metrics"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/profile"
	"github.com/Nurbek-dev001/World-banking-system/internal/models"
	"github.com/Nurbek-dev001/World-banking-system/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-deposit-score"
)

type Handler struct {
	config   *Config
	profiles profile.Source
	resolver *profile.Resolver
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, profiles profile.Source, resolver *profile.Resolver, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		profiles: profiles,
		resolver: resolver,
		errors:   errors.NewErrorHandler(scoped),
		logger:   scoped,
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
	p, err := profile.Resolve(ctx, h.profiles, input.ClientID, input.Profile)
	if err != nil {
		return nil, err
	}

	in := h.resolver.DepositInput(p, input.TransactionSignals, input.MonthlyIncome)
	if err := scoring.ValidateDepositInput(in); err != nil {
		return nil, errors.NewInvalidScoringInputError(err)
	}

	result := scoring.ScoreDeposit(in)
	metrics.RecordScore(metrics.EngineDeposit, result.TotalScore,
		string(result.Recommendation.Status), string(result.DepositTier))

	h.logger.Info("deposit score calculated", map[string]interface{}{
		"clientId":   input.ClientID,
		"totalScore": result.TotalScore,
		"status":     result.Recommendation.Status,
		"tier":       result.DepositTier,
	})

	return &Output{DepositScore: models.NewDepositScore(result)}, nil
}
