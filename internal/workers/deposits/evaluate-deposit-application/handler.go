package evaluatedepositapplication

import (
	"context"
	"time"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/camunda"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/errors"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/logger"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/metrics"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/profile"
	"github.com/Nurbek-dev001/World-banking-system/internal/models"
	"github.com/Nurbek-dev001/World-banking-system/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TaskType = "evaluate-deposit-application"
)

type Handler struct {
	config   *Config
	profiles profile.Source
	resolver *profile.Resolver
	errors   *errors.ErrorHandler
	logger   logger.Logger
	now      func() time.Time
}

func NewHandler(config *Config, profiles profile.Source, resolver *profile.Resolver, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		profiles: profiles,
		resolver: resolver,
		errors:   errors.NewErrorHandler(scoped),
		logger:   scoped,
		now:      time.Now,
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
	if err := validateTerms(h.config, input); err != nil {
		return nil, err
	}

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

	amount := decimal.NewFromFloat(input.Amount)
	if err := checkCeiling(amount, result.MaxDepositAmount); err != nil {
		return nil, err
	}

	// The deposit model has no deny band; its lowest band goes to manual review.
	status := ApplicationApproved
	if result.Recommendation.Status == scoring.StatusReview {
		status = ApplicationReview
	}

	rate := result.RecommendedInterestRate
	expectedInterest := scoring.SimpleInterest(amount, rate, input.DurationMonths)

	output := &Output{
		EvaluationID:      uuid.NewString(),
		ApplicationStatus: status,
		DepositScore:      models.NewDepositScore(result),
		DepositTier:       result.DepositTier,
		InterestRate:      rate.InexactFloat64(),
		ExpectedInterest:  expectedInterest.InexactFloat64(),
		MaturityAmount:    amount.Add(expectedInterest).InexactFloat64(),
		MaturityDate:      h.now().UTC().AddDate(0, input.DurationMonths, 0).Format(maturityDateLayout),
	}

	h.logger.Info("deposit application evaluated", map[string]interface{}{
		"clientId":          input.ClientID,
		"evaluationId":      output.EvaluationID,
		"applicationStatus": status,
		"depositType":       input.DepositType,
		"totalScore":        result.TotalScore,
		"tier":              result.DepositTier,
	})

	return output, nil
}
