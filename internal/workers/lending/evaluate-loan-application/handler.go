package evaluateloanapplication

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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TaskType = "evaluate-loan-application"
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
	if err := validateTerms(h.config, input); err != nil {
		return nil, err
	}

	p, err := profile.Resolve(ctx, h.profiles, input.ClientID, input.Profile)
	if err != nil {
		return nil, err
	}

	in := h.resolver.LoanInput(p, input.TransactionSignals)
	if err := scoring.ValidateLoanInput(in); err != nil {
		return nil, errors.NewInvalidScoringInputError(err)
	}

	result := scoring.ScoreLoan(in)
	metrics.RecordScore(metrics.EngineLoan, result.TotalScore,
		string(result.Recommendation.Status), string(result.Recommendation.Tier))

	if result.Recommendation.Status.IsHardStop() {
		h.logger.Warn("loan application denied", map[string]interface{}{
			"clientId":   input.ClientID,
			"totalScore": result.TotalScore,
		})
		return nil, errors.NewLoanDeniedError(input.ClientID, result.TotalScore)
	}

	amount := decimal.NewFromFloat(input.Amount)
	if amount.GreaterThan(result.EligibleLoanAmount) {
		return nil, errors.NewLoanAmountExceedsEligibleError(amount.StringFixed(2), result.EligibleLoanAmount.StringFixed(2))
	}

	rate := result.MaxInterestRate
	totalInterest := scoring.SimpleInterest(amount, rate, input.TenureMonths)
	totalPayable := amount.Add(totalInterest)

	status := ApplicationConditional
	if result.Recommendation.Status == scoring.StatusApproved {
		status = ApplicationApproved
	}

	output := &Output{
		EvaluationID:       uuid.NewString(),
		ApplicationStatus:  status,
		LoanScore:          models.NewLoanScore(result),
		InterestRate:       rate.InexactFloat64(),
		TotalInterest:      totalInterest.InexactFloat64(),
		TotalPayable:       totalPayable.InexactFloat64(),
		MonthlyPayment:     scoring.Installment(totalPayable, input.TenureMonths).InexactFloat64(),
		EligibleLoanAmount: result.EligibleLoanAmount.InexactFloat64(),
	}

	h.logger.Info("loan application evaluated", map[string]interface{}{
		"clientId":          input.ClientID,
		"evaluationId":      output.EvaluationID,
		"applicationStatus": status,
		"totalScore":        result.TotalScore,
		"purpose":           input.Purpose,
	})

	return output, nil
}
