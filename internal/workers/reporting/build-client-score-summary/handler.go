package buildclientscoresummary

import (
	"context"
	stderrors "errors"

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
	TaskType = "build-client-score-summary"
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

// Execute scores every requested client. Clients that cannot be scored get
// an error entry; store outages fail the whole job so it can be retried.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	output := &Output{Clients: make([]ClientSummary, 0, len(input.ClientIDs))}
	seen := make(map[string]struct{}, len(input.ClientIDs))

	for _, clientID := range input.ClientIDs {
		if _, dup := seen[clientID]; dup {
			continue
		}
		seen[clientID] = struct{}{}

		if err := ctx.Err(); err != nil {
			return nil, errors.NewTimeoutError("client score summary", err)
		}

		entry, err := h.summarize(ctx, clientID, input.Detail)
		if err != nil {
			return nil, err
		}
		if entry.Error != nil {
			output.Failed++
		} else {
			output.Scored++
		}
		output.Clients = append(output.Clients, entry)
	}

	if err := validateOutput(output); err != nil {
		return nil, err
	}

	h.logger.Info("client score summary built", map[string]interface{}{
		"requested": len(input.ClientIDs),
		"scored":    output.Scored,
		"failed":    output.Failed,
		"detail":    input.Detail,
	})
	return output, nil
}

func (h *Handler) summarize(ctx context.Context, clientID string, detail bool) (ClientSummary, error) {
	entry := ClientSummary{ClientID: clientID}

	p, err := profile.Resolve(ctx, h.profiles, clientID, nil)
	if err != nil {
		if stdErr, ok := entryError(err); ok {
			entry.Error = &EntryError{Code: string(stdErr.Code), Message: stdErr.Message}
			return entry, nil
		}
		return entry, err
	}

	loanIn := h.resolver.LoanInput(p, nil)
	depositIn := h.resolver.DepositInput(p, nil, p.MonthlyIncome)
	if err := scoring.ValidateLoanInput(loanIn); err != nil {
		return invalid(entry, err), nil
	}
	if err := scoring.ValidateDepositInput(depositIn); err != nil {
		return invalid(entry, err), nil
	}

	loan := scoring.ScoreLoan(loanIn)
	deposit := scoring.ScoreDeposit(depositIn)
	metrics.RecordScore(metrics.EngineLoan, loan.TotalScore,
		string(loan.Recommendation.Status), string(loan.Recommendation.Tier))
	metrics.RecordScore(metrics.EngineDeposit, deposit.TotalScore,
		string(deposit.Recommendation.Status), string(deposit.DepositTier))

	entry.Loan = &LoanSummary{
		Score:      loan.TotalScore,
		Percentage: loan.Percentage,
		Status:     loan.Recommendation.Status,
		Tier:       loan.Recommendation.Tier,
	}
	entry.Deposit = &DepositSummary{
		Score:        deposit.TotalScore,
		Percentage:   deposit.Percentage,
		Tier:         deposit.DepositTier,
		InterestRate: deposit.RecommendedInterestRate.InexactFloat64(),
	}
	if detail {
		loanScore := models.NewLoanScore(loan)
		depositScore := models.NewDepositScore(deposit)
		entry.LoanScore = &loanScore
		entry.DepositScore = &depositScore
	}
	return entry, nil
}

func invalid(entry ClientSummary, err error) ClientSummary {
	stdErr := errors.NewInvalidScoringInputError(err)
	entry.Error = &EntryError{Code: string(stdErr.Code), Message: stdErr.Details}
	return entry
}

// entryError reports whether err belongs to a single client rather than the batch.
func entryError(err error) (*errors.StandardError, bool) {
	var stdErr *errors.StandardError
	if !stderrors.As(err, &stdErr) {
		return nil, false
	}
	return stdErr, stdErr.Code == errors.ErrCodeClientProfileNotFound
}
