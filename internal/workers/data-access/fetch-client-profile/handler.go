package fetchclientprofile

import (
	"context"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/camunda"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/errors"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/logger"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/profile"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "fetch-client-profile"
)

// invalidator is implemented by sources that cache profiles.
type invalidator interface {
	Invalidate(ctx context.Context, clientID string) error
}

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
	if input.Refresh {
		if inv, ok := h.profiles.(invalidator); ok {
			if err := inv.Invalidate(ctx, input.ClientID); err != nil {
				h.logger.Warn("failed to invalidate cached profile", map[string]interface{}{
					"clientId": input.ClientID,
					"error":    err.Error(),
				})
			}
		}
	}

	p, err := profile.Resolve(ctx, h.profiles, input.ClientID, nil)
	if err != nil {
		return nil, err
	}

	return &Output{
		Profile:          p,
		AccountAgeMonths: h.resolver.AccountAgeMonths(p.CreatedAt),
		LoanInput:        h.resolver.LoanInput(p, nil),
		DepositInput:     h.resolver.DepositInput(p, nil, p.MonthlyIncome),
	}, nil
}
