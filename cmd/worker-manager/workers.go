package main

import (
	"github.com/Nurbek-dev001/World-banking-system/internal/common/camunda"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/config"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/logger"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/observability"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/profile"

	// Data access
	ats "github.com/Nurbek-dev001/World-banking-system/internal/workers/data-access/aggregate-transaction-signals"
	fcp "github.com/Nurbek-dev001/World-banking-system/internal/workers/data-access/fetch-client-profile"

	// Scoring
	cds "github.com/Nurbek-dev001/World-banking-system/internal/workers/scoring/calculate-deposit-score"
	cls "github.com/Nurbek-dev001/World-banking-system/internal/workers/scoring/calculate-loan-score"

	// Applications
	eda "github.com/Nurbek-dev001/World-banking-system/internal/workers/deposits/evaluate-deposit-application"
	ela "github.com/Nurbek-dev001/World-banking-system/internal/workers/lending/evaluate-loan-application"

	// Reporting
	bcs "github.com/Nurbek-dev001/World-banking-system/internal/workers/reporting/build-client-score-summary"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

type dependencies struct {
	cfg      *config.Config
	store    *profile.Store
	resolver *profile.Resolver
	es       *elasticsearch.Client
	log      logger.Logger
}

type registration struct {
	taskType string
	build    func(d *dependencies) camunda.JobHandler
}

// registrations lists every worker this process can run.
var registrations = []registration{
	{fcp.TaskType, func(d *dependencies) camunda.JobHandler {
		return fcp.NewHandler(fcp.NewConfig(d.cfg), d.store, d.resolver, d.log)
	}},
	{ats.TaskType, func(d *dependencies) camunda.JobHandler {
		return ats.NewHandler(ats.NewConfig(d.cfg), d.es, d.log)
	}},
	{cls.TaskType, func(d *dependencies) camunda.JobHandler {
		return cls.NewHandler(cls.NewConfig(d.cfg), d.store, d.resolver, d.log)
	}},
	{cds.TaskType, func(d *dependencies) camunda.JobHandler {
		return cds.NewHandler(cds.NewConfig(d.cfg), d.store, d.resolver, d.log)
	}},
	{ela.TaskType, func(d *dependencies) camunda.JobHandler {
		return ela.NewHandler(ela.NewConfig(d.cfg), d.store, d.resolver, d.log)
	}},
	{eda.TaskType, func(d *dependencies) camunda.JobHandler {
		return eda.NewHandler(eda.NewConfig(d.cfg), d.store, d.resolver, d.log)
	}},
	{bcs.TaskType, func(d *dependencies) camunda.JobHandler {
		return bcs.NewHandler(bcs.NewConfig(d.cfg), d.store, d.resolver, d.log)
	}},
}

// enabledRegistrations drops workers switched off under workers.<taskType>.enabled.
func enabledRegistrations(cfg *config.Config) []registration {
	enabled := make([]registration, 0, len(registrations))
	for _, r := range registrations {
		if config.IsWorkerEnabled(cfg, r.taskType) {
			enabled = append(enabled, r)
		}
	}
	return enabled
}

func startWorkers(zb *camunda.Client, d *dependencies, obs *observability.Observability, log *zap.Logger) []*camunda.CamundaWorker {
	var started []*camunda.CamundaWorker
	for _, r := range enabledRegistrations(d.cfg) {
		wcfg := config.GetWorkerConfig(d.cfg, r.taskType)
		w := camunda.NewWorker(zb.GetClient(), r.taskType, wcfg, r.build(d), obs, log)
		w.Start()
		started = append(started, w)
	}

	for _, r := range registrations {
		if !config.IsWorkerEnabled(d.cfg, r.taskType) {
			log.Info("worker disabled", zap.String("taskType", r.taskType))
		}
	}
	return started
}
