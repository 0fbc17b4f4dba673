package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	EligibilityScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eligibility_score",
			Help:    "Distribution of total eligibility scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
		[]string{"engine"},
	)

	EligibilityRecommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eligibility_recommendations_total",
			Help: "Recommendations issued per engine, status and tier",
		},
		[]string{"engine", "status", "tier"},
	)

	ClientProfileCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_profile_cache_total",
			Help: "Client profile cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
)

// Engine label values.
const (
	EngineLoan    = "loan"
	EngineDeposit = "deposit"
)

// RecordScore observes one scoring outcome.
func RecordScore(engine string, totalScore int, status, tier string) {
	EligibilityScore.WithLabelValues(engine).Observe(float64(totalScore))
	EligibilityRecommendations.WithLabelValues(engine, status, tier).Inc()
}
