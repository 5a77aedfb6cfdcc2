// internal/common/metrics/metrics.go
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

	RateQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_queries_total",
			Help: "Total number of rate queries by path and outcome",
		},
		[]string{"path", "outcome"},
	)

	RateQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "rate_query_duration_seconds",
			Help: "Duration of rate queries in seconds",
		},
		[]string{"path"},
	)

	ReadinessTierTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_tier_transitions_total",
			Help: "Readiness tier transitions per conversation slot updates",
		},
		[]string{"tier"},
	)
)
