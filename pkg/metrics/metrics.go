package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Record outcomes.
const (
	OutcomeSynced  = "synced"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

var (
	// RecordsProcessed counts every record a sync run looked at, by entity and outcome.
	RecordsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hcm_sync_records_processed_total",
		Help: "Total number of records processed by the sync pipeline",
	}, []string{"entity", "outcome"})

	// ManagersUnresolved counts employees whose manager reference matched no employee.
	ManagersUnresolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hcm_sync_managers_unresolved_total",
		Help: "Total number of manager references left unlinked",
	})

	// RunDuration measures a whole sync run, by kind (workbook/benefits).
	RunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hcm_sync_run_duration_seconds",
		Help:    "Duration of a sync run in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	// JobsProcessed counts background sync jobs by type and status (ok/dead_letter).
	JobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hcm_worker_jobs_processed_total",
		Help: "Total number of background sync jobs handled by the worker",
	}, []string{"type", "status"})

	// WebhooksReceived counts accepted webhook calls by topic.
	WebhooksReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hcm_webhooks_received_total",
		Help: "Total number of webhook events accepted",
	}, []string{"topic"})
)
