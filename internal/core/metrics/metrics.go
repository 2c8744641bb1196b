package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckpointsTotal counts accepted checkpoints by result status.
	CheckpointsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkpoints_total",
		Help: "Accepted checkpoints by result status",
	}, []string{"status"})

	// CheckpointRejectionsTotal counts rejected checkpoint submissions by reason.
	CheckpointRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkpoint_rejections_total",
		Help: "Rejected checkpoint submissions by reason",
	}, []string{"reason"})

	// AnomaliesTotal counts recorded anomalies.
	AnomaliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anomalies_total",
		Help: "Recorded anomalies by type and severity",
	}, []string{"type", "severity"})

	// LedgerOperationsTotal counts ledger calls by operation and outcome status.
	LedgerOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_operations_total",
		Help: "Ledger append/verify calls by outcome",
	}, []string{"op", "status"})

	// InterpretationsTotal counts anomaly enrichments by outcome.
	InterpretationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interpretations_total",
		Help: "Anomaly interpretations by outcome",
	}, []string{"status"})

	// StorageFailuresTotal counts records lost after their checkpoint was committed.
	StorageFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkpoint_storage_failures_total",
		Help: "Telemetry and anomaly writes that failed after a committed checkpoint",
	}, []string{"record"})

	// CheckpointDuration observes the synchronous part of checkpoint processing.
	CheckpointDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkpoint_duration_seconds",
		Help:    "Time spent processing a checkpoint submission",
		Buckets: prometheus.DefBuckets,
	})
)
