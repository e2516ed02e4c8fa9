package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncPasses counts completed sync passes by outcome (clean/partial/aborted).
	SyncPasses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_passes_total",
		Help: "Total number of sync passes executed",
	}, []string{"outcome"})

	// PassDuration measures how long a full sync pass takes.
	PassDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sync_pass_duration_seconds",
		Help:    "Duration of a sync pass in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// Deliveries counts webhook delivery attempts by status (success/failure).
	Deliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_deliveries_total",
		Help: "Total number of webhook delivery attempts",
	}, []string{"status"})

	// UnsyncedBacklog tracks the number of transactions still awaiting sync
	// after the most recent pass. The primary indicator of delivery lag.
	UnsyncedBacklog = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sync_unsynced_backlog",
		Help: "Number of unsynced transactions after the last sync pass",
	})

	// IntakeTransactions counts accepted intake operations by kind.
	IntakeTransactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intake_transactions_total",
		Help: "Total number of inventory transactions recorded",
	}, []string{"operation"})
)
