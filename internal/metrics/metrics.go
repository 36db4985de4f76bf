package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DispatchedTotal counts packets handed to the channel by kind (transfer, refund)
	DispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "icp_dispatched_total",
			Help: "Total number of packets dispatched to the channel",
		},
		[]string{"kind"},
	)

	// ReceiptsTotal counts applied receipts by outcome
	ReceiptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "icp_receipts_total",
			Help: "Total number of channel receipts by escrow outcome",
		},
		[]string{"outcome"},
	)

	// ReceivedTotal counts transfers applied from the peer by settlement kind
	ReceivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "icp_received_total",
			Help: "Total number of peer transfers applied",
		},
		[]string{"kind"},
	)

	// EscrowPending tracks the number of escrow entries awaiting a receipt
	EscrowPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "icp_escrow_pending",
			Help: "Number of escrow entries awaiting a receipt",
		},
	)

	// DepositsTotal counts native deposits accepted
	DepositsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "icp_deposits_total",
			Help: "Total number of native deposits accepted",
		},
	)

	// OutboxActionsTotal counts outbox delivery results by kind and status
	OutboxActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "icp_outbox_actions_total",
			Help: "Total number of outbox delivery attempts",
		},
		[]string{"kind", "status"},
	)

	// OutboxBatchDuration tracks the time spent relaying one outbox batch
	OutboxBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "icp_outbox_batch_duration_seconds",
			Help:    "Outbox batch relay duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ErrorsTotal counts errors by type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "icp_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)
