package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EscrowMetrics holds the operation counters for the escrow engine.
type EscrowMetrics struct {
	ContractsCreatedTotal   prometheus.CounterVec
	ContractsCompletedTotal prometheus.CounterVec
	ContractsCancelledTotal prometheus.CounterVec

	TransactionsCreatedTotal  prometheus.CounterVec
	TransactionsApprovedTotal prometheus.CounterVec
	DuplicateApprovalsTotal   prometheus.CounterVec

	DisputesOpenedTotal   prometheus.CounterVec
	DisputesResolvedTotal prometheus.CounterVec

	OperationDuration    prometheus.HistogramVec
	OperationErrorsTotal prometheus.CounterVec
}

func NewEscrowMetrics() *EscrowMetrics {
	return &EscrowMetrics{
		ContractsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_contracts_created_total",
				Help: "Total escrow contracts created",
			},
			[]string{"currency", "multisig"},
		),
		ContractsCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_contracts_completed_total",
				Help: "Total escrow contracts completed",
			},
			[]string{"currency"},
		),
		ContractsCancelledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_contracts_cancelled_total",
				Help: "Total escrow contracts cancelled",
			},
			[]string{"currency"},
		),
		TransactionsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_transactions_created_total",
				Help: "Total ledger transactions created",
			},
			[]string{"type"},
		),
		TransactionsApprovedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_transactions_approved_total",
				Help: "Total transactions that reached approval quorum",
			},
			[]string{"type"},
		),
		DuplicateApprovalsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_duplicate_approvals_total",
				Help: "Approvals rejected because the signer already approved",
			},
			[]string{"type"},
		),
		DisputesOpenedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_disputes_opened_total",
				Help: "Total disputes opened",
			},
			[]string{"scope"},
		),
		DisputesResolvedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_disputes_resolved_total",
				Help: "Total disputes resolved",
			},
			[]string{"scope"},
		),
		OperationDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "escrow_operation_duration_seconds",
				Help:    "Duration of escrow engine operations",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
			},
			[]string{"operation"},
		),
		OperationErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_operation_errors_total",
				Help: "Operations that returned an error, by status code",
			},
			[]string{"operation", "status"},
		),
	}
}
