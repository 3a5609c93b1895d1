package telemetry

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "path"},
	)

	// User metrics
	UsersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_users_created_total",
			Help: "Total number of registered users",
		},
	)

	UserCreateRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_user_create_rejected_total",
			Help: "Total number of rejected user registrations",
		},
		[]string{"reason"}, // duplicate_email, validation
	)

	// Transfer metrics
	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_transfers_total",
			Help: "Total number of transfer attempts",
		},
		[]string{"status"}, // success, sender_not_found, receiver_not_found, self_transfer, ...
	)

	TransferAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ledger_transfer_amount",
			Help:    "Distribution of successfully transferred amounts",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000, 10000, 50000},
		},
	)

	// Ledger state
	UsersGauge = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "ledger_users",
			Help: "Number of registered users",
		},
		func() float64 {
			if src := ledgerSource.Load(); src != nil {
				return float64(src.stats.Count())
			}
			return 0
		},
	)

	TotalBalanceGauge = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "ledger_total_balance",
			Help: "Sum of all user balances",
		},
		func() float64 {
			if src := ledgerSource.Load(); src != nil {
				return src.stats.TotalBalance()
			}
			return 0
		},
	)
)

// LedgerStats is read on every scrape of the ledger gauges.
type LedgerStats interface {
	Count() int
	TotalBalance() float64
}

type ledgerStatsSource struct {
	stats LedgerStats
}

var ledgerSource atomic.Pointer[ledgerStatsSource]

// ObserveLedger points the ledger gauges at stats, replacing any previous source.
func ObserveLedger(stats LedgerStats) {
	ledgerSource.Store(&ledgerStatsSource{stats: stats})
}
