// Package metrics exposes the prometheus collectors of the payment flow.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "broheal"

// Collector implements the metrics interfaces of the wallet and settlement
// services.
type Collector struct {
	operationDuration *prometheus.HistogramVec
	operationResults  *prometheus.CounterVec
	cacheLookups      *prometheus.CounterVec
	errors            *prometheus.CounterVec
	settlements       *prometheus.CounterVec
	volume            *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		operationDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of wallet and settlement operations",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"operation"},
		),
		operationResults: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operation_results_total",
				Help:      "Wallet and settlement operations by result",
			},
			[]string{"operation", "result"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "wallet_cache_lookups_total",
				Help:      "Wallet cache lookups by outcome",
			},
			[]string{"outcome"},
		),
		errors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Errors by operation and code",
			},
			[]string{"operation", "code"},
		),
		settlements: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "settlements_total",
				Help:      "Reconciled gateway callbacks by outcome",
			},
			[]string{"outcome"},
		),
		volume: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_volume_total",
				Help:      "Money moved through the ledger by transaction kind",
			},
			[]string{"kind"},
		),
	}
}

func (c *Collector) RecordOperationDuration(operation string, d time.Duration) {
	c.operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (c *Collector) RecordOperationResult(operation, result string) {
	c.operationResults.WithLabelValues(operation, result).Inc()
}

func (c *Collector) RecordCacheHit()  { c.cacheLookups.WithLabelValues("hit").Inc() }
func (c *Collector) RecordCacheMiss() { c.cacheLookups.WithLabelValues("miss").Inc() }

func (c *Collector) RecordError(operation, code string) {
	c.errors.WithLabelValues(operation, code).Inc()
}

func (c *Collector) RecordSettlement(outcome string) {
	c.settlements.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordVolume(kind string, amount decimal.Decimal) {
	c.volume.WithLabelValues(kind).Add(amount.InexactFloat64())
}
