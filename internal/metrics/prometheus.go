package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "chowpay"

type PrometheusCollector struct {
	operationDuration *prometheus.HistogramVec
	operationResults  *prometheus.CounterVec
	cacheLookups      *prometheus.CounterVec
	errors            *prometheus.CounterVec
	transactions      *prometheus.CounterVec
	transactionVolume *prometheus.CounterVec
}

// NewPrometheusCollector registers the collectors on reg. Passing nil
// uses the default registry.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusCollector{
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of ledger operations",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2, 5, 10},
			},
			[]string{"operation"},
		),
		operationResults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operation_results_total",
				Help:      "Ledger operations by result",
			},
			[]string{"operation", "result"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Wallet cache lookups by outcome",
			},
			[]string{"cache", "outcome"},
		),
		errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Errors by operation and type",
			},
			[]string{"operation", "type"},
		),
		transactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "wallet_transactions_total",
				Help:      "Ledger rows reaching a status",
			},
			[]string{"type", "status"},
		),
		transactionVolume: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "wallet_transaction_volume",
				Help:      "Sum of ledger amounts reaching a status",
			},
			[]string{"type", "status"},
		),
	}
}

func (c *PrometheusCollector) RecordOperationDuration(operation string, duration time.Duration) {
	c.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (c *PrometheusCollector) RecordOperationResult(operation, result string) {
	c.operationResults.WithLabelValues(operation, result).Inc()
}

// cache keys carry ids; only the prefix is used as a label
func (c *PrometheusCollector) RecordCacheHit(key string) {
	c.cacheLookups.WithLabelValues(cacheLabel(key), "hit").Inc()
}

func (c *PrometheusCollector) RecordCacheMiss(key string) {
	c.cacheLookups.WithLabelValues(cacheLabel(key), "miss").Inc()
}

func (c *PrometheusCollector) RecordError(operation, errType string) {
	c.errors.WithLabelValues(operation, errType).Inc()
}

func (c *PrometheusCollector) RecordTransaction(txType, status string, amount decimal.Decimal) {
	c.transactions.WithLabelValues(txType, status).Inc()
	c.transactionVolume.WithLabelValues(txType, status).Add(amount.InexactFloat64())
}

func cacheLabel(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			// keep the first two segments, e.g. "wallet:profile"
			for j := i + 1; j < len(key); j++ {
				if key[j] == ':' {
					return key[:j]
				}
			}
			return key
		}
	}
	return key
}
