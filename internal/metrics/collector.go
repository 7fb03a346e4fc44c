// Package metrics records ledger and payment metrics.
package metrics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation results
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Collector is implemented by NoopCollector and PrometheusCollector.
type Collector interface {
	// Operation metrics
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)

	// Cache metrics
	RecordCacheHit(key string)
	RecordCacheMiss(key string)

	// Error metrics
	RecordError(operation, errType string)

	// Transaction metrics
	RecordTransaction(txType, status string, amount decimal.Decimal)
}

// NoopCollector is a no-op implementation of Collector
type NoopCollector struct{}

func (NoopCollector) RecordOperationDuration(string, time.Duration)     {}
func (NoopCollector) RecordOperationResult(string, string)              {}
func (NoopCollector) RecordCacheHit(string)                             {}
func (NoopCollector) RecordCacheMiss(string)                            {}
func (NoopCollector) RecordError(string, string)                        {}
func (NoopCollector) RecordTransaction(string, string, decimal.Decimal) {}
