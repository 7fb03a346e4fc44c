package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewPrometheusCollector(reg)

	c.RecordOperationResult("pay", ResultSuccess)
	c.RecordOperationResult("pay", ResultSuccess)
	c.RecordOperationResult("pay", ResultFailure)
	c.RecordOperationDuration("pay", 120*time.Millisecond)
	c.RecordError("pay", "TRANSFER_FAILED")
	c.RecordTransaction("debit", "completed", decimal.NewFromInt(2000))
	c.RecordTransaction("debit", "completed", decimal.RequireFromString("500.50"))
	c.RecordCacheHit("wallet:profile:user-1")
	c.RecordCacheMiss("wallet:profile:user-2")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.operationResults.WithLabelValues("pay", ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operationResults.WithLabelValues("pay", ResultFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errors.WithLabelValues("pay", "TRANSFER_FAILED")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.transactions.WithLabelValues("debit", "completed")))
	assert.InDelta(t, 2500.50, testutil.ToFloat64(c.transactionVolume.WithLabelValues("debit", "completed")), 0.001)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheLookups.WithLabelValues("wallet:profile", "hit")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.operationDuration))
}

func TestCacheLabel(t *testing.T) {
	assert.Equal(t, "wallet:profile", cacheLabel("wallet:profile:abc"))
	assert.Equal(t, "wallet:profile", cacheLabel("wallet:profile"))
	assert.Equal(t, "plain", cacheLabel("plain"))
}
