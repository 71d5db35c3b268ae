package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCollector(t *testing.T) {
	c := New(prometheus.NewRegistry())

	c.RecordSettlement("success")
	c.RecordSettlement("success")
	c.RecordSettlement("failed")
	c.RecordVolume("wallet_credit", decimal.NewFromInt(900))
	c.RecordVolume("commission", decimal.NewFromInt(100))
	c.RecordCacheHit()
	c.RecordCacheMiss()
	c.RecordCacheMiss()
	c.RecordError("withdraw", "INSUFFICIENT_BALANCE")
	c.RecordOperationResult("credit", "success")
	c.RecordOperationDuration("credit", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.settlements.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.settlements.WithLabelValues("failed")))
	assert.Equal(t, 900.0, testutil.ToFloat64(c.volume.WithLabelValues("wallet_credit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errors.WithLabelValues("withdraw", "INSUFFICIENT_BALANCE")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.operationDuration))
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
