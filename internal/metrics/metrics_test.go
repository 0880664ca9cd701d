package metrics_test

import (
	"testing"
	"time"

	"github.com/mkhoa1412/code-challenge-sub003/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	assert.NotNil(t, m)
	// Check a few metrics to make sure they are initialized
	assert.NotNil(t, m.ResourceOperations)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.DatabaseConnections)
}

func TestRecordResourceOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordResourceOperation("create", "success")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResourceOperations.WithLabelValues("create", "success")))
	m.RecordResourceOperation("delete", "error")
	m.RecordResourceOperation("delete", "error")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ResourceOperations.WithLabelValues("delete", "error")))
}

func TestRecordValidationFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordValidationFailure("create")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("create")))
}

func TestRecordHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordHTTPRequest("GET", "/test", 200)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/test", "200")))
}

func TestRecordHTTPRequest_GroupedStatusCodes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordHTTPRequest("GET", "/test", 204)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/test", "2xx")))
	m.RecordHTTPRequest("GET", "/test", 422)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/test", "422")))
}

func TestRecordHTTPDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordHTTPDuration("GET", "/test", 100*time.Millisecond)

	count := testutil.CollectAndCount(m.HTTPRequestDuration)
	assert.Equal(t, 1, count)
}

func TestActiveConnections(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.IncrementActiveConnections()
	m.IncrementActiveConnections()
	m.DecrementActiveConnections()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveConnections))
}

func TestRecordRateLimitHit(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordRateLimitHit("/api/resources")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimitHits.WithLabelValues("/api/resources")))
}

func TestRecordInvalidToken(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordInvalidToken()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvalidTokens))
}

func TestRecordTokenIssued(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordTokenIssued("success")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TokenIssued.WithLabelValues("success")))
}

func TestUpdateDatabaseConnections(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.UpdateDatabaseConnections(7)
	assert.Equal(t, 7.0, testutil.ToFloat64(m.DatabaseConnections))
}

func TestSetBackgroundTaskStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.SetBackgroundTaskStatus("pool_monitor", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BackgroundTasks.WithLabelValues("pool_monitor")))
	m.SetBackgroundTaskStatus("pool_monitor", false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BackgroundTasks.WithLabelValues("pool_monitor")))
}
