package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveComparison("Computed")
	m.ObserveComparison("Computed")
	m.ObserveComparison("Cache")
	m.ObserveEntryRejected("missing_fields")
	m.ObserveConversion(true)
	m.ObserveConversion(false)
	m.ObserveConversion(false)
	m.ObserveRequest("/health", "200")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.comparisons.WithLabelValues("Computed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.comparisons.WithLabelValues("Cache")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues("missing_fields")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.conversions.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.conversions.WithLabelValues("incompatible")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/health", "200")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveEntryRejected("non_positive_price")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `unitprice_entries_rejected_total{reason="non_positive_price"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	a := New()
	b := New()

	a.ObserveComparison("Computed")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.comparisons.WithLabelValues("Computed")))
}

func TestMetrics_CacheSize(t *testing.T) {
	m := New()
	size := 3
	m.ObserveCacheSize(func() int { return size })

	count, err := testutil.GatherAndCount(m.registry, "unitprice_cache_entries")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	size = 7
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, w.Body.String(), "unitprice_cache_entries 7")
}
