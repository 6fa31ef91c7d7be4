package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordProviderCall("chart", 0.2, nil)
	r.RecordProviderCall("chart", 0.3, errors.New("x"))
	r.RecordCacheLookup(true)
	r.RecordCacheLookup(false)
	r.RecordCacheLookup(false)
	r.RecordNewsSourceError("Reuters Business")
	r.RecordLastPrice("AAPL", 190.5)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.providerCalls.WithLabelValues("chart", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.providerCalls.WithLabelValues("chart", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.newsErrors.WithLabelValues("Reuters Business")))
	assert.Equal(t, 190.5, testutil.ToFloat64(r.lastPrice.WithLabelValues("AAPL")))

	// a second recorder on a separate registry must not panic
	assert.NotPanics(t, func() { New(prometheus.NewRegistry()) })
}
