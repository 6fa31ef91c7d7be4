package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyReturns(t *testing.T) {
	assert.Nil(t, DailyReturns(nil))
	assert.Nil(t, DailyReturns([]float64{1}))

	got := DailyReturns([]float64{100, 110, 99})
	assert.InDeltaSlice(t, []float64{0.10, -0.10}, got, 1e-12)
}

func TestCumulativeReturns(t *testing.T) {
	got := CumulativeReturns([]float64{50, 55, 45})
	assert.InDeltaSlice(t, []float64{0, 10, -10}, got, 1e-12)
	assert.Nil(t, CumulativeReturns([]float64{0, 1}))
	assert.Nil(t, CumulativeReturns(nil))
}

func TestSampleStd(t *testing.T) {
	assert.True(t, math.IsNaN(SampleStd([]float64{1})))
	// sample std of 2,4,4,4,5,5,7,9 is sqrt(32/7)
	assert.InDelta(t, math.Sqrt(32.0/7.0), SampleStd([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
}

func TestMaxDrawdown(t *testing.T) {
	// 100 -> 120 -> 90 -> 108: worst fall is 120 -> 90 = -25%
	r := DailyReturns([]float64{100, 120, 90, 108})
	assert.InDelta(t, -0.25, MaxDrawdown(r), 1e-12)
	assert.Equal(t, 0.0, MaxDrawdown([]float64{0.01, 0.02}))
	assert.Equal(t, 0.0, MaxDrawdown(nil))
}

func TestPercentile(t *testing.T) {
	xs := []float64{5, 1, 4, 2, 3}
	assert.Equal(t, 1.0, Percentile(xs, 0))
	assert.Equal(t, 5.0, Percentile(xs, 100))
	assert.InDelta(t, 1.2, Percentile(xs, 5), 1e-12)
	assert.True(t, math.IsNaN(Percentile(nil, 5)))
}
