package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(ps []*float64) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		if p == nil {
			out[i] = nil
			continue
		}
		out[i] = *p
	}
	return out
}

func TestPercentChange(t *testing.T) {
	assert.Nil(t, PercentChange(nil))
	assert.Nil(t, PercentChange([]float64{5}))
	assert.Nil(t, PercentChange([]float64{0, 5}))
	got := PercentChange([]float64{100, 90, 110})
	require.NotNil(t, got)
	assert.InDelta(t, 10.0, *got, 1e-9)
}

func TestChangeFrom(t *testing.T) {
	assert.Nil(t, ChangeFrom(10, 0))
	c := ChangeFrom(102, 100)
	require.NotNil(t, c)
	assert.InDelta(t, 2.0, c.Absolute, 1e-9)
	assert.InDelta(t, 2.0, c.Percent, 1e-9)
}

func TestSMA(t *testing.T) {
	assert.Equal(t, []any{nil, nil, 2.0, 3.0, 4.0}, values(SMA([]float64{1, 2, 3, 4, 5}, 3)))
	assert.Equal(t, []any{nil, nil}, values(SMA([]float64{1, 2}, 3)))
	assert.Equal(t, []any{nil, nil}, values(SMA([]float64{1, 2}, 0)))
	assert.Empty(t, SMA(nil, 3))
}

func TestRollingStdAndBollinger(t *testing.T) {
	std := RollingStd([]float64{1, 2, 3, 4}, 2)
	require.Len(t, std, 4)
	assert.Nil(t, std[0])
	assert.InDelta(t, 0.70710678, *std[1], 1e-6)

	bb := Bollinger([]float64{1, 2, 3}, 3, 2)
	assert.Nil(t, bb.Upper[1])
	assert.InDelta(t, 4.0, *bb.Upper[2], 1e-9)
	assert.InDelta(t, 2.0, *bb.Middle[2], 1e-9)
	assert.InDelta(t, 0.0, *bb.Lower[2], 1e-9)
}

func TestEMAAdjusted(t *testing.T) {
	assert.Nil(t, EMA(nil, 3))
	got := EMA([]float64{1, 2}, 3)
	require.Len(t, got, 2)
	assert.InDelta(t, 1.0, got[0], 1e-9)
	assert.InDelta(t, 2.5/1.5, got[1], 1e-9)
}

func TestRSI(t *testing.T) {
	rising := make([]float64, 15)
	flat := make([]float64, 15)
	zigzag := make([]float64, 15)
	for i := range rising {
		rising[i] = float64(i + 1)
		flat[i] = 7
		zigzag[i] = 10 + float64(i%2)
	}
	got := RSI(rising, 14)
	require.NotNil(t, got)
	assert.Equal(t, 100.0, *got)

	assert.Nil(t, RSI(flat, 14))
	assert.Nil(t, RSI(rising[:14], 14))

	got = RSI(zigzag, 14)
	require.NotNil(t, got)
	assert.InDelta(t, 50.0, *got, 1e-9)
}

func TestMACDFlatSeries(t *testing.T) {
	closes := []float64{5, 5, 5, 5}
	m, s, h := MACD(closes, 12, 26, 9)
	require.NotNil(t, m)
	assert.InDelta(t, 0.0, *m, 1e-12)
	assert.InDelta(t, 0.0, *s, 1e-12)
	assert.InDelta(t, 0.0, *h, 1e-12)

	m, s, h = MACD(nil, 12, 26, 9)
	assert.Nil(t, m)
	assert.Nil(t, s)
	assert.Nil(t, h)
}

func TestBollingerPosition(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 1
	}
	assert.Nil(t, BollingerPosition(closes, 20, 2), "flat bands have no width")
	assert.Nil(t, BollingerPosition(closes[:19], 20, 2))

	closes[19] = 100
	got := BollingerPosition(closes, 20, 2)
	require.NotNil(t, got)
	assert.Greater(t, *got, 100.0)
}
