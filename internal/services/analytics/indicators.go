package analytics

import (
	"math"

	"StockLens/internal/domain/models"
	"StockLens/internal/services/features"
)

// PercentChange returns (last-first)/first*100, nil for fewer than two
// points or a zero first value.
func PercentChange(values []float64) *float64 {
	if len(values) < 2 || values[0] == 0 {
		return nil
	}
	v := (values[len(values)-1] - values[0]) / values[0] * 100
	return &v
}

// ChangeFrom returns the move from reference to current, nil when the
// reference is zero.
func ChangeFrom(current, reference float64) *models.PriceChange {
	if reference == 0 {
		return nil
	}
	abs := current - reference
	return &models.PriceChange{Absolute: abs, Percent: abs / reference * 100}
}

// SMA returns the simple moving average aligned with values. The first
// window-1 entries are nil; window <= 0 or n < window yields all nil.
func SMA(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			m := sum / float64(window)
			out[i] = &m
		}
	}
	return out
}

// RollingStd returns the sample standard deviation over each window.
func RollingStd(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	if window < 2 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		s := features.SampleStd(values[i-window+1 : i+1])
		out[i] = &s
	}
	return out
}

// Bollinger returns SMA(window) ± k·RollingStd(window).
func Bollinger(values []float64, window int, k float64) models.BollingerBands {
	mid := SMA(values, window)
	std := RollingStd(values, window)
	upper := make([]*float64, len(values))
	lower := make([]*float64, len(values))
	for i := range values {
		if mid[i] == nil || std[i] == nil {
			continue
		}
		u := *mid[i] + k**std[i]
		l := *mid[i] - k**std[i]
		upper[i], lower[i] = &u, &l
	}
	return models.BollingerBands{Window: window, K: k, Upper: upper, Middle: mid, Lower: lower}
}

// EMA returns the adjusted exponential moving average with alpha = 2/(span+1),
// weighting every past observation by (1-alpha)^age.
func EMA(values []float64, span int) []float64 {
	if len(values) == 0 || span < 1 {
		return nil
	}
	alpha := 2 / (float64(span) + 1)
	out := make([]float64, len(values))
	num, den := 0.0, 0.0
	for i, v := range values {
		num = v + (1-alpha)*num
		den = 1 + (1-alpha)*den
		out[i] = num / den
	}
	return out
}

// RSI returns the latest relative strength index over window using simple
// rolling means of gains and losses. Nil when there are not enough closes
// or the window is flat.
func RSI(closes []float64, window int) *float64 {
	if window < 1 || len(closes) < window+1 {
		return nil
	}
	gain, loss := 0.0, 0.0
	for i := len(closes) - window; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	gain /= float64(window)
	loss /= float64(window)
	if gain == 0 && loss == 0 {
		return nil
	}
	var v float64
	if loss == 0 {
		v = 100
	} else {
		v = 100 - 100/(1+gain/loss)
	}
	return &v
}

// MACD returns the latest MACD line, signal and histogram.
func MACD(closes []float64, fast, slow, signal int) (macd, sig, hist *float64) {
	if len(closes) == 0 {
		return nil, nil, nil
	}
	ef := EMA(closes, fast)
	es := EMA(closes, slow)
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = ef[i] - es[i]
	}
	sl := EMA(line, signal)
	n := len(closes) - 1
	m, s := line[n], sl[n]
	h := m - s
	return &m, &s, &h
}

// BollingerPosition places the last close within the bands (0 lower, 100 upper).
func BollingerPosition(closes []float64, window int, k float64) *float64 {
	if len(closes) == 0 {
		return nil
	}
	bb := Bollinger(closes, window, k)
	n := len(closes) - 1
	if bb.Upper[n] == nil || bb.Lower[n] == nil {
		return nil
	}
	width := *bb.Upper[n] - *bb.Lower[n]
	if width == 0 || math.IsNaN(width) {
		return nil
	}
	v := (closes[n] - *bb.Lower[n]) / width * 100
	return &v
}
