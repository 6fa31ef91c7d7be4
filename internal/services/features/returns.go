package features

import (
	"math"
	"sort"
)

// TradingDaysPerYear is used to annualize daily statistics.
const TradingDaysPerYear = 252

// DailyReturns computes simple returns r_t = C_t / C_{t-1} - 1.
// It returns a slice of length len(closes)-1, or nil if insufficient data.
// Pairs with a non-positive previous close are skipped.
func DailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev <= 0 {
			continue
		}
		out = append(out, closes[i]/prev-1)
	}
	return out
}

// CumulativeReturns returns (C_t / C_0 - 1) * 100 for every bar. The first
// entry is always 0. Nil when the first close is not positive.
func CumulativeReturns(closes []float64) []float64 {
	if len(closes) == 0 || closes[0] <= 0 {
		return nil
	}
	base := closes[0]
	out := make([]float64, len(closes))
	for i, c := range closes {
		out[i] = (c/base - 1) * 100
	}
	return out
}

// Mean returns the arithmetic mean, NaN for empty input.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// SampleStd returns the n-1 standard deviation, NaN for fewer than 2 values.
func SampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	m := Mean(xs)
	ss := 0.0
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// AnnualizedVolatility scales the sample deviation of returns by sqrt(barsPerYear).
func AnnualizedVolatility(returns []float64, barsPerYear float64) float64 {
	return SampleStd(returns) * math.Sqrt(barsPerYear)
}

// MaxDrawdown returns the largest peak-to-trough fall of the compounded
// return path as a negative fraction (0 when the path never falls). The
// running peak starts at the first compounded value.
func MaxDrawdown(returns []float64) float64 {
	cum, peak, worst := 1.0, 0.0, 0.0
	for i, r := range returns {
		cum *= 1 + r
		if i == 0 || cum > peak {
			peak = cum
		}
		if peak > 0 {
			if dd := (cum - peak) / peak; dd < worst {
				worst = dd
			}
		}
	}
	return worst
}

// Percentile returns the p-th percentile (0..100) using linear interpolation
// between closest ranks. NaN for empty input.
func Percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	s := make([]float64, len(xs))
	copy(s, xs)
	sort.Float64s(s)
	if len(s) == 1 {
		return s[0]
	}
	rank := p / 100 * float64(len(s)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo < 0 {
		lo = 0
	}
	if hi >= len(s) {
		hi = len(s) - 1
	}
	return s[lo] + (s[hi]-s[lo])*(rank-float64(lo))
}

// BarsPerYear returns the approximate number of bars per year for a bar interval.
func BarsPerYear(interval string) float64 {
	switch interval {
	case "5m":
		return TradingDaysPerYear * 78
	case "30m":
		return TradingDaysPerYear * 13
	case "1wk":
		return 52
	default:
		return TradingDaysPerYear
	}
}
