package repository

import "fmt"

// Range is the look-back window requested from the provider.
type Range string

const (
	Range1D  Range = "1d"
	Range5D  Range = "5d"
	Range1M  Range = "1mo"
	Range3M  Range = "3mo"
	Range6M  Range = "6mo"
	RangeYTD Range = "ytd"
	Range1Y  Range = "1y"
	Range2Y  Range = "2y"
	Range5Y  Range = "5y"
)

// Ranges lists the supported ranges in display order.
var Ranges = []Range{Range1D, Range5D, Range1M, Range3M, Range6M, RangeYTD, Range1Y, Range2Y, Range5Y}

// IsValidRange returns true if r is a supported range.
func IsValidRange(r Range) bool {
	for _, v := range Ranges {
		if v == r {
			return true
		}
	}
	return false
}

// DefaultRange returns the default range.
func DefaultRange() Range { return Range1Y }

// ParseRange converts a raw string to a Range. Empty input yields the default.
func ParseRange(s string) (Range, error) {
	if s == "" {
		return DefaultRange(), nil
	}
	r := Range(s)
	if !IsValidRange(r) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	return r, nil
}

// Interval returns the bar interval requested for the range.
func (r Range) Interval() string {
	switch r {
	case Range1D:
		return "5m"
	case Range5D:
		return "30m"
	case Range5Y:
		return "1wk"
	default:
		return "1d"
	}
}

// Label is the display name of the range.
func (r Range) Label() string {
	switch r {
	case Range1D:
		return "1 Day"
	case Range5D:
		return "5 Days"
	case Range1M:
		return "1 Month"
	case Range3M:
		return "3 Months"
	case Range6M:
		return "6 Months"
	case RangeYTD:
		return "Year to Date"
	case Range1Y:
		return "1 Year"
	case Range2Y:
		return "2 Years"
	case Range5Y:
		return "5 Years"
	}
	return string(r)
}
