package analytics

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// NA is shown wherever a value is not available.
const NA = "N/A"

// CurrencyPrefix returns the symbol written before amounts in currency.
func CurrencyPrefix(currency string) string {
	switch currency {
	case "", "USD":
		return "$"
	case "HKD":
		return "HKD "
	default:
		return currency + " "
	}
}

// FormatMoney renders v with two decimals and thousand separators.
func FormatMoney(v float64, currency string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NA
	}
	sign := ""
	if v < 0 {
		sign = "-"
	}
	return sign + CurrencyPrefix(currency) + groupFixed(math.Abs(v), 2)
}

// FormatMoneyPtr is FormatMoney with nil rendered as N/A.
func FormatMoneyPtr(v *float64, currency string) string {
	if v == nil {
		return NA
	}
	return FormatMoney(*v, currency)
}

// FormatLargeMoney abbreviates with T/B/M suffixes, e.g. "$2.95T".
func FormatLargeMoney(v float64, currency string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NA
	}
	p := CurrencyPrefix(currency)
	abs := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}
	switch {
	case abs >= 1e12:
		return sign + p + fixed(abs/1e12, 2) + "T"
	case abs >= 1e9:
		return sign + p + fixed(abs/1e9, 2) + "B"
	case abs >= 1e6:
		return sign + p + fixed(abs/1e6, 2) + "M"
	default:
		return sign + p + groupFixed(abs, 0)
	}
}

// FormatVolume abbreviates share counts with M/K suffixes.
func FormatVolume(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NA
	}
	abs := math.Abs(v)
	switch {
	case abs >= 1e6:
		return fixed(v/1e6, 2) + "M"
	case abs >= 1e3:
		return fixed(v/1e3, 2) + "K"
	default:
		return humanize.Comma(int64(math.Round(v)))
	}
}

// FormatPercent renders a percentage with an explicit sign for gains.
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NA
	}
	if v > 0 {
		return "+" + fixed(v, 2) + "%"
	}
	return fixed(v, 2) + "%"
}

// FormatRatio renders a plain two decimal number.
func FormatRatio(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NA
	}
	return fixed(v, 2)
}

// FormatCount renders an integer with thousand separators.
func FormatCount(v int64) string { return humanize.Comma(v) }

// FormatChange renders "+1.23 (+0.45%)" style price moves.
func FormatChange(c float64, pct float64) string {
	sign := ""
	if c > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%s (%s)", sign, fixed(c, 2), FormatPercent(pct))
}

func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// groupFixed renders a non-negative v with places decimals and comma grouping.
func groupFixed(v float64, places int32) string {
	d := decimal.NewFromFloat(v).Round(places)
	s := humanize.Comma(d.IntPart())
	if places == 0 {
		return s
	}
	str := d.StringFixed(places)
	return s + str[len(str)-int(places)-1:]
}
