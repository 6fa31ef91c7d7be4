package analytics

import (
	"math"
	"time"

	"StockLens/internal/domain/models"
	"StockLens/internal/services/features"
	"StockLens/pkg/util"
)

// Indicator parameters.
const (
	RiskFreeRate      = 0.02
	RSIWindow         = 14
	MACDFast          = 12
	MACDSlow          = 26
	MACDSignal        = 9
	DefaultBBWindow   = 20
	DefaultBBK        = 2.0
	SummaryMaxLength  = 500
	DefaultRecentRows = 10
)

// lookback periods are measured in trading days and converted to bars of
// the series interval.
type lookback struct {
	label string
	days  int
}

var lookbacks = []lookback{
	{"1 Day", 1},
	{"1 Week", 5},
	{"1 Month", 21},
	{"3 Months", 63},
	{"6 Months", 126},
	{"1 Year", 252},
}

// KeyMetrics builds the key metrics table. Rows whose source value is
// missing or zero are left out.
func KeyMetrics(f *models.FundamentalsSnapshot, bars models.Series, currency string) []models.MetricRow {
	rows := make([]models.MetricRow, 0, 11)
	add := func(name string, v *float64, format func(float64) string) {
		if v == nil || *v == 0 || math.IsNaN(*v) {
			return
		}
		rows = append(rows, models.MetricRow{Metric: name, Value: format(*v)})
	}
	money := func(v float64) string { return FormatMoney(v, currency) }

	var price *float64
	if last, ok := bars.Last(); ok {
		price = &last.Close
	} else if f != nil {
		price = f.Price
	}
	add("Current Price", price, money)
	if f == nil {
		return rows
	}
	add("Market Cap", f.MarketCap, func(v float64) string { return FormatLargeMoney(v, currency) })
	add("P/E Ratio", f.TrailingPE, FormatRatio)
	add("EPS (TTM)", f.TrailingEPS, money)
	add("Dividend Yield", f.DividendYield, func(v float64) string { return fixed(v*100, 2) + "%" })
	add("Book Value", f.BookValue, money)
	add("Price/Book", f.PriceToBook, FormatRatio)
	add("52W High", f.FiftyTwoWeekHigh, money)
	add("52W Low", f.FiftyTwoWeekLow, money)
	add("Beta", f.Beta, FormatRatio)
	add("Avg Volume", f.AverageVolume, FormatVolume)
	return rows
}

// Performance returns look-back returns plus year-to-date for a series of
// interval bars. A period is omitted when the series is not longer than its
// look-back or when it is shorter than one bar.
func Performance(bars models.Series, interval string, now time.Time) []models.PerformanceRow {
	closes := bars.Closes()
	n := len(closes)
	if n == 0 {
		return nil
	}
	current := closes[n-1]
	var rows []models.PerformanceRow
	push := func(label string, start float64) {
		if start == 0 {
			return
		}
		ret := (current - start) / start * 100
		rows = append(rows, models.PerformanceRow{Period: label, Return: ret, Formatted: FormatPercent(ret)})
	}
	for _, lb := range lookbacks {
		k, ok := barsFor(lb.days, interval)
		if ok && n > k {
			push(lb.label, closes[n-k-1])
		}
	}

	ys := util.YearStart(now)
	for _, b := range bars {
		if !b.Date.Before(ys) {
			push("YTD", b.Close)
			break
		}
	}
	return rows
}

// barsFor converts trading days into a bar count for interval. Periods
// shorter than one bar are not representable.
func barsFor(days int, interval string) (int, bool) {
	exact := float64(days) * features.BarsPerYear(interval) / features.TradingDaysPerYear
	if exact < 1-1e-9 {
		return 0, false
	}
	return int(math.Round(exact)), true
}

// Volatility computes risk statistics over simple bar returns. Every field
// stays nil when fewer than two returns are available.
func Volatility(bars models.Series, barsPerYear float64) *models.VolatilityMetrics {
	out := &models.VolatilityMetrics{}
	returns := features.DailyReturns(bars.Closes())
	if len(returns) < 2 {
		return out
	}
	if barsPerYear <= 0 {
		barsPerYear = features.TradingDaysPerYear
	}
	vol := features.AnnualizedVolatility(returns, barsPerYear)
	if !math.IsNaN(vol) {
		pct := vol * 100
		out.AnnualizedVolatility = &pct
		if vol > 0 {
			sharpe := (features.Mean(returns)*barsPerYear - RiskFreeRate) / vol
			out.SharpeRatio = &sharpe
		}
	}
	dd := features.MaxDrawdown(returns) * 100
	out.MaxDrawdown = &dd
	v := features.Percentile(returns, 5) * 100
	out.VaR95 = &v
	return out
}

// Technicals computes RSI, MACD and the Bollinger band position of the last close.
func Technicals(bars models.Series, bbWindow int, bbK float64) *models.TechnicalIndicators {
	if bbWindow <= 1 {
		bbWindow = DefaultBBWindow
	}
	if bbK <= 0 {
		bbK = DefaultBBK
	}
	closes := bars.Closes()
	out := &models.TechnicalIndicators{
		RSI:               RSI(closes, RSIWindow),
		BollingerPosition: BollingerPosition(closes, bbWindow, bbK),
	}
	if len(closes) >= 2 {
		out.MACD, out.MACDSignal, out.MACDHistogram = MACD(closes, MACDFast, MACDSlow, MACDSignal)
	}
	return out
}

// Headline summarises the latest price. The reference for the change is the
// reported previous close, falling back to the second to last bar.
func Headline(bars models.Series, f *models.FundamentalsSnapshot, ticker models.TickerSymbol) *models.Headline {
	h := &models.Headline{PriceText: NA, ChangeText: NA, MarketCapText: NA, VolumeText: NA}
	last, ok := bars.Last()
	switch {
	case ok:
		h.Price = models.Float(last.Close)
	case f != nil && f.Price != nil:
		h.Price = f.Price
	}
	if h.Price != nil {
		h.PriceText = FormatMoney(*h.Price, ticker.Currency)
	}

	var ref *float64
	if f != nil && f.PreviousClose != nil {
		ref = f.PreviousClose
	} else if len(bars) >= 2 {
		ref = models.Float(bars[len(bars)-2].Close)
	}
	if h.Price != nil && ref != nil {
		if c := ChangeFrom(*h.Price, *ref); c != nil {
			h.Change = c
			h.ChangeText = FormatChange(c.Absolute, c.Percent)
		}
	}
	if f != nil && f.MarketCap != nil && *f.MarketCap > 0 {
		h.MarketCapText = FormatLargeMoney(*f.MarketCap, ticker.Currency)
	}
	if ok {
		h.VolumeText = FormatVolume(last.Volume)
	}
	return h
}

// RecentRows formats the last n bars, newest first, with the change against
// the preceding bar.
func RecentRows(bars models.Series, n int, interval, currency string) []models.RecentRow {
	if n <= 0 {
		n = DefaultRecentRows
	}
	start := len(bars) - n
	if start < 0 {
		start = 0
	}
	intraday := util.IsIntraday(interval)
	rows := make([]models.RecentRow, 0, len(bars)-start)
	for i := len(bars) - 1; i >= start; i-- {
		b := bars[i]
		change := NA
		if i > 0 && bars[i-1].Close != 0 {
			change = FormatPercent((b.Close - bars[i-1].Close) / bars[i-1].Close * 100)
		}
		rows = append(rows, models.RecentRow{
			Date:      util.FormatBarTime(b.Date, intraday),
			Open:      FormatMoney(b.Open, currency),
			High:      FormatMoney(b.High, currency),
			Low:       FormatMoney(b.Low, currency),
			Close:     FormatMoney(b.Close, currency),
			Volume:    FormatVolume(b.Volume),
			ChangePct: change,
		})
	}
	return rows
}

// Profile builds the company information block. Nil when nothing is known.
func Profile(f *models.FundamentalsSnapshot) *models.CompanyProfile {
	if f == nil {
		return nil
	}
	p := &models.CompanyProfile{Summary: util.Truncate(f.Summary, SummaryMaxLength, "...")}
	add := func(name, v string) {
		if v != "" {
			p.Details = append(p.Details, models.MetricRow{Metric: name, Value: v})
		}
	}
	add("Sector", f.Sector)
	add("Industry", f.Industry)
	add("Country", f.Country)
	add("Website", f.Website)
	if f.Employees != nil && *f.Employees > 0 {
		add("Employees", FormatCount(*f.Employees))
	}
	if p.Summary == "" && len(p.Details) == 0 {
		return nil
	}
	return p
}
