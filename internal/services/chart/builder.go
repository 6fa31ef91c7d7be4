package chart

import (
	"fmt"
	"strings"
	"time"

	"StockLens/internal/domain/models"
	"StockLens/internal/services/analytics"
	"StockLens/internal/services/features"
)

const (
	ColorPrice    = "#1f77b4"
	ColorBand     = "#9e9e9e"
	ColorUp       = "#26a69a"
	ColorDown     = "#ef5350"
	ColorReturns  = "#2563eb"
	volumeOpacity = 0.3
)

// DefaultMAWindows are drawn when moving averages are requested without windows.
var DefaultMAWindows = []int{20, 50}

var maColors = []string{"#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"}

// BuildChart describes the price chart for bars. Overlay points that cannot
// be computed yet stay nil so the plot shows a gap.
func BuildChart(bars models.Series, opts models.ChartOptions) *models.ChartSpec {
	kind := opts.Kind
	if !kind.IsValid() {
		kind = models.ChartLine
	}
	spec := &models.ChartSpec{
		Kind:       kind,
		Title:      strings.TrimSpace(opts.Symbol + " Stock Price"),
		YAxisTitle: yAxisTitle(opts.Currency),
		Traces:     []models.ChartTrace{priceTrace(bars, kind)},
	}
	dates := bars.Dates()
	closes := bars.Closes()

	if opts.MovingAverages {
		windows := opts.MAWindows
		if len(windows) == 0 {
			windows = DefaultMAWindows
		}
		for i, w := range windows {
			spec.Traces = append(spec.Traces, models.ChartTrace{
				Name:  fmt.Sprintf("MA%d", w),
				Type:  models.TraceScatter,
				Color: maColors[i%len(maColors)],
				Width: 1.5,
				X:     dates,
				Y:     analytics.SMA(closes, w),
			})
		}
	}

	if opts.Bollinger {
		w, k := opts.BollingerWindow, opts.BollingerK
		if w <= 1 {
			w = analytics.DefaultBBWindow
		}
		if k <= 0 {
			k = analytics.DefaultBBK
		}
		bb := analytics.Bollinger(closes, w, k)
		spec.Traces = append(spec.Traces,
			bandTrace("BB Upper", dates, bb.Upper, "dash", ""),
			bandTrace("BB Middle", dates, bb.Middle, "dot", ""),
			bandTrace("BB Lower", dates, bb.Lower, "dash", "tonexty"),
		)
	}

	if opts.Volume {
		spec.Volume = volumeTrace(bars)
	}
	return spec
}

// BuildPerformanceChart plots the cumulative return of the close path in percent.
func BuildPerformanceChart(bars models.Series, symbol string) *models.ChartSpec {
	cum := features.CumulativeReturns(bars.Closes())
	y := make([]*float64, len(cum))
	for i := range cum {
		y[i] = &cum[i]
	}
	x := bars.Dates()
	if cum == nil {
		x = nil
	}
	return &models.ChartSpec{
		Kind:       models.ChartLine,
		Title:      strings.TrimSpace(symbol + " Cumulative Returns"),
		YAxisTitle: "Return (%)",
		Traces: []models.ChartTrace{{
			Name:  "Cumulative Return",
			Type:  models.TraceScatter,
			Color: ColorReturns,
			Width: 2,
			Fill:  "tozeroy",
			X:     x,
			Y:     y,
		}},
	}
}

func yAxisTitle(currency string) string {
	if currency == "" {
		return "Price"
	}
	return "Price (" + currency + ")"
}

func priceTrace(bars models.Series, kind models.ChartKind) models.ChartTrace {
	dates := bars.Dates()
	switch kind {
	case models.ChartCandlestick, models.ChartOHLC:
		t := models.ChartTrace{Name: "OHLC", Type: models.TraceOHLC, X: dates}
		if kind == models.ChartCandlestick {
			t.Name, t.Type = "Price", models.TraceCandlestick
		}
		t.Open = make([]float64, len(bars))
		t.High = make([]float64, len(bars))
		t.Low = make([]float64, len(bars))
		t.Close = make([]float64, len(bars))
		for i, b := range bars {
			t.Open[i], t.High[i], t.Low[i], t.Close[i] = b.Open, b.High, b.Low, b.Close
		}
		return t
	default:
		y := make([]*float64, len(bars))
		for i, b := range bars {
			c := b.Close
			y[i] = &c
		}
		return models.ChartTrace{Name: "Close Price", Type: models.TraceScatter, Color: ColorPrice, Width: 2, X: dates, Y: y}
	}
}

func bandTrace(name string, x []time.Time, y []*float64, dash, fill string) models.ChartTrace {
	return models.ChartTrace{Name: name, Type: models.TraceScatter, Color: ColorBand, Width: 1, Dash: dash, Fill: fill, X: x, Y: y}
}

func volumeTrace(bars models.Series) *models.ChartTrace {
	t := &models.ChartTrace{
		Name:    "Volume",
		Type:    models.TraceBar,
		Opacity: volumeOpacity,
		X:       bars.Dates(),
		Y:       make([]*float64, len(bars)),
		Colors:  make([]string, len(bars)),
	}
	for i, b := range bars {
		v := b.Volume
		t.Y[i] = &v
		if b.Close >= b.Open {
			t.Colors[i] = ColorUp
		} else {
			t.Colors[i] = ColorDown
		}
	}
	return t
}
