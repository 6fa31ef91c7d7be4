package models

import "time"

// ChartKind selects how the price trace is drawn.
type ChartKind string

const (
	ChartLine        ChartKind = "line"
	ChartCandlestick ChartKind = "candlestick"
	ChartOHLC        ChartKind = "ohlc"
)

// IsValid reports whether k is a known chart kind.
func (k ChartKind) IsValid() bool {
	switch k {
	case ChartLine, ChartCandlestick, ChartOHLC:
		return true
	}
	return false
}

// Trace types understood by the client plotting library.
const (
	TraceScatter     = "scatter"
	TraceCandlestick = "candlestick"
	TraceOHLC        = "ohlc"
	TraceBar         = "bar"
)

// ChartTrace is one plotted series. Y entries may be nil to leave gaps.
type ChartTrace struct {
	Name    string      `json:"name"`
	Type    string      `json:"type"`
	Color   string      `json:"color,omitempty"`
	Width   float64     `json:"width,omitempty"`
	Dash    string      `json:"dash,omitempty"`
	Fill    string      `json:"fill,omitempty"`
	Opacity float64     `json:"opacity,omitempty"`
	X       []time.Time `json:"x"`
	Y       []*float64  `json:"y,omitempty"`
	Open    []float64   `json:"open,omitempty"`
	High    []float64   `json:"high,omitempty"`
	Low     []float64   `json:"low,omitempty"`
	Close   []float64   `json:"close,omitempty"`
	Colors  []string    `json:"colors,omitempty"`
}

// ChartSpec is a renderer independent chart description.
type ChartSpec struct {
	Kind       ChartKind    `json:"kind"`
	Title      string       `json:"title"`
	YAxisTitle string       `json:"y_axis_title"`
	Traces     []ChartTrace `json:"traces"`
	Volume     *ChartTrace  `json:"volume,omitempty"`
}

// ChartOptions controls which overlays BuildChart adds.
type ChartOptions struct {
	Kind            ChartKind `json:"kind"`
	Symbol          string    `json:"symbol"`
	Currency        string    `json:"currency"`
	MovingAverages  bool      `json:"moving_averages"`
	MAWindows       []int     `json:"ma_windows"`
	Bollinger       bool      `json:"bollinger"`
	BollingerWindow int       `json:"bollinger_window"`
	BollingerK      float64   `json:"bollinger_k"`
	Volume          bool      `json:"volume"`
}
