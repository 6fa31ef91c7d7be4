package models

import "time"

// DashboardOptions are the user controls that shape a dashboard.
type DashboardOptions struct {
	Chart           ChartKind `json:"chart"`
	MovingAverages  bool      `json:"moving_averages"`
	MAWindows       []int     `json:"ma_windows"`
	Bollinger       bool      `json:"bollinger"`
	BollingerWindow int       `json:"bollinger_window"`
	BollingerK      float64   `json:"bollinger_k"`
	Volume          bool      `json:"volume"`
	News            bool      `json:"news"`
	NewsLimit       int       `json:"news_limit"`
}

// RequestContext is built once per request and threaded through every stage.
type RequestContext struct {
	ID        string           `json:"id"`
	Ticker    TickerSymbol     `json:"ticker"`
	Range     string           `json:"range"`
	Options   DashboardOptions `json:"options"`
	StartedAt time.Time        `json:"started_at"`
}

// DashboardNews groups ticker and market headlines.
type DashboardNews struct {
	Stock  NewsResult `json:"stock"`
	Market NewsResult `json:"market"`
}

// Dashboard is the complete view model for one ticker and range.
type Dashboard struct {
	Request          RequestContext       `json:"request"`
	CompanyName      string               `json:"company_name"`
	Headline         *Headline            `json:"headline,omitempty"`
	KeyMetrics       []MetricRow          `json:"key_metrics,omitempty"`
	Performance      []PerformanceRow     `json:"performance,omitempty"`
	Volatility       *VolatilityMetrics   `json:"volatility,omitempty"`
	Technicals       *TechnicalIndicators `json:"technicals,omitempty"`
	Chart            *ChartSpec           `json:"chart,omitempty"`
	PerformanceChart *ChartSpec           `json:"performance_chart,omitempty"`
	Recent           []RecentRow          `json:"recent,omitempty"`
	Profile          *CompanyProfile      `json:"profile,omitempty"`
	News             *DashboardNews       `json:"news,omitempty"`
	Sections         map[string]string    `json:"sections,omitempty"`
	GeneratedAt      time.Time            `json:"generated_at"`
}

// Unavailable records a failed section.
func (d *Dashboard) Unavailable(section, reason string) {
	if d.Sections == nil {
		d.Sections = map[string]string{}
	}
	d.Sections[section] = "unavailable: " + reason
}

// PopularSymbols lists sample tickers per market.
type PopularSymbols struct {
	US []SymbolEntry `json:"us"`
	HK []SymbolEntry `json:"hk"`
}
