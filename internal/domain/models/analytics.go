package models

// PriceChange is an absolute and relative move against a reference price.
type PriceChange struct {
	Absolute float64 `json:"absolute"`
	Percent  float64 `json:"percent"`
}

// BollingerBands are aligned with the input series; nil marks warm-up slots.
type BollingerBands struct {
	Window int        `json:"window"`
	K      float64    `json:"k"`
	Upper  []*float64 `json:"upper"`
	Middle []*float64 `json:"middle"`
	Lower  []*float64 `json:"lower"`
}

// MetricRow is one formatted line of the key metrics table.
type MetricRow struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

// PerformanceRow is the return over one look-back period.
type PerformanceRow struct {
	Period    string  `json:"period"`
	Return    float64 `json:"return"`
	Formatted string  `json:"formatted"`
}

// VolatilityMetrics are expressed in percent.
type VolatilityMetrics struct {
	AnnualizedVolatility *float64 `json:"annualized_volatility"`
	SharpeRatio          *float64 `json:"sharpe_ratio"`
	MaxDrawdown          *float64 `json:"max_drawdown"`
	VaR95                *float64 `json:"var_95"`
}

type TechnicalIndicators struct {
	RSI               *float64 `json:"rsi"`
	MACD              *float64 `json:"macd"`
	MACDSignal        *float64 `json:"macd_signal"`
	MACDHistogram     *float64 `json:"macd_histogram"`
	BollingerPosition *float64 `json:"bollinger_position"`
}

// Headline is the summary strip shown above the chart.
type Headline struct {
	Price         *float64     `json:"price"`
	PriceText     string       `json:"price_text"`
	Change        *PriceChange `json:"change,omitempty"`
	ChangeText    string       `json:"change_text"`
	MarketCapText string       `json:"market_cap_text"`
	VolumeText    string       `json:"volume_text"`
}

// RecentRow is one line of the recent price table.
type RecentRow struct {
	Date      string `json:"date"`
	Open      string `json:"open"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Close     string `json:"close"`
	Volume    string `json:"volume"`
	ChangePct string `json:"change_pct"`
}

// CompanyProfile is the formatted company information block.
type CompanyProfile struct {
	Summary string      `json:"summary,omitempty"`
	Details []MetricRow `json:"details,omitempty"`
}
