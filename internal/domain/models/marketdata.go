package models

import "time"

// ChartMeta is the quote metadata returned next to the bar series.
type ChartMeta struct {
	Symbol             string    `json:"symbol"`
	Currency           string    `json:"currency,omitempty"`
	ExchangeName       string    `json:"exchange_name,omitempty"`
	Timezone           string    `json:"timezone,omitempty"`
	RegularMarketPrice *float64  `json:"regular_market_price,omitempty"`
	PreviousClose      *float64  `json:"previous_close,omitempty"`
	RegularMarketTime  time.Time `json:"regular_market_time"`
	SessionStart       time.Time `json:"session_start"`
	SessionEnd         time.Time `json:"session_end"`
}

// Chart is the raw provider answer for a bar request.
type Chart struct {
	Meta ChartMeta `json:"meta"`
	Bars Series    `json:"bars"`
}

// MarketData is the combined, possibly partial, provider response for a
// (symbol, range) request.
type MarketData struct {
	Ticker            TickerSymbol          `json:"ticker"`
	Range             string                `json:"range"`
	Interval          string                `json:"interval"`
	Meta              *ChartMeta            `json:"meta,omitempty"`
	Bars              Series                `json:"bars"`
	Fundamentals      *FundamentalsSnapshot `json:"fundamentals,omitempty"`
	BarsError         string                `json:"bars_error,omitempty"`
	FundamentalsError string                `json:"fundamentals_error,omitempty"`
	FetchedAt         time.Time             `json:"fetched_at"`
}

// HasBars reports whether any price history is present.
func (m *MarketData) HasBars() bool { return m != nil && len(m.Bars) > 0 }

// CompanyName returns the fundamentals name or the normalized symbol.
func (m *MarketData) CompanyName() string {
	return m.Fundamentals.Name(m.Ticker.Normalized)
}

// MarketStatus describes whether the reference exchange is trading.
type MarketStatus struct {
	Symbol       string    `json:"symbol"`
	State        string    `json:"state"`
	Timezone     string    `json:"timezone"`
	SessionStart time.Time `json:"session_start"`
	SessionEnd   time.Time `json:"session_end"`
	CheckedAt    time.Time `json:"checked_at"`
}

// SymbolValidation is the result of probing a symbol at the provider.
type SymbolValidation struct {
	Ticker TickerSymbol `json:"ticker"`
	Valid  bool         `json:"valid"`
	Name   string       `json:"name,omitempty"`
	Reason string       `json:"reason,omitempty"`
}
