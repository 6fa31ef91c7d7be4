package models

import "time"

// FundamentalsSnapshot holds company level data. Nil pointers mean the
// provider did not report the value.
type FundamentalsSnapshot struct {
	Symbol           string    `json:"symbol"`
	LongName         string    `json:"long_name,omitempty"`
	ShortName        string    `json:"short_name,omitempty"`
	Currency         string    `json:"currency,omitempty"`
	Price            *float64  `json:"price,omitempty"`
	PreviousClose    *float64  `json:"previous_close,omitempty"`
	MarketCap        *float64  `json:"market_cap,omitempty"`
	TrailingPE       *float64  `json:"trailing_pe,omitempty"`
	TrailingEPS      *float64  `json:"trailing_eps,omitempty"`
	DividendYield    *float64  `json:"dividend_yield,omitempty"`
	BookValue        *float64  `json:"book_value,omitempty"`
	PriceToBook      *float64  `json:"price_to_book,omitempty"`
	FiftyTwoWeekHigh *float64  `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow  *float64  `json:"fifty_two_week_low,omitempty"`
	Beta             *float64  `json:"beta,omitempty"`
	AverageVolume    *float64  `json:"average_volume,omitempty"`
	Sector           string    `json:"sector,omitempty"`
	Industry         string    `json:"industry,omitempty"`
	Country          string    `json:"country,omitempty"`
	Website          string    `json:"website,omitempty"`
	Summary          string    `json:"summary,omitempty"`
	Employees        *int64    `json:"employees,omitempty"`
	FetchedAt        time.Time `json:"fetched_at"`
}

// Name returns the best available company name or fallback.
func (f *FundamentalsSnapshot) Name(fallback string) string {
	if f == nil {
		return fallback
	}
	if f.LongName != "" {
		return f.LongName
	}
	if f.ShortName != "" {
		return f.ShortName
	}
	return fallback
}

// Float returns a pointer to v, used when filling optional fields.
func Float(v float64) *float64 { return &v }
