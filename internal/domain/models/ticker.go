package models

// Market identifies the listing venue family a ticker belongs to.
type Market string

const (
	MarketUS Market = "US"
	MarketHK Market = "HK"
)

// DisplayName returns the human readable market name.
func (m Market) DisplayName() string {
	switch m {
	case MarketHK:
		return "Hong Kong"
	default:
		return "United States"
	}
}

// TickerSymbol is the classified form of a user supplied ticker.
type TickerSymbol struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
	Market     Market `json:"market"`
	MarketName string `json:"market_name"`
	Exchange   string `json:"exchange"`
	Currency   string `json:"currency"`
}

// IsHK reports whether the ticker is listed in Hong Kong.
func (t TickerSymbol) IsHK() bool { return t.Market == MarketHK }

// SymbolEntry is a configured sample symbol shown to users.
type SymbolEntry struct {
	Symbol string `yaml:"symbol" json:"symbol"`
	Name   string `yaml:"name" json:"name"`
}
