package models

// Requests for the HTTP endpoints. Defined in domain for consistency and reuse.

type SymbolRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=20"`
}

type MarketDataRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=20"`
	Range  string `query:"range" json:"range" default:"1y" validate:"oneof=1d 5d 1mo 3mo 6mo ytd 1y 2y 5y"`
}

type DashboardRequest struct {
	Symbol     string  `query:"symbol" json:"symbol" validate:"required,max=20"`
	Range      string  `query:"range" json:"range" default:"1y" validate:"oneof=1d 5d 1mo 3mo 6mo ytd 1y 2y 5y"`
	Chart      string  `query:"chart" json:"chart" default:"line" validate:"oneof=line candlestick ohlc"`
	MA         bool    `query:"ma" json:"ma"`
	MAWindows  string  `query:"ma_windows" json:"ma_windows" default:"20,50" validate:"max=40"`
	Bollinger  bool    `query:"bollinger" json:"bollinger"`
	BBWindow   int     `query:"bb_window" json:"bb_window" default:"20" validate:"gte=2,lte=200"`
	BBK        float64 `query:"bb_k" json:"bb_k" default:"2" validate:"gt=0,lte=5"`
	HideVolume bool    `query:"hide_volume" json:"hide_volume"`
	SkipNews   bool    `query:"skip_news" json:"skip_news"`
	NewsLimit  int     `query:"news_limit" json:"news_limit" default:"3" validate:"gte=1,lte=20"`
}

type StockNewsRequest struct {
	Symbol  string `query:"symbol" json:"symbol" validate:"required,max=20"`
	Company string `query:"company" json:"company" validate:"max=200"`
	Max     int    `query:"max" json:"max" default:"5" validate:"gte=1,lte=50"`
}

type MarketNewsRequest struct {
	Market string `query:"market" json:"market" default:"US" validate:"oneof=US HK"`
	Max    int    `query:"max" json:"max" default:"8" validate:"gte=1,lte=50"`
}

type ArticleRequest struct {
	URL string `query:"url" json:"url" validate:"required,url,max=2048"`
}

type AdminLogsRequest struct {
	Limit int `query:"limit" json:"limit" default:"100" validate:"gte=1,lte=1000"`
}
