package news

import (
	"net/url"
	"strings"
)

// Source is a named RSS/Atom feed. URL may carry a {query} or {symbol}
// placeholder that is filled per request.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Expand fills the placeholders of the URL template.
func (s Source) Expand(query, symbol string) string {
	u := strings.ReplaceAll(s.URL, "{query}", url.QueryEscape(query))
	return strings.ReplaceAll(u, "{symbol}", url.QueryEscape(symbol))
}

var (
	DefaultSearchSource = Source{
		Name: "Google News",
		URL:  "https://news.google.com/rss/search?q={query}&hl=en-US&gl=US&ceid=US:en",
	}
	DefaultSymbolSource = Source{
		Name: "Yahoo Finance",
		URL:  "https://feeds.finance.yahoo.com/rss/2.0/headline?s={symbol}&region=US&lang=en-US",
	}
	DefaultMarketSources = []Source{
		{Name: "Yahoo Finance", URL: "https://feeds.finance.yahoo.com/rss/2.0/headline?s=^GSPC&region=US&lang=en-US"},
		{Name: "MarketWatch", URL: "https://feeds.marketwatch.com/marketwatch/topstories/"},
		{Name: "Reuters", URL: "https://feeds.reuters.com/reuters/businessNews"},
	}
	DefaultHKQueries = []string{"Hong Kong stock market", "HKEX", "Hang Seng Index", "HSI"}
)
