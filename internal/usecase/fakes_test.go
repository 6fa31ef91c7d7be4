package usecase

import (
	"context"
	"sync"
	"time"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
	icache "StockLens/internal/service/cache"
	"StockLens/internal/service/classifier"
	pkgcache "StockLens/pkg/cache"
	xlogger "StockLens/pkg/logger"
)

type fakeProvider struct {
	mu          sync.Mutex
	chartCalls  int
	fundCalls   int
	chart       *models.Chart
	fund        *models.FundamentalsSnapshot
	chartErr    error
	fundErr     error
	lastSymbols []string
}

func (p *fakeProvider) FetchChart(_ context.Context, symbol string, _ domrepo.Range) (*models.Chart, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chartCalls++
	p.lastSymbols = append(p.lastSymbols, symbol)
	if p.chartErr != nil {
		return nil, p.chartErr
	}
	return p.chart, nil
}

func (p *fakeProvider) FetchFundamentals(_ context.Context, _ string) (*models.FundamentalsSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fundCalls++
	if p.fundErr != nil {
		return nil, p.fundErr
	}
	return p.fund, nil
}

func (p *fakeProvider) calls() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chartCalls, p.fundCalls
}

type fakeNews struct {
	mu       sync.Mutex
	stockFor []string
	hk       int
	us       int
	stock    models.NewsResult
}

func (n *fakeNews) StockNews(_ context.Context, symbol, company string, _ int) models.NewsResult {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stockFor = append(n.stockFor, symbol+"|"+company)
	return n.stock
}

func (n *fakeNews) MarketNews(context.Context, int) models.NewsResult {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.us++
	return models.NewsResult{Items: []models.NewsItem{{Headline: "US market"}}}
}

func (n *fakeNews) HKMarketNews(context.Context, int) models.NewsResult {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hk++
	return models.NewsResult{Items: []models.NewsItem{{Headline: "HK market"}}}
}

func (n *fakeNews) ExtractArticle(_ context.Context, link string) (*models.Article, error) {
	return &models.Article{URL: link, Text: "body"}, nil
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func sampleChart(n int) *models.Chart {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make(models.Series, n)
	for i := range bars {
		c := 100 + float64(i%10)
		bars[i] = models.PriceBar{Date: start.AddDate(0, 0, i), Open: c - 0.5, High: c + 1, Low: c - 1, Close: c, Volume: 1e6}
	}
	return &models.Chart{Meta: models.ChartMeta{Symbol: "AAPL", Currency: "USD", Timezone: "America/New_York"}, Bars: bars}
}

func sampleFundamentals() *models.FundamentalsSnapshot {
	return &models.FundamentalsSnapshot{
		LongName:      "Apple Inc.",
		MarketCap:     models.Float(2.9e12),
		TrailingPE:    models.Float(30.1),
		PreviousClose: models.Float(101),
		Sector:        "Technology",
		Summary:       "Makes phones.",
	}
}

type env struct {
	provider *fakeProvider
	news     *fakeNews
	clock    *clock
	market   *MarketDataUseCase
}

func newEnv() *env {
	clk := &clock{now: time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC)}
	provider := &fakeProvider{chart: sampleChart(300), fund: sampleFundamentals()}
	store := pkgcache.NewMemoryCache(pkgcache.WithMemoryClock(clk.Now))
	logger := xlogger.NewNop()
	memo := icache.NewMemo(store, 5*time.Minute, nil, logger)
	market := NewMarketDataUseCase(classifier.New(), provider, memo, logger, WithMarketDataClock(clk.Now))
	return &env{provider: provider, news: &fakeNews{}, clock: clk, market: market}
}
