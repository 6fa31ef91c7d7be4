package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
	"StockLens/internal/domain/service"
	"StockLens/internal/services/analytics"
	"StockLens/internal/services/chart"
	"StockLens/internal/services/features"
	xlogger "StockLens/pkg/logger"

	"github.com/google/uuid"
)

// Dashboard section names used in Dashboard.Sections.
const (
	SectionKeyMetrics  = "key_metrics"
	SectionPerformance = "performance"
	SectionVolatility  = "volatility"
	SectionTechnicals  = "technicals"
	SectionProfile     = "profile"
	SectionNews        = "news"
)

// DashboardUseCase assembles the full view for one ticker and range.
type DashboardUseCase struct {
	market  *MarketDataUseCase
	news    service.NewsService
	logger  *xlogger.Logger
	now     func() time.Time
	timeout time.Duration
}

func NewDashboardUseCase(market *MarketDataUseCase, news service.NewsService, logger *xlogger.Logger) *DashboardUseCase {
	return &DashboardUseCase{market: market, news: news, logger: logger, now: time.Now, timeout: 30 * time.Second}
}

// SetClock overrides the time source, used by tests.
func (uc *DashboardUseCase) SetClock(now func() time.Time) { uc.now = now }

type DashboardParams struct {
	Symbol  string
	Range   domrepo.Range
	Options models.DashboardOptions
}

// NewRequestContext classifies the symbol and stamps the request once.
func (uc *DashboardUseCase) NewRequestContext(p DashboardParams) models.RequestContext {
	return models.RequestContext{
		ID:        uuid.NewString(),
		Ticker:    uc.market.Classify(p.Symbol),
		Range:     string(p.Range),
		Options:   p.Options,
		StartedAt: uc.now(),
	}
}

// Build fetches market data and renders every dashboard section. Sections
// that cannot be computed are listed in Dashboard.Sections; the call only
// fails when no price history is available.
func (uc *DashboardUseCase) Build(ctx context.Context, p DashboardParams) (*models.Dashboard, error) {
	if strings.TrimSpace(p.Symbol) == "" {
		return nil, domrepo.ErrInvalidSymbol
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	rc := uc.NewRequestContext(p)
	log := uc.logger.With(xlogger.String("request_id", rc.ID), xlogger.String("symbol", rc.Ticker.Normalized))

	res, err := uc.market.Fetch(ctx, rc.Ticker, p.Range)
	if err != nil {
		return nil, err
	}
	data := res.Data
	if !data.HasBars() {
		return nil, fmt.Errorf("%s: %w: %s", rc.Ticker.Normalized, domrepo.ErrUnavailable, data.BarsError)
	}

	d := &models.Dashboard{Request: rc, CompanyName: data.CompanyName()}

	var (
		wg   sync.WaitGroup
		news *models.DashboardNews
	)
	if p.Options.News && uc.news != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			news = uc.collectNews(ctx, rc.Ticker, d.CompanyName, p.Options.NewsLimit)
		}()
	}

	bars := data.Bars
	currency := rc.Ticker.Currency
	now := uc.now()

	d.Headline = analytics.Headline(bars, data.Fundamentals, rc.Ticker)
	d.KeyMetrics = analytics.KeyMetrics(data.Fundamentals, bars, currency)
	if data.FundamentalsError != "" {
		d.Unavailable(SectionKeyMetrics, data.FundamentalsError)
	}

	if d.Performance = analytics.Performance(bars, data.Interval, now); len(d.Performance) == 0 {
		d.Unavailable(SectionPerformance, "not enough price history")
	}
	d.Volatility = analytics.Volatility(bars, features.BarsPerYear(data.Interval))
	if d.Volatility.AnnualizedVolatility == nil {
		d.Unavailable(SectionVolatility, "not enough price history")
	}
	d.Technicals = analytics.Technicals(bars, p.Options.BollingerWindow, p.Options.BollingerK)
	if d.Technicals.RSI == nil && d.Technicals.MACD == nil {
		d.Unavailable(SectionTechnicals, "not enough price history")
	}

	d.Chart = chart.BuildChart(bars, chartOptions(rc.Ticker, p.Options))
	d.PerformanceChart = chart.BuildPerformanceChart(bars, rc.Ticker.Normalized)
	d.Recent = analytics.RecentRows(bars, analytics.DefaultRecentRows, data.Interval, currency)

	switch {
	case data.Fundamentals == nil:
		d.Unavailable(SectionProfile, data.FundamentalsError)
	default:
		if d.Profile = analytics.Profile(data.Fundamentals); d.Profile == nil {
			d.Unavailable(SectionProfile, "no company information")
		}
	}

	wg.Wait()
	if news != nil {
		d.News = news
		if len(news.Stock.Items) == 0 && len(news.Stock.Errors) > 0 {
			d.Unavailable(SectionNews, joinErrors(news.Stock.Errors))
		}
	}

	d.GeneratedAt = uc.now()
	log.Info("dashboard built",
		xlogger.String("range", rc.Range),
		xlogger.Bool("cached", res.Cached),
		xlogger.Int("bars", len(bars)),
		xlogger.Int("unavailable_sections", len(d.Sections)),
		xlogger.Duration("took_ms", d.GeneratedAt.Sub(rc.StartedAt)),
	)
	return d, nil
}

func (uc *DashboardUseCase) collectNews(ctx context.Context, ticker models.TickerSymbol, company string, limit int) *models.DashboardNews {
	if limit <= 0 {
		limit = 3
	}
	out := &models.DashboardNews{}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		out.Stock = uc.news.StockNews(ctx, ticker.Normalized, company, limit)
	}()
	go func() {
		defer wg.Done()
		if ticker.IsHK() {
			out.Market = uc.news.HKMarketNews(ctx, limit)
			return
		}
		out.Market = uc.news.MarketNews(ctx, limit)
	}()
	wg.Wait()
	return out
}

func chartOptions(t models.TickerSymbol, o models.DashboardOptions) models.ChartOptions {
	return models.ChartOptions{
		Kind:            o.Chart,
		Symbol:          t.Normalized,
		Currency:        t.Currency,
		MovingAverages:  o.MovingAverages,
		MAWindows:       o.MAWindows,
		Bollinger:       o.Bollinger,
		BollingerWindow: o.BollingerWindow,
		BollingerK:      o.BollingerK,
		Volume:          o.Volume,
	}
}

func joinErrors(errs map[string]string) string {
	parts := make([]string, 0, len(errs))
	for k, v := range errs {
		parts = append(parts, k+": "+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
