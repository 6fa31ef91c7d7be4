package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
	"StockLens/internal/service/ratelimit"
	xhttp "StockLens/pkg/http"
	xlogger "StockLens/pkg/logger"
)

const (
	DefaultBaseURL = "https://query1.finance.yahoo.com"
	limiterKey     = "yahoo"
	summaryModules = "price,summaryDetail,defaultKeyStatistics,assetProfile"
)

// Option configures Client.
type Option func(*Client)

// Client implements MarketDataProvider against the Yahoo Finance public API.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *xhttp.Client
	limiter *ratelimit.Limiter
	metrics domrepo.Metrics
	logger  *xlogger.Logger
	now     func() time.Time
}

// New creates a Yahoo client. Every call is bounded by timeout and throttled
// by limiter.
func New(httpClient *xhttp.Client, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: 10 * time.Second,
		http:    httpClient,
		limiter: ratelimit.New(0, 1),
		logger:  xlogger.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// WithBaseURL overrides the API host.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLimiter throttles outbound calls.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithMetrics records call counts and latency.
func WithMetrics(m domrepo.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *xlogger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithClock overrides the time source stamped on fundamentals.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// FetchChart returns cleaned bars and quote metadata for symbol over r.
func (c *Client) FetchChart(ctx context.Context, symbol string, r domrepo.Range) (*models.Chart, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol))
	params := map[string][]string{
		"range":          {string(r)},
		"interval":       {r.Interval()},
		"includePrePost": {"false"},
	}

	var resp chartResponse
	if err := c.call(ctx, "chart", u, params, &resp); err != nil {
		return nil, err
	}
	if e := resp.Chart.Error; e != nil {
		return nil, apiErr(symbol, e)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, domrepo.ErrNoData)
	}

	res := resp.Chart.Result[0]
	loc := loadLocation(res.Meta.ExchangeTimezoneName)

	meta := models.ChartMeta{
		Symbol:             res.Meta.Symbol,
		Currency:           res.Meta.Currency,
		ExchangeName:       res.Meta.ExchangeName,
		Timezone:           res.Meta.ExchangeTimezoneName,
		RegularMarketPrice: res.Meta.RegularMarketPrice,
		PreviousClose:      res.Meta.ChartPreviousClose,
		RegularMarketTime:  unixIn(res.Meta.RegularMarketTime, loc),
		SessionStart:       unixIn(res.Meta.CurrentTradingPeriod.Regular.Start, loc),
		SessionEnd:         unixIn(res.Meta.CurrentTradingPeriod.Regular.End, loc),
	}
	if res.Meta.PreviousClose != nil {
		meta.PreviousClose = res.Meta.PreviousClose
	}

	bars := make(models.Series, 0, len(res.Timestamp))
	if len(res.Indicators.Quote) > 0 {
		q := res.Indicators.Quote[0]
		for i, ts := range res.Timestamp {
			o, h, l, cl := at(q.Open, i), at(q.High, i), at(q.Low, i), at(q.Close, i)
			if o == nil || h == nil || l == nil || cl == nil {
				continue
			}
			if *o == 0 && *h == 0 && *l == 0 && *cl == 0 {
				continue
			}
			var vol float64
			if v := at(q.Volume, i); v != nil {
				vol = *v
			}
			bars = append(bars, models.PriceBar{
				Date:   time.Unix(ts, 0).In(loc),
				Open:   *o,
				High:   *h,
				Low:    *l,
				Close:  *cl,
				Volume: vol,
			})
		}
	}

	bars = bars.Normalize()
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, domrepo.ErrNoData)
	}
	return &models.Chart{Meta: meta, Bars: bars}, nil
}

// FetchFundamentals returns the company snapshot for symbol.
func (c *Client) FetchFundamentals(ctx context.Context, symbol string) (*models.FundamentalsSnapshot, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s", c.baseURL, url.PathEscape(symbol))
	params := map[string][]string{"modules": {summaryModules}}

	var resp summaryResponse
	if err := c.call(ctx, "fundamentals", u, params, &resp); err != nil {
		return nil, err
	}
	if e := resp.QuoteSummary.Error; e != nil {
		return nil, apiErr(symbol, e)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, domrepo.ErrSymbolNotFound)
	}

	r := resp.QuoteSummary.Result[0]
	snap := &models.FundamentalsSnapshot{
		Symbol:           symbol,
		LongName:         r.Price.LongName,
		ShortName:        r.Price.ShortName,
		Currency:         r.Price.Currency,
		Price:            r.Price.RegularMarketPrice.Raw,
		PreviousClose:    firstRaw(r.Price.RegularMarketPreviousClose, r.SummaryDetail.PreviousClose),
		MarketCap:        firstRaw(r.Price.MarketCap, r.SummaryDetail.MarketCap),
		TrailingPE:       r.SummaryDetail.TrailingPE.Raw,
		TrailingEPS:      r.DefaultKeyStatistics.TrailingEps.Raw,
		DividendYield:    r.SummaryDetail.DividendYield.Raw,
		BookValue:        r.DefaultKeyStatistics.BookValue.Raw,
		PriceToBook:      r.DefaultKeyStatistics.PriceToBook.Raw,
		FiftyTwoWeekHigh: r.SummaryDetail.FiftyTwoWeekHigh.Raw,
		FiftyTwoWeekLow:  r.SummaryDetail.FiftyTwoWeekLow.Raw,
		Beta:             firstRaw(r.SummaryDetail.Beta, r.DefaultKeyStatistics.Beta),
		AverageVolume:    r.SummaryDetail.AverageVolume.Raw,
		Sector:           r.AssetProfile.Sector,
		Industry:         r.AssetProfile.Industry,
		Country:          r.AssetProfile.Country,
		Website:          r.AssetProfile.Website,
		Summary:          r.AssetProfile.LongBusinessSummary,
		Employees:        r.AssetProfile.FullTimeEmployees,
		FetchedAt:        c.now(),
	}
	return snap, nil
}

func (c *Client) call(ctx context.Context, op, u string, params map[string][]string, dest interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx, limiterKey); err != nil {
		return fmt.Errorf("%s: rate limit wait: %w", op, err)
	}

	start := time.Now()
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         u,
		QueryParams: params,
		Headers:     map[string]string{"Accept": "application/json"},
	}, dest)
	took := time.Since(start)
	if c.metrics != nil {
		c.metrics.RecordProviderCall(op, took.Seconds(), err)
	}

	if err != nil {
		c.logger.Debug("provider call failed",
			xlogger.String("op", op),
			xlogger.String("url", u),
			xlogger.Duration("took_ms", took),
			xlogger.Error(err),
		)
		if xhttp.IsStatus(err, http.StatusNotFound) {
			return fmt.Errorf("%s: %w", op, domrepo.ErrSymbolNotFound)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s: timed out after %s: %w", op, c.timeout, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func apiErr(symbol string, e *apiError) error {
	if strings.EqualFold(e.Code, "Not Found") {
		return fmt.Errorf("%s: %s: %w", symbol, e.Description, domrepo.ErrSymbolNotFound)
	}
	return fmt.Errorf("%s: provider error %s: %s", symbol, e.Code, e.Description)
}

func at(values []*float64, i int) *float64 {
	if i < len(values) {
		return values[i]
	}
	return nil
}

func unixIn(ts int64, loc *time.Location) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).In(loc)
}

func loadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
