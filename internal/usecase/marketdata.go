package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
	icache "StockLens/internal/service/cache"
	"StockLens/internal/service/classifier"
	xlogger "StockLens/pkg/logger"
)

// Market states reported by MarketStatus.
const (
	MarketStatePre     = "PRE"
	MarketStateRegular = "REGULAR"
	MarketStateClosed  = "CLOSED"
	MarketStateUnknown = "UNKNOWN"
)

// MarketDataUseCase classifies tickers and fetches memoized provider data.
type MarketDataUseCase struct {
	classifier   *classifier.Classifier
	provider     domrepo.MarketDataProvider
	memo         *icache.Memo
	metrics      domrepo.Metrics
	logger       *xlogger.Logger
	statusSymbol string
	now          func() time.Time
}

// MarketDataOption configures MarketDataUseCase.
type MarketDataOption func(*MarketDataUseCase)

// WithStatusSymbol sets the proxy symbol read by MarketStatus.
func WithStatusSymbol(s string) MarketDataOption {
	return func(uc *MarketDataUseCase) {
		if s != "" {
			uc.statusSymbol = s
		}
	}
}

func WithMarketDataClock(now func() time.Time) MarketDataOption {
	return func(uc *MarketDataUseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

func WithMarketDataMetrics(m domrepo.Metrics) MarketDataOption {
	return func(uc *MarketDataUseCase) { uc.metrics = m }
}

func NewMarketDataUseCase(cls *classifier.Classifier, provider domrepo.MarketDataProvider, memo *icache.Memo, logger *xlogger.Logger, opts ...MarketDataOption) *MarketDataUseCase {
	uc := &MarketDataUseCase{
		classifier:   cls,
		provider:     provider,
		memo:         memo,
		logger:       logger,
		statusSymbol: "SPY",
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// FetchResult is a market data response together with its encoded form.
// Raw is byte-identical for every call served from the same memo entry.
type FetchResult struct {
	Data   *models.MarketData
	Raw    []byte
	Cached bool
}

// Classify resolves a raw ticker.
func (uc *MarketDataUseCase) Classify(raw string) models.TickerSymbol {
	return uc.classifier.Classify(raw)
}

// Fetch returns bars and fundamentals for ticker over r. Bars and
// fundamentals are fetched independently; a failure of one is recorded on
// the result. Only when both fail is an error returned.
func (uc *MarketDataUseCase) Fetch(ctx context.Context, ticker models.TickerSymbol, r domrepo.Range) (*FetchResult, error) {
	if ticker.Normalized == "" {
		return nil, domrepo.ErrInvalidSymbol
	}
	if !domrepo.IsValidRange(r) {
		return nil, fmt.Errorf("%w: %q", domrepo.ErrInvalidRange, r)
	}

	key := icache.Key(ticker.Normalized, r)
	raw, hit, err := uc.memo.Do(ctx, key, func(ctx context.Context) ([]byte, bool, error) {
		data, err := uc.load(ctx, ticker, r)
		if err != nil {
			return nil, false, err
		}
		b, err := json.Marshal(data)
		if err != nil {
			return nil, false, fmt.Errorf("encode market data: %w", err)
		}
		return b, data.HasBars(), nil
	})
	if err != nil {
		return nil, err
	}

	var data models.MarketData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode market data: %w", err)
	}
	if last, ok := data.Bars.Last(); ok && uc.metrics != nil {
		uc.metrics.RecordLastPrice(ticker.Normalized, last.Close)
	}
	uc.logger.Debug("market data",
		xlogger.String("key", key),
		xlogger.Bool("cached", hit),
		xlogger.Int("bars", len(data.Bars)),
	)
	return &FetchResult{Data: &data, Raw: raw, Cached: hit}, nil
}

func (uc *MarketDataUseCase) load(ctx context.Context, ticker models.TickerSymbol, r domrepo.Range) (*models.MarketData, error) {
	var (
		wg      sync.WaitGroup
		chart   *models.Chart
		fund    *models.FundamentalsSnapshot
		chErr   error
		fundErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		chart, chErr = uc.provider.FetchChart(ctx, ticker.Normalized, r)
	}()
	go func() {
		defer wg.Done()
		fund, fundErr = uc.provider.FetchFundamentals(ctx, ticker.Normalized)
	}()
	wg.Wait()

	if chErr != nil && fundErr != nil {
		cause := domrepo.ErrUnavailable
		if errors.Is(chErr, domrepo.ErrSymbolNotFound) && errors.Is(fundErr, domrepo.ErrSymbolNotFound) {
			cause = domrepo.ErrSymbolNotFound
		}
		return nil, fmt.Errorf("%s: %w (bars: %v; fundamentals: %v)", ticker.Normalized, cause, chErr, fundErr)
	}

	data := &models.MarketData{
		Ticker:       ticker,
		Range:        string(r),
		Interval:     r.Interval(),
		Fundamentals: fund,
		FetchedAt:    uc.now(),
	}
	if chErr != nil {
		data.BarsError = chErr.Error()
		uc.logger.Warn("bars unavailable", xlogger.String("symbol", ticker.Normalized), xlogger.Error(chErr))
	} else {
		meta := chart.Meta
		data.Meta = &meta
		data.Bars = chart.Bars
	}
	if fundErr != nil {
		data.FundamentalsError = fundErr.Error()
		uc.logger.Warn("fundamentals unavailable", xlogger.String("symbol", ticker.Normalized), xlogger.Error(fundErr))
	}
	return data, nil
}

// ValidateSymbol reports whether the provider knows raw and has a name for it.
func (uc *MarketDataUseCase) ValidateSymbol(ctx context.Context, raw string) *models.SymbolValidation {
	ticker := uc.classifier.Classify(raw)
	res := &models.SymbolValidation{Ticker: ticker}
	if ticker.Normalized == "" {
		res.Reason = "empty symbol"
		return res
	}
	snap, err := uc.provider.FetchFundamentals(ctx, ticker.Normalized)
	switch {
	case errors.Is(err, domrepo.ErrSymbolNotFound):
		res.Reason = "symbol not found"
	case err != nil:
		res.Reason = err.Error()
	case snap.Name("") == "":
		res.Reason = "provider returned no company name"
	default:
		res.Valid = true
		res.Name = snap.Name("")
	}
	return res
}

// MarketStatus reads the trading session of the proxy symbol.
func (uc *MarketDataUseCase) MarketStatus(ctx context.Context) (*models.MarketStatus, error) {
	chart, err := uc.provider.FetchChart(ctx, uc.statusSymbol, domrepo.Range1D)
	if err != nil {
		return nil, fmt.Errorf("market status: %w", err)
	}
	now := uc.now()
	m := chart.Meta
	return &models.MarketStatus{
		Symbol:       uc.statusSymbol,
		State:        sessionState(now, m.SessionStart, m.SessionEnd),
		Timezone:     m.Timezone,
		SessionStart: m.SessionStart,
		SessionEnd:   m.SessionEnd,
		CheckedAt:    now,
	}, nil
}

func sessionState(now, start, end time.Time) string {
	switch {
	case start.IsZero() || end.IsZero():
		return MarketStateUnknown
	case now.Before(start):
		return MarketStatePre
	case now.Before(end):
		return MarketStateRegular
	default:
		return MarketStateClosed
	}
}
