package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
)

func TestFetchMemoizesWithinTTL(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	ticker := e.market.Classify("aapl")

	first, err := e.market.Fetch(ctx, ticker, domrepo.Range1Y)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Len(t, first.Data.Bars, 300)
	assert.Equal(t, "Apple Inc.", first.Data.CompanyName())

	e.clock.Advance(4*time.Minute + 59*time.Second)
	second, err := e.market.Fetch(ctx, ticker, domrepo.Range1Y)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Raw, second.Raw)
	charts, funds := e.provider.calls()
	assert.Equal(t, 1, charts)
	assert.Equal(t, 1, funds)

	e.clock.Advance(time.Second)
	third, err := e.market.Fetch(ctx, ticker, domrepo.Range1Y)
	require.NoError(t, err)
	assert.False(t, third.Cached)
	charts, _ = e.provider.calls()
	assert.Equal(t, 2, charts)
}

func TestFetchKeysByRange(t *testing.T) {
	e := newEnv()
	ticker := e.market.Classify("AAPL")
	_, err := e.market.Fetch(context.Background(), ticker, domrepo.Range1Y)
	require.NoError(t, err)
	_, err = e.market.Fetch(context.Background(), ticker, domrepo.Range5D)
	require.NoError(t, err)
	charts, _ := e.provider.calls()
	assert.Equal(t, 2, charts)
}

func TestFetchPartialFundamentals(t *testing.T) {
	e := newEnv()
	e.provider.fundErr = errors.New("fundamentals: timed out after 10s")

	res, err := e.market.Fetch(context.Background(), e.market.Classify("AAPL"), domrepo.Range1M)
	require.NoError(t, err)
	assert.Nil(t, res.Data.Fundamentals)
	assert.Contains(t, res.Data.FundamentalsError, "timed out")
	assert.NotEmpty(t, res.Data.Bars)
	assert.Equal(t, "AAPL", res.Data.CompanyName())
}

func TestFetchWithoutBarsIsNotMemoized(t *testing.T) {
	e := newEnv()
	e.provider.chartErr = fmt.Errorf("AAPL: %w", domrepo.ErrNoData)

	for i := 0; i < 2; i++ {
		res, err := e.market.Fetch(context.Background(), e.market.Classify("AAPL"), domrepo.Range1Y)
		require.NoError(t, err)
		assert.False(t, res.Data.HasBars())
		assert.NotEmpty(t, res.Data.BarsError)
		assert.False(t, res.Cached)
	}
	charts, _ := e.provider.calls()
	assert.Equal(t, 2, charts)
}

func TestFetchTotalFailure(t *testing.T) {
	e := newEnv()
	e.provider.chartErr = errors.New("connection refused")
	e.provider.fundErr = errors.New("connection refused")
	_, err := e.market.Fetch(context.Background(), e.market.Classify("AAPL"), domrepo.Range1Y)
	assert.ErrorIs(t, err, domrepo.ErrUnavailable)

	e.provider.chartErr = fmt.Errorf("chart: %w", domrepo.ErrSymbolNotFound)
	e.provider.fundErr = fmt.Errorf("fundamentals: %w", domrepo.ErrSymbolNotFound)
	_, err = e.market.Fetch(context.Background(), e.market.Classify("NOPE"), domrepo.Range1Y)
	assert.ErrorIs(t, err, domrepo.ErrSymbolNotFound)
}

func TestFetchValidatesInput(t *testing.T) {
	e := newEnv()
	_, err := e.market.Fetch(context.Background(), e.market.Classify("AAPL"), domrepo.Range("10y"))
	assert.ErrorIs(t, err, domrepo.ErrInvalidRange)

	_, err = e.market.Fetch(context.Background(), e.market.Classify("  "), domrepo.Range1Y)
	assert.ErrorIs(t, err, domrepo.ErrInvalidSymbol)
	charts, _ := e.provider.calls()
	assert.Zero(t, charts)
}

func TestFetchNormalizesHKSymbols(t *testing.T) {
	e := newEnv()
	_, err := e.market.Fetch(context.Background(), e.market.Classify("700"), domrepo.Range1Y)
	require.NoError(t, err)
	assert.Equal(t, []string{"0700.HK"}, e.provider.lastSymbols)
}

func TestValidateSymbol(t *testing.T) {
	e := newEnv()
	v := e.market.ValidateSymbol(context.Background(), "aapl")
	assert.True(t, v.Valid)
	assert.Equal(t, "Apple Inc.", v.Name)

	e.provider.fund = &models.FundamentalsSnapshot{}
	v = e.market.ValidateSymbol(context.Background(), "aapl")
	assert.False(t, v.Valid)

	e.provider.fundErr = fmt.Errorf("x: %w", domrepo.ErrSymbolNotFound)
	v = e.market.ValidateSymbol(context.Background(), "zzzz")
	assert.False(t, v.Valid)
	assert.Equal(t, "symbol not found", v.Reason)

	v = e.market.ValidateSymbol(context.Background(), "")
	assert.Equal(t, "empty symbol", v.Reason)
}

func TestMarketStatus(t *testing.T) {
	e := newEnv()
	now := e.clock.Now()
	e.provider.chart.Meta.SessionStart = now.Add(-time.Hour)
	e.provider.chart.Meta.SessionEnd = now.Add(time.Hour)

	st, err := e.market.MarketStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SPY", st.Symbol)
	assert.Equal(t, MarketStateRegular, st.State)
	assert.Equal(t, "America/New_York", st.Timezone)

	assert.Equal(t, MarketStatePre, sessionState(now, now.Add(time.Minute), now.Add(time.Hour)))
	assert.Equal(t, MarketStateClosed, sessionState(now, now.Add(-2*time.Hour), now.Add(-time.Hour)))
	assert.Equal(t, MarketStateUnknown, sessionState(now, time.Time{}, time.Time{}))

	e.provider.chartErr = errors.New("down")
	_, err = e.market.MarketStatus(context.Background())
	assert.Error(t, err)
}
