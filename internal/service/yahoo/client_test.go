package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domrepo "StockLens/internal/domain/repository"
	xhttp "StockLens/pkg/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartFixture = `{"chart":{"result":[{
 "meta":{"symbol":"AAPL","currency":"USD","exchangeName":"NMS","exchangeTimezoneName":"America/New_York",
  "regularMarketPrice":103.5,"chartPreviousClose":99.0,"regularMarketTime":1704393000,
  "currentTradingPeriod":{"regular":{"start":1704378600,"end":1704402000}}},
 "timestamp":[1704292200,1704205800,1704378600,1704465000,1704465000],
 "indicators":{"quote":[{
  "open":[101,100,null,103,104],
  "high":[102,101,103,104,105],
  "low":[100,99,101,102,103],
  "close":[101.5,100.5,102,103.5,104.5],
  "volume":[1000,2000,3000,null,5000]}]}}],"error":null}}`

const summaryFixture = `{"quoteSummary":{"result":[{
 "price":{"longName":"Apple Inc.","shortName":"Apple","currency":"USD",
  "regularMarketPrice":{"raw":190.5,"fmt":"190.50"},"regularMarketPreviousClose":{"raw":188.0},"marketCap":{"raw":2950000000000}},
 "summaryDetail":{"trailingPE":{"raw":29.4},"dividendYield":{"raw":0.0051},"beta":{"raw":1.29},
  "fiftyTwoWeekHigh":{"raw":199.62},"fiftyTwoWeekLow":{"raw":124.17},"averageVolume":{"raw":58000000}},
 "defaultKeyStatistics":{"trailingEps":{"raw":6.13},"bookValue":{"raw":4.79},"priceToBook":{},"beta":{"raw":1.3}},
 "assetProfile":{"sector":"Technology","industry":"Consumer Electronics","country":"United States",
  "website":"https://www.apple.com","longBusinessSummary":"Apple designs things.","fullTimeEmployees":161000}}],"error":null}}`

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithBaseURL(srv.URL)}, opts...)
	return New(xhttp.NewClient(), opts...)
}

func TestFetchChartCleansBars(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "1y", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		_, _ = w.Write([]byte(chartFixture))
	})

	chart, err := c.FetchChart(context.Background(), "AAPL", domrepo.Range1Y)
	require.NoError(t, err)

	bars := chart.Bars
	require.Len(t, bars, 3)
	for i := 1; i < len(bars); i++ {
		assert.True(t, bars[i].Date.After(bars[i-1].Date), "bars must be strictly increasing")
	}
	assert.Equal(t, 100.5, bars[0].Close)
	assert.Equal(t, 101.5, bars[1].Close)
	// duplicate timestamp keeps the later observation
	assert.Equal(t, 104.5, bars[2].Close)
	assert.Equal(t, 5000.0, bars[2].Volume)

	assert.Equal(t, "USD", chart.Meta.Currency)
	assert.Equal(t, "America/New_York", chart.Meta.Timezone)
	require.NotNil(t, chart.Meta.PreviousClose)
	assert.Equal(t, 99.0, *chart.Meta.PreviousClose)
	assert.False(t, chart.Meta.SessionStart.IsZero())
}

func TestFetchChartIntervalForShortRange(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5m", r.URL.Query().Get("interval"))
		_, _ = w.Write([]byte(chartFixture))
	})
	_, err := c.FetchChart(context.Background(), "AAPL", domrepo.Range1D)
	require.NoError(t, err)
}

func TestFetchChartNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	})
	_, err := c.FetchChart(context.Background(), "ZZZZ", domrepo.Range1Y)
	assert.ErrorIs(t, err, domrepo.ErrSymbolNotFound)
}

func TestFetchChartAPIErrorInBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"gone"}}}`))
	})
	_, err := c.FetchChart(context.Background(), "ZZZZ", domrepo.Range1Y)
	assert.ErrorIs(t, err, domrepo.ErrSymbolNotFound)
}

func TestFetchChartEmptySeries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{"symbol":"X"},"timestamp":[],"indicators":{"quote":[{}]}}],"error":null}}`))
	})
	_, err := c.FetchChart(context.Background(), "X", domrepo.Range1Y)
	assert.ErrorIs(t, err, domrepo.ErrNoData)
}

func TestFetchChartTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := c.FetchChart(context.Background(), "AAPL", domrepo.Range1Y)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), time.Second)
}

func TestFetchFundamentals(t *testing.T) {
	fixed := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/"))
		assert.Contains(t, r.URL.Query().Get("modules"), "assetProfile")
		_, _ = w.Write([]byte(summaryFixture))
	}, WithClock(func() time.Time { return fixed }))

	f, err := c.FetchFundamentals(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "Apple Inc.", f.Name("AAPL"))
	require.NotNil(t, f.MarketCap)
	assert.Equal(t, 2.95e12, *f.MarketCap)
	require.NotNil(t, f.PreviousClose)
	assert.Equal(t, 188.0, *f.PreviousClose)
	require.NotNil(t, f.Beta)
	assert.Equal(t, 1.29, *f.Beta)
	assert.Nil(t, f.PriceToBook)
	require.NotNil(t, f.Employees)
	assert.EqualValues(t, 161000, *f.Employees)
	assert.Equal(t, fixed, f.FetchedAt)
}

func TestFetchFundamentalsEmptyResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"quoteSummary":{"result":[],"error":null}}`))
	})
	_, err := c.FetchFundamentals(context.Background(), "NOPE")
	assert.ErrorIs(t, err, domrepo.ErrSymbolNotFound)
}
