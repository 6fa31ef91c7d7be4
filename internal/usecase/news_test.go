package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
	xlogger "StockLens/pkg/logger"
)

func TestStockNewsResolvesCompany(t *testing.T) {
	e := newEnv()
	uc := NewNewsUseCase(e.market, e.news, xlogger.NewNop())

	_, err := uc.StockNews(context.Background(), StockNewsParams{Symbol: "aapl", Max: 5})
	require.NoError(t, err)
	_, err = uc.StockNews(context.Background(), StockNewsParams{Symbol: "aapl", Company: "Apple", Max: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL|Apple Inc.", "AAPL|Apple"}, e.news.stockFor)
}

func TestStockNewsWithoutFundamentals(t *testing.T) {
	e := newEnv()
	e.provider.chartErr = errors.New("down")
	e.provider.fundErr = errors.New("down")
	uc := NewNewsUseCase(e.market, e.news, xlogger.NewNop())

	_, err := uc.StockNews(context.Background(), StockNewsParams{Symbol: "aapl", Max: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL|"}, e.news.stockFor)

	_, err = uc.StockNews(context.Background(), StockNewsParams{})
	assert.ErrorIs(t, err, domrepo.ErrInvalidSymbol)
}

func TestMarketNewsByMarket(t *testing.T) {
	e := newEnv()
	uc := NewNewsUseCase(e.market, e.news, xlogger.NewNop())
	assert.Equal(t, "HK market", uc.MarketNews(context.Background(), models.MarketHK, 5).Items[0].Headline)
	assert.Equal(t, "US market", uc.MarketNews(context.Background(), models.MarketUS, 5).Items[0].Headline)

	art, err := uc.Article(context.Background(), "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "body", art.Text)
}

func TestArticleRejectsNonPublicLinks(t *testing.T) {
	e := newEnv()
	uc := NewNewsUseCase(e.market, e.news, xlogger.NewNop())
	for _, link := range []string{
		"http://127.0.0.1/admin",
		"http://[::1]:6379/",
		"http://169.254.169.254/latest/meta-data/",
		"http://192.168.1.1/",
		"file:///etc/passwd",
	} {
		_, err := uc.Article(context.Background(), link)
		assert.ErrorIs(t, err, domrepo.ErrForbiddenURL, link)
	}
}
