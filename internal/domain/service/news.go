package service

import (
	"context"

	"StockLens/internal/domain/models"
)

// NewsService retrieves headlines from the configured feeds. Source failures
// are reported inside NewsResult.Errors rather than as a returned error.
type NewsService interface {
	StockNews(ctx context.Context, symbol, companyName string, max int) models.NewsResult
	MarketNews(ctx context.Context, max int) models.NewsResult
	HKMarketNews(ctx context.Context, max int) models.NewsResult
	ExtractArticle(ctx context.Context, link string) (*models.Article, error)
}

// ChartRenderer turns a chart description into an image.
type ChartRenderer interface {
	RenderPNG(spec *models.ChartSpec) ([]byte, error)
}
