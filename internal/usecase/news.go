package usecase

import (
	"context"
	"fmt"
	"strings"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
	"StockLens/internal/domain/service"
	xhttp "StockLens/pkg/http"
	xlogger "StockLens/pkg/logger"
)

// NewsUseCase serves ticker and market headlines.
type NewsUseCase struct {
	market *MarketDataUseCase
	news   service.NewsService
	logger *xlogger.Logger
}

func NewNewsUseCase(market *MarketDataUseCase, news service.NewsService, logger *xlogger.Logger) *NewsUseCase {
	return &NewsUseCase{market: market, news: news, logger: logger}
}

type StockNewsParams struct {
	Symbol  string
	Company string
	Max     int
}

// StockNews returns headlines for a ticker. Without a company name the
// memoized fundamentals are consulted; a failure there only narrows the search.
func (uc *NewsUseCase) StockNews(ctx context.Context, p StockNewsParams) (models.NewsResult, error) {
	ticker := uc.market.Classify(p.Symbol)
	if ticker.Normalized == "" {
		return models.NewsResult{}, domrepo.ErrInvalidSymbol
	}
	company := strings.TrimSpace(p.Company)
	if company == "" {
		if res, err := uc.market.Fetch(ctx, ticker, domrepo.DefaultRange()); err == nil {
			company = res.Data.Fundamentals.Name("")
		} else {
			uc.logger.Debug("company lookup failed", xlogger.String("symbol", ticker.Normalized), xlogger.Error(err))
		}
	}
	return uc.news.StockNews(ctx, ticker.Normalized, company, p.Max), nil
}

// MarketNews returns general headlines for the US or HK market.
func (uc *NewsUseCase) MarketNews(ctx context.Context, market models.Market, max int) models.NewsResult {
	if market == models.MarketHK {
		return uc.news.HKMarketNews(ctx, max)
	}
	return uc.news.MarketNews(ctx, max)
}

// Article extracts readable text from a news link. Only public http(s)
// links are followed.
func (uc *NewsUseCase) Article(ctx context.Context, link string) (*models.Article, error) {
	if err := xhttp.CheckPublicURL(link); err != nil {
		return nil, fmt.Errorf("%w: %v", domrepo.ErrForbiddenURL, err)
	}
	return uc.news.ExtractArticle(ctx, link)
}
