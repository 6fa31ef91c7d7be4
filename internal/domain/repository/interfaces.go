package repository

import (
	"context"

	"StockLens/internal/domain/models"
)

// MarketDataProvider fetches raw bars and fundamentals from an upstream API.
type MarketDataProvider interface {
	FetchChart(ctx context.Context, symbol string, r Range) (*models.Chart, error)
	FetchFundamentals(ctx context.Context, symbol string) (*models.FundamentalsSnapshot, error)
}

type Metrics interface {
	RecordProviderCall(op string, seconds float64, err error)
	RecordCacheLookup(hit bool)
	RecordNewsSourceError(source string)
	RecordExport(bytes int)
	RecordLastPrice(symbol string, price float64)
}
