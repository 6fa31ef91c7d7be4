package usecase

import (
	"context"
	"fmt"
	"time"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
	"StockLens/internal/domain/service"
	"StockLens/internal/services/chart"
	"StockLens/internal/services/export"
	xlogger "StockLens/pkg/logger"
)

// ExportUseCase produces downloadable artifacts: the XLSX history and chart images.
type ExportUseCase struct {
	market   *MarketDataUseCase
	renderer service.ChartRenderer
	metrics  domrepo.Metrics
	logger   *xlogger.Logger
	now      func() time.Time
}

func NewExportUseCase(market *MarketDataUseCase, renderer service.ChartRenderer, metrics domrepo.Metrics, logger *xlogger.Logger) *ExportUseCase {
	return &ExportUseCase{market: market, renderer: renderer, metrics: metrics, logger: logger, now: time.Now}
}

// SetClock overrides the time source, used by tests.
func (uc *ExportUseCase) SetClock(now func() time.Time) { uc.now = now }

// File is a generated download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Workbook exports the price history of symbol over r.
func (uc *ExportUseCase) Workbook(ctx context.Context, symbol string, r domrepo.Range) (*File, error) {
	ticker := uc.market.Classify(symbol)
	res, err := uc.market.Fetch(ctx, ticker, r)
	if err != nil {
		return nil, err
	}
	if !res.Data.HasBars() {
		return nil, fmt.Errorf("%s: %w: %s", ticker.Normalized, domrepo.ErrUnavailable, res.Data.BarsError)
	}

	now := uc.now()
	data, err := export.Build(res.Data.Bars, ticker, string(r), res.Data.Interval, res.Data.CompanyName(), now)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", ticker.Normalized, err)
	}
	if uc.metrics != nil {
		uc.metrics.RecordExport(len(data))
	}
	uc.logger.Info("workbook exported",
		xlogger.String("symbol", ticker.Normalized),
		xlogger.String("range", string(r)),
		xlogger.Int("bytes", len(data)),
	)
	return &File{Name: export.Filename(ticker.Normalized, now), ContentType: export.ContentType, Data: data}, nil
}

// ChartImage renders the price chart of symbol as PNG.
func (uc *ExportUseCase) ChartImage(ctx context.Context, symbol string, r domrepo.Range, opts models.DashboardOptions) (*File, error) {
	ticker := uc.market.Classify(symbol)
	res, err := uc.market.Fetch(ctx, ticker, r)
	if err != nil {
		return nil, err
	}
	if !res.Data.HasBars() {
		return nil, fmt.Errorf("%s: %w: %s", ticker.Normalized, domrepo.ErrUnavailable, res.Data.BarsError)
	}
	png, err := uc.renderer.RenderPNG(chart.BuildChart(res.Data.Bars, chartOptions(ticker, opts)))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", ticker.Normalized, err)
	}
	return &File{Name: ticker.Normalized + "_chart.png", ContentType: "image/png", Data: png}, nil
}
