//go:build wireinject
// +build wireinject

package di

import (
	domrepo "StockLens/internal/domain/repository"
	"StockLens/internal/usecase"
	"StockLens/pkg/config"
	"StockLens/pkg/metrics"
	"StockLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogSink,
		ProvideLogger,
		ProvideMetrics,
		wire.Bind(new(domrepo.Metrics), new(*metrics.Recorder)),

		// Infrastructure clients
		ProvideHTTPClient,
		ProvideMarketDataProvider,
		ProvideCacheStore,
		ProvideMemo,
		ProvideClassifier,
		ProvideNewsService,
		ProvideChartRenderer,

		// Use cases
		ProvideMarketDataUseCase,
		usecase.NewDashboardUseCase,
		usecase.NewNewsUseCase,
		usecase.NewExportUseCase,

		// Transport
		ProvideStockHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
