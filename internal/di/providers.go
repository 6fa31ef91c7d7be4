package di

import (
	"fmt"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
	"StockLens/internal/domain/service"
	"StockLens/internal/handler/api"
	icache "StockLens/internal/service/cache"
	"StockLens/internal/service/classifier"
	"StockLens/internal/service/news"
	"StockLens/internal/service/ratelimit"
	"StockLens/internal/service/yahoo"
	"StockLens/internal/services/chart"
	"StockLens/internal/usecase"
	pkgcache "StockLens/pkg/cache"
	"StockLens/pkg/config"
	xhttp "StockLens/pkg/http"
	xlogger "StockLens/pkg/logger"
	"StockLens/pkg/metrics"
	"StockLens/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

// ProvideLogSink creates the ring buffer that backs /api/admin/logs.
func ProvideLogSink(cfg *config.Config) *xlogger.MemorySink {
	return xlogger.NewMemorySink(cfg.Log.Aggregate.Capacity)
}

// ProvideLogger creates the application logger and attaches the warning
// aggregator when enabled.
func ProvideLogger(cfg *config.Config, sink *xlogger.MemorySink) (*xlogger.Logger, error) {
	l, err := xlogger.New(&xlogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if cfg.Log.Aggregate.Enabled {
		l.AddCollector(&xlogger.CollectionConfig{
			TimeInterval:   cfg.Log.Aggregate.Interval,
			CountThreshold: cfg.Log.Aggregate.Threshold,
			Sink:           sink,
		})
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder on the default registry.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideHTTPClient creates the outbound client shared by the provider and
// news feeds.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	opts := []xhttp.ClientOption{xhttp.WithTimeout(cfg.Provider.Timeout)}
	if cfg.Provider.UserAgent != "" {
		opts = append(opts, xhttp.WithUserAgent(cfg.Provider.UserAgent))
	}
	return xhttp.NewClient(opts...)
}

// ProvideMarketDataProvider creates the Yahoo Finance client.
func ProvideMarketDataProvider(cfg *config.Config, client *xhttp.Client, m domrepo.Metrics, l *xlogger.Logger) domrepo.MarketDataProvider {
	return yahoo.New(client,
		yahoo.WithBaseURL(cfg.Provider.BaseURL),
		yahoo.WithTimeout(cfg.Provider.Timeout),
		yahoo.WithLimiter(ratelimit.New(cfg.Provider.RatePerSec, cfg.Provider.Burst)),
		yahoo.WithMetrics(m),
		yahoo.WithLogger(l),
	)
}

// ProvideCacheStore creates the memo backing store: process memory, or
// memory in front of Redis when Redis is enabled.
func ProvideCacheStore(cfg *config.Config) (pkgcache.Service, error) {
	mem := []pkgcache.MemoryOption{
		pkgcache.WithMemoryMaxSize(cfg.Cache.MaxEntries),
		pkgcache.WithMemoryCleanup(cfg.Cache.CleanupInterval),
	}
	if !cfg.Cache.Redis.Enabled {
		return pkgcache.NewMemoryCache(mem...), nil
	}

	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisAddr(cfg.Cache.Redis.Addr),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		pkgcache.WithRedisPool(cfg.Cache.Redis.PoolSize, cfg.Cache.Redis.MinIdleConns, cfg.Cache.Redis.PoolTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(rc, pkgcache.WithLayeredMemory(mem...)), nil
}

// ProvideMemo creates the market data memo.
func ProvideMemo(cfg *config.Config, store pkgcache.Service, m domrepo.Metrics, l *xlogger.Logger) *icache.Memo {
	return icache.NewMemo(store, cfg.Cache.TTL, m, l)
}

// ProvideClassifier creates the ticker classifier.
func ProvideClassifier(cfg *config.Config) *classifier.Classifier {
	return classifier.New(
		classifier.WithStripSuffixes(cfg.Classifier.StripSuffixes...),
		classifier.WithHKSuffix(cfg.Classifier.HKSuffix),
		classifier.WithPadWidth(cfg.Classifier.PadWidth),
	)
}

// ProvideNewsService creates the feed aggregator. Article pages are fetched
// through a client that refuses to dial non-public addresses.
func ProvideNewsService(cfg *config.Config, client *xhttp.Client, m domrepo.Metrics, l *xlogger.Logger) service.NewsService {
	market := make([]news.Source, 0, len(cfg.News.Market))
	for _, s := range cfg.News.Market {
		market = append(market, news.Source{Name: s.Name, URL: s.URL})
	}
	articleOpts := []xhttp.ClientOption{xhttp.WithTimeout(cfg.News.Timeout), xhttp.WithPublicOnly()}
	if cfg.Provider.UserAgent != "" {
		articleOpts = append(articleOpts, xhttp.WithUserAgent(cfg.Provider.UserAgent))
	}
	articles := xhttp.NewClient(articleOpts...)
	return news.New(client,
		news.WithArticleClient(articles),
		news.WithSearchSource(news.Source{Name: cfg.News.Search.Name, URL: cfg.News.Search.URL}),
		news.WithSymbolSource(news.Source{Name: cfg.News.Symbol.Name, URL: cfg.News.Symbol.URL}),
		news.WithMarketSources(market),
		news.WithHKQueries(cfg.News.HKQueries),
		news.WithTimeout(cfg.News.Timeout),
		news.WithMetrics(m),
		news.WithLogger(l),
	)
}

// ProvideChartRenderer creates the PNG renderer.
func ProvideChartRenderer(cfg *config.Config) service.ChartRenderer {
	return chart.NewRenderer(chart.WithSize(cfg.Chart.Width, cfg.Chart.Height))
}

// ProvideMarketDataUseCase creates the memoized market data use case.
func ProvideMarketDataUseCase(
	cfg *config.Config,
	cls *classifier.Classifier,
	provider domrepo.MarketDataProvider,
	memo *icache.Memo,
	m domrepo.Metrics,
	l *xlogger.Logger,
) *usecase.MarketDataUseCase {
	return usecase.NewMarketDataUseCase(cls, provider, memo, l,
		usecase.WithStatusSymbol(cfg.Provider.StatusSymbol),
		usecase.WithMarketDataMetrics(m),
	)
}

// ProvideStockHandler creates the API handler.
func ProvideStockHandler(
	cfg *config.Config,
	l *xlogger.Logger,
	market *usecase.MarketDataUseCase,
	dashboard *usecase.DashboardUseCase,
	newsUC *usecase.NewsUseCase,
	export *usecase.ExportUseCase,
	sink *xlogger.MemorySink,
) *api.StockHandler {
	return api.NewStockHandler(api.StockHandlerDeps{
		Logger:    l,
		Market:    market,
		Dashboard: dashboard,
		News:      newsUC,
		Export:    export,
		Popular: models.PopularSymbols{
			US: symbolEntries(cfg.Symbols.US),
			HK: symbolEntries(cfg.Symbols.HK),
		},
		Logs:    sink,
		Limiter: ratelimit.New(cfg.Server.RatePerSec, cfg.Server.RateBurst),
	})
}

func symbolEntries(in []config.SymbolEntry) []models.SymbolEntry {
	out := make([]models.SymbolEntry, 0, len(in))
	for _, s := range in {
		out = append(out, models.SymbolEntry{Symbol: s.Symbol, Name: s.Name})
	}
	return out
}

// ProvideHTTPServer creates the echo server with the API routes mounted.
func ProvideHTTPServer(cfg *config.Config, h *api.StockHandler, l *xlogger.Logger) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORSOrigins),
		xhttp.WithLogger(l),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(cfg.Metrics.Path, prometheus.DefaultRegisterer, prometheus.DefaultGatherer))
	}
	return xhttp.NewServer(h, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *xlogger.Logger, srv *xhttp.Server, store pkgcache.Service) *server.App {
	return server.New(cfg, l, srv, store)
}
