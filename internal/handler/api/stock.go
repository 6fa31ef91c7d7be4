package api

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
	"StockLens/internal/service/ratelimit"
	"StockLens/internal/usecase"
	xhttp "StockLens/pkg/http"
	xlogger "StockLens/pkg/logger"
)

const (
	headerCache  = "X-Cache"
	headerReqID  = "X-Request-ID"
	limiterScope = ":api"
)

// StockHandler serves the dashboard API.
type StockHandler struct {
	logger    *xlogger.Logger
	market    *usecase.MarketDataUseCase
	dashboard *usecase.DashboardUseCase
	news      *usecase.NewsUseCase
	export    *usecase.ExportUseCase
	popular   models.PopularSymbols
	logs      *xlogger.MemorySink
	limiter   *ratelimit.Limiter
}

// StockHandlerDeps groups the collaborators of StockHandler.
type StockHandlerDeps struct {
	Logger    *xlogger.Logger
	Market    *usecase.MarketDataUseCase
	Dashboard *usecase.DashboardUseCase
	News      *usecase.NewsUseCase
	Export    *usecase.ExportUseCase
	Popular   models.PopularSymbols
	Logs      *xlogger.MemorySink
	Limiter   *ratelimit.Limiter
}

func NewStockHandler(d StockHandlerDeps) *StockHandler {
	limiter := d.Limiter
	if limiter == nil {
		limiter = ratelimit.New(0, 1)
	}
	return &StockHandler{
		logger:    d.Logger,
		market:    d.Market,
		dashboard: d.Dashboard,
		news:      d.News,
		export:    d.Export,
		popular:   d.Popular,
		logs:      d.Logs,
		limiter:   limiter,
	}
}

func (h *StockHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api", h.rateLimit)
	g.GET("/classify", h.Classify)
	g.GET("/validate", h.Validate)
	g.GET("/ranges", h.Ranges)
	g.GET("/market-data", h.MarketData)
	g.GET("/market-status", h.MarketStatus)
	g.GET("/dashboard", h.Dashboard)
	g.GET("/chart.png", h.ChartPNG)
	g.GET("/news", h.StockNews)
	g.GET("/news/market", h.MarketNews)
	g.GET("/article", h.Article)
	g.GET("/export", h.Export)
	g.GET("/symbols/popular", h.Popular)
	g.GET("/admin/logs", h.AdminLogs)
}

func (h *StockHandler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := xhttp.ClientKey(c) + limiterScope
		if !h.limiter.Allow(key) {
			h.logger.Warn("rate limited", xlogger.String("client", key), xlogger.String("path", c.Path()))
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limit exceeded"))
		}
		return next(c)
	}
}

func (h *StockHandler) fail(c echo.Context, op string, err error) error {
	appErr := toAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		h.logger.Error(op+" failed", xlogger.Error(err), xlogger.Int("status", appErr.Status))
	} else {
		h.logger.Debug(op+" rejected", xlogger.Error(err), xlogger.Int("status", appErr.Status))
	}
	return xhttp.AppErrorResponse(c, appErr)
}

func (h *StockHandler) Classify(c echo.Context) error {
	req := &models.SymbolRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.market.Classify(req.Symbol))
}

func (h *StockHandler) Validate(c echo.Context) error {
	req := &models.SymbolRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.market.ValidateSymbol(c.Request().Context(), req.Symbol))
}

type rangeInfo struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Interval string `json:"interval"`
}

func (h *StockHandler) Ranges(c echo.Context) error {
	out := make([]rangeInfo, 0, len(domrepo.Ranges))
	for _, r := range domrepo.Ranges {
		out = append(out, rangeInfo{Value: string(r), Label: r.Label(), Interval: r.Interval()})
	}
	return xhttp.SuccessResponse(c, out)
}

// MarketData returns the memoized provider response. Repeated requests inside
// the memo window return the same bytes.
func (h *StockHandler) MarketData(c echo.Context) error {
	req := &models.MarketDataRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	r, err := domrepo.ParseRange(req.Range)
	if err != nil {
		return h.fail(c, "market data", err)
	}
	res, err := h.market.Fetch(c.Request().Context(), h.market.Classify(req.Symbol), r)
	if err != nil {
		return h.fail(c, "market data", err)
	}
	c.Response().Header().Set(headerCache, cacheHeader(res.Cached))
	return xhttp.SuccessResponse(c, json.RawMessage(res.Raw))
}

func (h *StockHandler) MarketStatus(c echo.Context) error {
	st, err := h.market.MarketStatus(c.Request().Context())
	if err != nil {
		return h.fail(c, "market status", err)
	}
	return xhttp.SuccessResponse(c, st)
}

func (h *StockHandler) Dashboard(c echo.Context) error {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	r, err := domrepo.ParseRange(req.Range)
	if err != nil {
		return h.fail(c, "dashboard", err)
	}
	d, err := h.dashboard.Build(c.Request().Context(), usecase.DashboardParams{
		Symbol:  req.Symbol,
		Range:   r,
		Options: dashboardOptions(req),
	})
	if err != nil {
		return h.fail(c, "dashboard", err)
	}
	c.Response().Header().Set(headerReqID, d.Request.ID)
	return xhttp.SuccessResponse(c, d)
}

func (h *StockHandler) ChartPNG(c echo.Context) error {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	r, err := domrepo.ParseRange(req.Range)
	if err != nil {
		return h.fail(c, "chart", err)
	}
	f, err := h.export.ChartImage(c.Request().Context(), req.Symbol, r, dashboardOptions(req))
	if err != nil {
		return h.fail(c, "chart", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.BlobResponse(c, f.ContentType, "", f.Data)
}

func (h *StockHandler) StockNews(c echo.Context) error {
	req := &models.StockNewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.news.StockNews(c.Request().Context(), usecase.StockNewsParams{Symbol: req.Symbol, Company: req.Company, Max: req.Max})
	if err != nil {
		return h.fail(c, "stock news", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *StockHandler) MarketNews(c echo.Context) error {
	req := &models.MarketNewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.news.MarketNews(c.Request().Context(), models.Market(req.Market), req.Max))
}

func (h *StockHandler) Article(c echo.Context) error {
	req := &models.ArticleRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	art, err := h.news.Article(c.Request().Context(), req.URL)
	if err != nil {
		return h.fail(c, "article", err)
	}
	return xhttp.SuccessResponse(c, art)
}

func (h *StockHandler) Export(c echo.Context) error {
	req := &models.MarketDataRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	r, err := domrepo.ParseRange(req.Range)
	if err != nil {
		return h.fail(c, "export", err)
	}
	f, err := h.export.Workbook(c.Request().Context(), req.Symbol, r)
	if err != nil {
		return h.fail(c, "export", err)
	}
	return xhttp.BlobResponse(c, f.ContentType, f.Name, f.Data)
}

func (h *StockHandler) Popular(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.popular)
}

func (h *StockHandler) AdminLogs(c echo.Context) error {
	req := &models.AdminLogsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.logs == nil {
		return xhttp.SuccessResponse(c, []xlogger.AggregatedLogEntry{})
	}
	return xhttp.SuccessResponse(c, h.logs.Recent(req.Limit))
}

func dashboardOptions(req *models.DashboardRequest) models.DashboardOptions {
	return models.DashboardOptions{
		Chart:           models.ChartKind(req.Chart),
		MovingAverages:  req.MA,
		MAWindows:       xhttp.ParseIntList(req.MAWindows),
		Bollinger:       req.Bollinger,
		BollingerWindow: req.BBWindow,
		BollingerK:      req.BBK,
		Volume:          !req.HideVolume,
		News:            !req.SkipNews,
		NewsLimit:       req.NewsLimit,
	}
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
