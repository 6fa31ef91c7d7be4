package news

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dustin/go-humanize"
	"github.com/mmcdole/gofeed"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
	xhttp "StockLens/pkg/http"
	xlogger "StockLens/pkg/logger"
	"StockLens/pkg/util"
)

const (
	SummaryMaxLength = 200
	perQueryLimit    = 3
	symbolFeedLimit  = 2
	marketFeedLimit  = 3
	hkQueryLimit     = 2
	minParagraphLen  = 40
)

var corporateSuffix = regexp.MustCompile(`(?i)\b(Inc|Corp|Corporation|Ltd|Limited|Company|Co|Holdings|plc)\b\.?`)

// Option configures Service.
type Option func(*Service)

// Service fetches headlines from RSS feeds. Each feed is requested with its
// own deadline; a failing feed is reported in NewsResult.Errors.
type Service struct {
	http      *xhttp.Client
	articles  *xhttp.Client
	search    Source
	symbol    Source
	market    []Source
	hkQueries []string
	timeout   time.Duration
	metrics   domrepo.Metrics
	logger    *xlogger.Logger
	now       func() time.Time
}

// New creates a news service with the default feeds.
func New(httpClient *xhttp.Client, opts ...Option) *Service {
	s := &Service{
		http:      httpClient,
		search:    DefaultSearchSource,
		symbol:    DefaultSymbolSource,
		market:    DefaultMarketSources,
		hkQueries: DefaultHKQueries,
		timeout:   8 * time.Second,
		logger:    xlogger.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.articles == nil {
		s.articles = httpClient
	}
	return s
}

// WithSearchSource sets the {query} search feed.
func WithSearchSource(src Source) Option {
	return func(s *Service) {
		if src.URL != "" {
			s.search = src
		}
	}
}

// WithSymbolSource sets the per-ticker {symbol} feed.
func WithSymbolSource(src Source) Option {
	return func(s *Service) {
		if src.URL != "" {
			s.symbol = src
		}
	}
}

// WithMarketSources replaces the general market feeds.
func WithMarketSources(srcs []Source) Option {
	return func(s *Service) {
		if len(srcs) > 0 {
			s.market = srcs
		}
	}
}

// WithHKQueries sets the search queries used for Hong Kong market news.
func WithHKQueries(q []string) Option {
	return func(s *Service) {
		if len(q) > 0 {
			s.hkQueries = q
		}
	}
}

// WithTimeout sets the per-feed deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithMetrics(m domrepo.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *xlogger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithArticleClient sets the client used by ExtractArticle. Article links
// come from callers, so it is usually restricted to public addresses.
func WithArticleClient(c *xhttp.Client) Option {
	return func(s *Service) { s.articles = c }
}

// WithClock overrides time.Now, used for TimeAgo.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// fetch is one feed request of a plan.
type fetch struct {
	key    string
	source string
	url    string
	limit  int
}

type fetchResult struct {
	items []models.NewsItem
	err   error
}

// StockNews searches for the ticker and the company name and adds the
// ticker's own headline feed.
func (s *Service) StockNews(ctx context.Context, symbol, companyName string, max int) models.NewsResult {
	plan := []fetch{s.searchFetch(symbol, perQueryLimit)}
	if name := CleanCompanyName(companyName); name != "" && !strings.EqualFold(name, symbol) {
		plan = append(plan, s.searchFetch(name, perQueryLimit))
	}
	plan = append(plan, fetch{
		key:    s.symbol.Name + " " + symbol,
		source: s.symbol.Name,
		url:    s.symbol.Expand("", symbol),
		limit:  symbolFeedLimit,
	})
	return s.run(ctx, plan, max)
}

// MarketNews merges the general market feeds.
func (s *Service) MarketNews(ctx context.Context, max int) models.NewsResult {
	plan := make([]fetch, 0, len(s.market))
	for _, src := range s.market {
		plan = append(plan, fetch{key: src.Name, source: src.Name, url: src.Expand("", ""), limit: marketFeedLimit})
	}
	return s.run(ctx, plan, max)
}

// HKMarketNews searches the Hong Kong market queries.
func (s *Service) HKMarketNews(ctx context.Context, max int) models.NewsResult {
	plan := make([]fetch, 0, len(s.hkQueries))
	for _, q := range s.hkQueries {
		plan = append(plan, s.searchFetch(q, hkQueryLimit))
	}
	return s.run(ctx, plan, max)
}

func (s *Service) searchFetch(query string, limit int) fetch {
	return fetch{
		key:    fmt.Sprintf("%s %q", s.search.Name, query),
		source: s.search.Name,
		url:    s.search.Expand(query, ""),
		limit:  limit,
	}
}

// run fetches every feed of plan concurrently and merges the items in plan
// order, dropping repeated titles and stopping at max.
func (s *Service) run(ctx context.Context, plan []fetch, max int) models.NewsResult {
	results := make([]fetchResult, len(plan))
	var wg sync.WaitGroup
	for i, f := range plan {
		wg.Add(1)
		go func(i int, f fetch) {
			defer wg.Done()
			items, err := s.fetchFeed(ctx, f)
			results[i] = fetchResult{items: items, err: err}
		}(i, f)
	}
	wg.Wait()

	out := models.NewsResult{Items: []models.NewsItem{}}
	seen := map[string]bool{}
	for i, r := range results {
		if r.err != nil {
			if out.Errors == nil {
				out.Errors = map[string]string{}
			}
			out.Errors[plan[i].key] = r.err.Error()
			s.logger.Warn("news source failed",
				xlogger.String("source", plan[i].key),
				xlogger.Error(r.err),
			)
			if s.metrics != nil {
				s.metrics.RecordNewsSourceError(plan[i].source)
			}
			continue
		}
		for _, item := range r.items {
			if max > 0 && len(out.Items) >= max {
				break
			}
			title := strings.ToLower(strings.TrimSpace(item.Headline))
			if title == "" || seen[title] {
				continue
			}
			seen[title] = true
			out.Items = append(out.Items, item)
		}
	}
	return out
}

func (s *Service) fetchFeed(ctx context.Context, f fetch) ([]models.NewsItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := s.http.GetBytes(ctx, f.url, map[string]string{"Accept": "application/rss+xml, application/xml, text/xml"})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("timed out after %s", s.timeout)
		}
		return nil, err
	}
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	now := s.now()
	items := make([]models.NewsItem, 0, f.limit)
	for _, it := range feed.Items {
		if len(items) >= f.limit {
			break
		}
		item := models.NewsItem{
			Headline: strings.TrimSpace(it.Title),
			Source:   f.source,
			Link:     it.Link,
			Summary:  util.Truncate(StripHTML(it.Description), SummaryMaxLength, "..."),
		}
		if it.Content != "" {
			item.Body = StripHTML(it.Content)
		}
		switch {
		case it.PublishedParsed != nil:
			item.Published = it.PublishedParsed
		case it.UpdatedParsed != nil:
			item.Published = it.UpdatedParsed
		default:
			if t, ok := util.ParseTime(it.Published); ok {
				item.Published = &t
			}
		}
		item.TimeAgo = TimeAgo(item.Published, now)
		items = append(items, item)
	}
	return items, nil
}

// ExtractArticle downloads link and returns its readable paragraph text.
func (s *Service) ExtractArticle(ctx context.Context, link string) (*models.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := s.articles.GetBytes(ctx, link, map[string]string{"Accept": "text/html"})
	if errors.Is(err, xhttp.ErrBlockedAddress) {
		return nil, fmt.Errorf("fetch article: %w: %v", domrepo.ErrForbiddenURL, err)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch article: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse article: %w", err)
	}

	title := strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	if title == "" {
		title = util.CollapseSpaces(doc.Find("title").First().Text())
	}

	sel := doc.Find("article p")
	if sel.Length() == 0 {
		sel = doc.Find("p")
	}
	var paras []string
	sel.Each(func(_ int, p *goquery.Selection) {
		if t := util.CollapseSpaces(p.Text()); len([]rune(t)) >= minParagraphLen {
			paras = append(paras, t)
		}
	})
	if len(paras) == 0 {
		return nil, fmt.Errorf("no readable text at %s: %w", link, domrepo.ErrNoData)
	}
	return &models.Article{URL: link, Title: title, Text: strings.Join(paras, "\n\n")}, nil
}

// CleanCompanyName removes corporate suffixes such as "Inc." or "Ltd".
func CleanCompanyName(name string) string {
	name = corporateSuffix.ReplaceAllString(name, "")
	name = strings.NewReplacer(",", " ").Replace(name)
	return util.CollapseSpaces(name)
}

// StripHTML returns the text content of an HTML fragment.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return util.CollapseSpaces(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return util.CollapseSpaces(s)
	}
	return util.CollapseSpaces(doc.Text())
}

// TimeAgo renders published relative to now.
func TimeAgo(published *time.Time, now time.Time) string {
	if published == nil || published.IsZero() {
		return "Unknown"
	}
	if d := now.Sub(*published); d >= 0 && d < time.Minute {
		return "Just now"
	}
	return humanize.RelTime(*published, now, "ago", "from now")
}
