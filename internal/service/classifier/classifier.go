package classifier

import (
	"strings"

	"StockLens/internal/domain/models"
)

// Option configures Classifier.
type Option func(*Classifier)

// Classifier maps raw user input to a market, exchange and currency.
// It is safe for concurrent use and never fails.
type Classifier struct {
	stripSuffixes []string
	hkSuffix      string
	padWidth      int
}

// New creates a classifier with Hong Kong defaults: numeric codes padded to
// four digits and suffixed with ".HK".
func New(opts ...Option) *Classifier {
	c := &Classifier{
		stripSuffixes: []string{".HK", ".HE"},
		hkSuffix:      ".HK",
		padWidth:      4,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.padWidth < 1 {
		c.padWidth = 1
	}
	return c
}

// WithStripSuffixes sets the exchange suffixes removed before matching.
func WithStripSuffixes(suffixes ...string) Option {
	return func(c *Classifier) {
		c.stripSuffixes = make([]string, 0, len(suffixes))
		for _, s := range suffixes {
			if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
				c.stripSuffixes = append(c.stripSuffixes, s)
			}
		}
	}
}

// WithHKSuffix sets the suffix appended to normalized Hong Kong codes.
func WithHKSuffix(suffix string) Option {
	return func(c *Classifier) {
		c.hkSuffix = strings.ToUpper(strings.TrimSpace(suffix))
	}
}

// WithPadWidth sets the canonical Hong Kong code width.
func WithPadWidth(width int) Option {
	return func(c *Classifier) {
		c.padWidth = width
	}
}

// Classify returns the ticker classification for raw.
func (c *Classifier) Classify(raw string) models.TickerSymbol {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	code := c.stripSuffix(cleaned)

	if isDigits(code) {
		return models.TickerSymbol{
			Raw:        raw,
			Normalized: c.padCode(code) + c.hkSuffix,
			Market:     models.MarketHK,
			MarketName: models.MarketHK.DisplayName(),
			Exchange:   "HKEX",
			Currency:   "HKD",
		}
	}

	return models.TickerSymbol{
		Raw:        raw,
		Normalized: cleaned,
		Market:     models.MarketUS,
		MarketName: models.MarketUS.DisplayName(),
		Exchange:   "NASDAQ/NYSE",
		Currency:   "USD",
	}
}

func (c *Classifier) stripSuffix(s string) string {
	for _, suffix := range c.stripSuffixes {
		if strings.HasSuffix(s, suffix) {
			return strings.TrimSuffix(s, suffix)
		}
	}
	return s
}

func (c *Classifier) padCode(code string) string {
	trimmed := strings.TrimLeft(code, "0")
	if len(trimmed) >= c.padWidth {
		return trimmed
	}
	return strings.Repeat("0", c.padWidth-len(trimmed)) + trimmed
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
