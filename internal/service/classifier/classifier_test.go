package classifier

import (
	"testing"

	"StockLens/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	c := New()

	tests := []struct {
		in         string
		normalized string
		market     models.Market
		currency   string
	}{
		{"700", "0700.HK", models.MarketHK, "HKD"},
		{"0700.HK", "0700.HK", models.MarketHK, "HKD"},
		{"0700.hk", "0700.HK", models.MarketHK, "HKD"},
		{"9988", "9988.HK", models.MarketHK, "HKD"},
		{"09988", "9988.HK", models.MarketHK, "HKD"},
		{"5", "0005.HK", models.MarketHK, "HKD"},
		{"0", "0000.HK", models.MarketHK, "HKD"},
		{"0005.HE", "0005.HK", models.MarketHK, "HKD"},
		{"aapl", "AAPL", models.MarketUS, "USD"},
		{"  tsla ", "TSLA", models.MarketUS, "USD"},
		{"BRK-B", "BRK-B", models.MarketUS, "USD"},
		{"12AB", "12AB", models.MarketUS, "USD"},
		{"", "", models.MarketUS, "USD"},
		{".HK", ".HK", models.MarketUS, "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := c.Classify(tt.in)
			assert.Equal(t, tt.normalized, got.Normalized)
			assert.Equal(t, tt.market, got.Market)
			assert.Equal(t, tt.currency, got.Currency)
			assert.Equal(t, tt.in, got.Raw)
		})
	}
}

func TestClassifyDisplayNames(t *testing.T) {
	c := New()
	assert.Equal(t, "Hong Kong", c.Classify("700").MarketName)
	assert.Equal(t, "HKEX", c.Classify("700").Exchange)
	assert.Equal(t, "United States", c.Classify("MSFT").MarketName)
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := New()
	for _, in := range []string{"700", "AAPL", "", "00001"} {
		assert.Equal(t, c.Classify(in), c.Classify(in))
	}
}

func TestClassifyOptions(t *testing.T) {
	c := New(WithPadWidth(5), WithHKSuffix(".hk"), WithStripSuffixes(".HK", ".XHKG"))
	assert.Equal(t, "00700.HK", c.Classify("700.XHKG").Normalized)

	c = New(WithPadWidth(0))
	assert.Equal(t, "0.HK", c.Classify("000").Normalized)
}
