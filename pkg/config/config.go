package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SymbolEntry is a sample ticker listed by /api/symbols/popular.
type SymbolEntry struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

// FeedSource is a named news feed URL template.
type FeedSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		CORSOrigins     []string      `yaml:"cors_origins"`
		RatePerSec      float64       `yaml:"rate_per_sec"`
		RateBurst       int           `yaml:"rate_burst"`
		SlowThreshold   time.Duration `yaml:"slow_threshold"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Log struct {
		Level     string `yaml:"level"`
		Format    string `yaml:"format"`
		Output    string `yaml:"output"`
		Aggregate struct {
			Enabled   bool          `yaml:"enabled"`
			Interval  time.Duration `yaml:"interval"`
			Threshold int           `yaml:"threshold"`
			Capacity  int           `yaml:"capacity"`
		} `yaml:"aggregate"`
	} `yaml:"log"`
	Provider struct {
		BaseURL      string        `yaml:"base_url"`
		Timeout      time.Duration `yaml:"timeout"`
		RatePerSec   float64       `yaml:"rate_per_sec"`
		Burst        int           `yaml:"burst"`
		UserAgent    string        `yaml:"user_agent"`
		StatusSymbol string        `yaml:"status_symbol"`
	} `yaml:"provider"`
	Cache struct {
		TTL        time.Duration `yaml:"ttl"`
		MaxEntries      int           `yaml:"max_entries"`
		CleanupInterval time.Duration `yaml:"cleanup_interval"`
		Redis           struct {
			Enabled      bool          `yaml:"enabled"`
			Addr         string        `yaml:"addr"`
			Password     string        `yaml:"password"`
			DB           int           `yaml:"db"`
			Prefix       string        `yaml:"prefix"`
			PoolSize     int           `yaml:"pool_size"`
			MinIdleConns int           `yaml:"min_idle_conns"`
			PoolTimeout  time.Duration `yaml:"pool_timeout"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Classifier struct {
		StripSuffixes []string `yaml:"strip_suffixes"`
		HKSuffix      string   `yaml:"hk_suffix"`
		PadWidth      int      `yaml:"pad_width"`
	} `yaml:"classifier"`
	News struct {
		Timeout   time.Duration `yaml:"timeout"`
		Search    FeedSource    `yaml:"search"`
		Symbol    FeedSource    `yaml:"symbol"`
		Market    []FeedSource  `yaml:"market"`
		HKQueries []string      `yaml:"hk_queries"`
	} `yaml:"news"`
	Chart struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"chart"`
	Symbols struct {
		US []SymbolEntry `yaml:"us"`
		HK []SymbolEntry `yaml:"hk"`
	} `yaml:"symbols"`
}

var (
	defaultUSSymbols = []SymbolEntry{
		{"AAPL", "Apple Inc."}, {"GOOGL", "Alphabet Inc."}, {"MSFT", "Microsoft Corp."}, {"TSLA", "Tesla Inc."},
		{"AMZN", "Amazon.com Inc."}, {"META", "Meta Platforms"}, {"NVDA", "NVIDIA Corp."}, {"NFLX", "Netflix Inc."},
	}
	defaultHKSymbols = []SymbolEntry{
		{"0700", "Tencent"}, {"0005", "HSBC"}, {"0001", "CK Hutchison"}, {"0941", "China Mobile"},
		{"0175", "Geely Auto"}, {"0027", "Galaxy Ent"}, {"0883", "CNOOC"}, {"2318", "Ping An"},
	}
)

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML, applies defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads .env (when present), the YAML file and then applies
// environment overrides.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := c.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("STOCKLENS_ENV"); v != "" {
		c.Environment = v
	}
	if v := getenv("PROVIDER_BASE_URL"); v != "" {
		c.Provider.BaseURL = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}
	if v := getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		c.Cache.TTL = d
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("HTTP_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HTTP_PORT: %w", err)
		}
		c.Server.Port = p
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Server.RateBurst == 0 {
		c.Server.RateBurst = 20
	}
	if c.Server.SlowThreshold == 0 {
		c.Server.SlowThreshold = 2 * time.Second
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Log.Aggregate.Interval == 0 {
		c.Log.Aggregate.Interval = 30 * time.Second
	}
	if c.Log.Aggregate.Threshold == 0 {
		c.Log.Aggregate.Threshold = 100
	}
	if c.Log.Aggregate.Capacity == 0 {
		c.Log.Aggregate.Capacity = 500
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = 10 * time.Second
	}
	if c.Provider.Burst == 0 {
		c.Provider.Burst = 5
	}
	if c.Provider.StatusSymbol == "" {
		c.Provider.StatusSymbol = "SPY"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = 1000
	}
	if c.Cache.CleanupInterval == 0 {
		c.Cache.CleanupInterval = time.Minute
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "stocklens"
	}
	if c.Cache.Redis.PoolSize == 0 {
		c.Cache.Redis.PoolSize = 10
	}
	if c.Cache.Redis.MinIdleConns == 0 {
		c.Cache.Redis.MinIdleConns = 2
	}
	if c.Cache.Redis.PoolTimeout == 0 {
		c.Cache.Redis.PoolTimeout = 30 * time.Second
	}
	if len(c.Classifier.StripSuffixes) == 0 {
		c.Classifier.StripSuffixes = []string{".HK", ".HE"}
	}
	if c.Classifier.HKSuffix == "" {
		c.Classifier.HKSuffix = ".HK"
	}
	if c.Classifier.PadWidth == 0 {
		c.Classifier.PadWidth = 4
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 8 * time.Second
	}
	if c.Chart.Width == 0 {
		c.Chart.Width = 1000
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = 500
	}
	if len(c.Symbols.US) == 0 {
		c.Symbols.US = defaultUSSymbols
	}
	if len(c.Symbols.HK) == 0 {
		c.Symbols.HK = defaultHKSymbols
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be 'json' or 'console', got '%s'", c.Log.Format)
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("provider.timeout must be positive")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	if c.News.Timeout <= 0 {
		return fmt.Errorf("news.timeout must be positive")
	}
	if c.Classifier.PadWidth < 1 {
		return fmt.Errorf("classifier.pad_width must be at least 1")
	}
	if c.Cache.Redis.Enabled && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required when redis is enabled")
	}
	return nil
}
