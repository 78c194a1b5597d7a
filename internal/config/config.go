package config

import "time"

// Config is the root configuration for an exchange process.
type Config struct {
	Instance InstanceConfig `yaml:"instance"`
	Log      LogConfig      `yaml:"log"`
	Market   MarketConfig   `yaml:"market"`
	Stocks   []StockConfig  `yaml:"stocks" ignored:"true"`
	Feed     FeedConfig     `yaml:"feed"`
}

// InstanceConfig identifies this process in logs.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// MarketConfig holds ledger and metric settings.
type MarketConfig struct {
	VWSPWindow     time.Duration `yaml:"vwsp_window" split_words:"true"`
	ReportInterval time.Duration `yaml:"report_interval" split_words:"true"` // < 0 disables
}

// StockConfig describes one listed stock. Amounts are in pennies.
type StockConfig struct {
	Name          string   `yaml:"name"`
	LastDividend  float64  `yaml:"last_dividend"`
	ParValue      float64  `yaml:"par_value"`
	FixedDividend *float64 `yaml:"fixed_dividend"` // fraction of par, nil for common stock
}

// FeedConfig holds the trade-report WebSocket settings. An empty URL
// disables the feed.
type FeedConfig struct {
	URL          string        `yaml:"url"`
	APIKey       string        `yaml:"api_key" split_words:"true"`
	PingTimeout  time.Duration `yaml:"ping_timeout" split_words:"true"`
	WriteTimeout time.Duration `yaml:"write_timeout" split_words:"true"`
	BufferSize   int           `yaml:"buffer_size" split_words:"true"`
}

// Enabled reports whether a feed URL is configured.
func (f FeedConfig) Enabled() bool {
	return f.URL != ""
}
