package config

import (
	"time"

	"github.com/google/uuid"
)

// Default values for optional configuration fields.
const (
	DefaultLogLevel       = "info"
	DefaultVWSPWindow     = 5 * time.Minute
	DefaultReportInterval = 1 * time.Minute
	DefaultPingTimeout    = 60 * time.Second
	DefaultWriteTimeout   = 5 * time.Second
	DefaultFeedBufferSize = 1000
)

// DefaultStocks is the sample GBCE listing used when none is configured.
func DefaultStocks() []StockConfig {
	gin := 0.02
	return []StockConfig{
		{Name: "TEA", LastDividend: 0, ParValue: 100},
		{Name: "POP", LastDividend: 8, ParValue: 100},
		{Name: "ALE", LastDividend: 23, ParValue: 60},
		{Name: "GIN", LastDividend: 8, ParValue: 100, FixedDividend: &gin},
		{Name: "JOE", LastDividend: 13, ParValue: 250},
	}
}

func (c *Config) applyDefaults() {
	if c.Instance.ID == "" {
		c.Instance.ID = uuid.NewString()
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}

	// Market defaults
	if c.Market.VWSPWindow == 0 {
		c.Market.VWSPWindow = DefaultVWSPWindow
	}
	if c.Market.ReportInterval == 0 {
		c.Market.ReportInterval = DefaultReportInterval
	}

	if len(c.Stocks) == 0 {
		c.Stocks = DefaultStocks()
	}

	// Feed defaults
	if c.Feed.PingTimeout == 0 {
		c.Feed.PingTimeout = DefaultPingTimeout
	}
	if c.Feed.WriteTimeout == 0 {
		c.Feed.WriteTimeout = DefaultWriteTimeout
	}
	if c.Feed.BufferSize == 0 {
		c.Feed.BufferSize = DefaultFeedBufferSize
	}
}
