package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/rickgao/gbce-market/internal/model"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	if c.Market.VWSPWindow <= 0 {
		return fmt.Errorf("market.vwsp_window must be > 0, got %v", c.Market.VWSPWindow)
	}

	if _, err := c.Listing(); err != nil {
		return err
	}

	if c.Feed.Enabled() {
		if err := c.Feed.validate("feed"); err != nil {
			return err
		}
	}

	return nil
}

// SlogLevel parses the configured level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q is not one of debug, info, warn, error", l.Level)
	}
	return level, nil
}

// Listing converts the configured stocks into model stocks, in file order.
func (c *Config) Listing() ([]model.Stock, error) {
	if len(c.Stocks) == 0 {
		return nil, errors.New("stocks: at least one stock is required")
	}

	seen := make(map[string]bool, len(c.Stocks))
	result := make([]model.Stock, 0, len(c.Stocks))
	for i, sc := range c.Stocks {
		s, err := sc.toModel()
		if err != nil {
			return nil, fmt.Errorf("stocks[%d]: %w", i, err)
		}
		if seen[s.Name()] {
			return nil, fmt.Errorf("stocks[%d]: %w: %q", i, model.ErrDuplicateStock, s.Name())
		}
		seen[s.Name()] = true
		result = append(result, s)
	}
	return result, nil
}

func (sc StockConfig) toModel() (model.Stock, error) {
	if err := checkFinite(sc.Name, "last_dividend", sc.LastDividend); err != nil {
		return model.Stock{}, err
	}
	if err := checkFinite(sc.Name, "par_value", sc.ParValue); err != nil {
		return model.Stock{}, err
	}
	if sc.FixedDividend != nil {
		if err := checkFinite(sc.Name, "fixed_dividend", *sc.FixedDividend); err != nil {
			return model.Stock{}, err
		}
	}

	last := decimal.NewFromFloat(sc.LastDividend)
	par := decimal.NewFromFloat(sc.ParValue)
	if sc.FixedDividend == nil {
		return model.NewStock(sc.Name, last, par)
	}
	return model.NewPreferredStock(sc.Name, last, par, decimal.NewFromFloat(*sc.FixedDividend))
}

// checkFinite rejects NaN and infinities, which YAML accepts as .nan and
// .inf but decimal cannot represent.
func checkFinite(stock, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s: %s %v is not a finite number", model.ErrInvalidInput, stock, field, v)
	}
	return nil
}

func (f *FeedConfig) validate(prefix string) error {
	u, err := url.Parse(f.URL)
	if err != nil {
		return fmt.Errorf("%s.url: %w", prefix, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("%s.url scheme must be ws or wss, got %q", prefix, u.Scheme)
	}
	if f.BufferSize < 1 {
		return fmt.Errorf("%s.buffer_size must be >= 1", prefix)
	}
	if f.PingTimeout <= 0 {
		return fmt.Errorf("%s.ping_timeout must be > 0", prefix)
	}
	if f.WriteTimeout <= 0 {
		return fmt.Errorf("%s.write_timeout must be > 0", prefix)
	}
	return nil
}
