package market

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/gbce-market/internal/clock"
	"github.com/rickgao/gbce-market/internal/model"
	"github.com/rickgao/gbce-market/internal/sequence"
)

// DefaultWindow is the look-back used by VWSP and AllShareIndex when no
// period is given.
const DefaultWindow = 5 * time.Minute

// Config holds Market configuration.
type Config struct {
	// Window is the default look-back for metrics.
	Window time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Window: DefaultWindow,
	}
}

// Option configures a Market.
type Option func(*Market)

// WithClock sets the time source used to stamp trades and to resolve the
// default metric window.
func WithClock(c clock.Clock) Option {
	return func(m *Market) { m.clock = c }
}

// WithSequence sets the trade id generator.
func WithSequence(g *sequence.Generator) Option {
	return func(m *Market) { m.seq = g }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Market) { m.logger = logger }
}

// Market is an in-memory exchange: a stock registry plus a trade ledger.
// It is safe for concurrent use. Trade recording is serialized; reads
// work on a snapshot taken when they start.
type Market struct {
	cfg    Config
	clock  clock.Clock
	seq    *sequence.Generator
	logger *slog.Logger

	state *ledgerState
}

// New creates an empty Market. Without options it uses the system clock
// and a fresh sequence starting at 0.
func New(cfg Config, opts ...Option) *Market {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}

	m := &Market{
		cfg:   cfg,
		state: newState(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.clock == nil {
		m.clock = clock.System{}
	}
	if m.seq == nil {
		m.seq = sequence.New(0)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// AddStock lists a stock. Names are unique and the stock must pass
// model.Stock.Validate.
func (m *Market) AddStock(stock model.Stock) error {
	if err := stock.Validate(); err != nil {
		return err
	}
	name := stock.Name()

	m.state.mu.Lock()
	if m.state.hasStockLocked(name) {
		m.state.mu.Unlock()
		return fmt.Errorf("%w: %q", model.ErrDuplicateStock, name)
	}
	m.state.stocks[name] = stock
	m.state.mu.Unlock()

	m.logger.Info("stock listed", "stock", name, "dividend", stock.Dividend().String())
	return nil
}

// GetStock returns a listed stock by name.
func (m *Market) GetStock(name string) (model.Stock, bool) {
	return m.state.getStock(name)
}

// ListStocks returns all listed stocks ordered by name.
func (m *Market) ListStocks() []model.Stock {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	return m.state.sortedStocksLocked()
}

// RecordTrade validates a reported trade, stamps it with the next id and
// the current time, and appends it to the ledger. Checks run in order:
// listed stock, side, quantity > 0, price >= 0. On error the ledger is
// unchanged.
func (m *Market) RecordTrade(stock string, side model.Side, quantity, price decimal.Decimal) (model.Trade, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	if !m.state.hasStockLocked(stock) {
		return model.Trade{}, fmt.Errorf("%w: %q", model.ErrUnknownStock, stock)
	}
	if !side.Valid() {
		return model.Trade{}, fmt.Errorf("%w: %s", model.ErrInvalidSide, side)
	}
	if !quantity.IsPositive() {
		return model.Trade{}, fmt.Errorf("%w: %s", model.ErrInvalidQuantity, quantity)
	}
	if price.IsNegative() {
		return model.Trade{}, fmt.Errorf("%w: %s", model.ErrInvalidPrice, price)
	}

	t := model.Trade{
		ID:        m.seq.Next(),
		Stock:     stock,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Timestamp: m.clock.NowMicros(),
	}
	m.state.trades = append(m.state.trades, t)

	m.logger.Debug("trade recorded",
		"trade_id", t.ID,
		"stock", t.Stock,
		"side", t.Side.String(),
		"quantity", t.Quantity.String(),
		"price", t.Price.String(),
		"ts", t.Timestamp,
	)
	return t, nil
}

// Trades returns the trades for stock in ledger order. A nil period
// means all trades; otherwise only trades with Start <= ts < End.
func (m *Market) Trades(stock string, period *model.Period) ([]model.Trade, error) {
	if _, ok := m.state.getStock(stock); !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownStock, stock)
	}
	return filterTrades(m.state.tradesView(), stock, period), nil
}

// TradeCount returns the number of trades in the ledger.
func (m *Market) TradeCount() int {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	return len(m.state.trades)
}

// Window returns the default metric look-back.
func (m *Market) Window() time.Duration {
	return m.cfg.Window
}

func filterTrades(trades []model.Trade, stock string, period *model.Period) []model.Trade {
	result := make([]model.Trade, 0)
	for _, t := range trades {
		if t.Stock != stock {
			continue
		}
		if period != nil && !period.Contains(t.Timestamp) {
			continue
		}
		result = append(result, t)
	}
	return result
}
