package market

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rickgao/gbce-market/internal/model"
	"github.com/rickgao/gbce-market/internal/stats"
)

// StockPrice is the volume-weighted price of one stock over a window.
type StockPrice struct {
	Stock  string
	VWSP   decimal.Decimal
	Volume decimal.Decimal // total quantity traded
	Trades int
}

// Summary holds every metric for one window, computed from one ledger
// snapshot.
type Summary struct {
	Period   model.Period
	Prices   []StockPrice // stocks with at least one trade, by name
	Index    float64      // all-share index; valid only if HasIndex
	HasIndex bool
}

// VWSP returns the volume-weighted stock price for stock over period:
// sum(price * quantity) / sum(quantity). A nil period means the last
// Window() up to now. ok is false when no trades fall in the window.
func (m *Market) VWSP(stock string, period *model.Period) (vwsp decimal.Decimal, ok bool, err error) {
	if _, listed := m.state.getStock(stock); !listed {
		return decimal.Zero, false, fmt.Errorf("%w: %q", model.ErrUnknownStock, stock)
	}

	p := m.resolvePeriod(period)
	acc := accumulate(m.state.tradesView(), p)[stock]
	if acc == nil {
		return decimal.Zero, false, nil
	}
	return acc.price(), true, nil
}

// AllShareIndex returns the geometric mean of the VWSP of every listed
// stock that traded in period. Stocks without trades are left out, not
// counted as zero. ok is false when no stock traded.
func (m *Market) AllShareIndex(period *model.Period) (float64, bool) {
	s := m.Summary(period)
	return s.Index, s.HasIndex
}

// Summary computes the VWSP of every traded stock and the all-share
// index. "Now" is read once, so every stock is measured over the same
// window.
func (m *Market) Summary(period *model.Period) Summary {
	snap := m.state.snapshot()
	p := m.resolvePeriod(period)
	volumes := accumulate(snap.trades, p)

	s := Summary{Period: p}
	values := make([]float64, 0, len(snap.stocks))
	for _, st := range snap.stocks {
		acc := volumes[st.Name()]
		if acc == nil {
			continue
		}
		price := acc.price()
		s.Prices = append(s.Prices, StockPrice{
			Stock:  st.Name(),
			VWSP:   price,
			Volume: acc.quantity,
			Trades: acc.count,
		})
		values = append(values, price.InexactFloat64())
	}

	s.Index, s.HasIndex = stats.GeometricMean(values)
	return s
}

// resolvePeriod returns period, or the default window ending now.
func (m *Market) resolvePeriod(period *model.Period) model.Period {
	if period != nil {
		return *period
	}
	return model.LastWindow(m.clock.NowMicros(), m.cfg.Window)
}

// volume accumulates the VWSP terms for one stock.
type volume struct {
	amount   decimal.Decimal // sum(price * quantity)
	quantity decimal.Decimal // sum(quantity)
	count    int
}

func (v *volume) price() decimal.Decimal {
	return v.amount.Div(v.quantity)
}

// accumulate sums trades inside p, per stock, in a single pass.
func accumulate(trades []model.Trade, p model.Period) map[string]*volume {
	result := make(map[string]*volume)
	for _, t := range trades {
		if !p.Contains(t.Timestamp) {
			continue
		}
		v := result[t.Stock]
		if v == nil {
			v = &volume{}
			result[t.Stock] = v
		}
		v.amount = v.amount.Add(t.TotalAmount())
		v.quantity = v.quantity.Add(t.Quantity)
		v.count++
	}
	return result
}
