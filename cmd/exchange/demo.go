package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/gbce-market/internal/clock"
	"github.com/rickgao/gbce-market/internal/market"
	"github.com/rickgao/gbce-market/internal/model"
	"github.com/rickgao/gbce-market/internal/sequence"
)

// demoTrade is one scripted trade in the demo session.
type demoTrade struct {
	stock    string
	side     model.Side
	quantity int64
	price    int64
}

var demoTrades = []demoTrade{
	{"TEA", model.SideBuy, 100, 99},
	{"TEA", model.SideSell, 100, 102},
	{"POP", model.SideBuy, 200, 100},
}

// runDemo lists three stocks, quotes them at 10 pence, records a short
// session of trades and prints the resulting metrics to w. The clock is
// advanced one millisecond per trade so every trade lands inside the
// default window.
func runDemo(w io.Writer, clk *clock.Manual, logger *slog.Logger) error {
	m := market.New(market.DefaultConfig(),
		market.WithClock(clk),
		market.WithSequence(sequence.New(0)),
		market.WithLogger(logger),
	)

	tea, err := model.NewStock("TEA", decimal.Zero, decimal.NewFromInt(100))
	if err != nil {
		return err
	}
	pop, err := model.NewStock("POP", decimal.NewFromInt(8), decimal.NewFromInt(100))
	if err != nil {
		return err
	}
	gin, err := model.NewPreferredStock("GIN", decimal.NewFromInt(8), decimal.NewFromInt(100), decimal.RequireFromString("0.02"))
	if err != nil {
		return err
	}
	for _, s := range []model.Stock{tea, pop, gin} {
		if err := m.AddStock(s); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "market stocks:")
	for _, s := range m.ListStocks() {
		fmt.Fprintln(w, s)
	}

	quote := decimal.NewFromInt(10)
	for _, s := range []model.Stock{tea, pop, gin} {
		yield, err := s.DividendYield(quote)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "dividend yield for %s at %s pence: %s\n", s.Name(), quote, yield)
	}
	for _, s := range []model.Stock{tea, pop, gin} {
		ratio, ok, err := s.PERatio(quote)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "P/E ratio for %s at %s pence: %s\n", s.Name(), quote, orNone(ratio, ok))
	}

	for _, dt := range demoTrades {
		if _, err := m.RecordTrade(dt.stock, dt.side, decimal.NewFromInt(dt.quantity), decimal.NewFromInt(dt.price)); err != nil {
			return err
		}
		clk.Advance(time.Millisecond)
	}

	for _, s := range []model.Stock{tea, pop, gin} {
		trades, err := m.Trades(s.Name(), nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s trades:\n", s.Name())
		for _, t := range trades {
			fmt.Fprintln(w, t)
		}
	}

	for _, s := range []model.Stock{tea, pop, gin} {
		vwsp, ok, err := m.VWSP(s.Name(), nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "VWSP for %s: %s\n", s.Name(), orNone(vwsp, ok))
	}

	if index, ok := m.AllShareIndex(nil); ok {
		fmt.Fprintf(w, "GBCE ASI: %v\n", index)
	} else {
		fmt.Fprintln(w, "GBCE ASI: none")
	}
	return nil
}

// demoLogger keeps market logs out of the demo report: warnings and
// errors only, written to w.
func demoLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

func orNone(d decimal.Decimal, ok bool) string {
	if !ok {
		return "none"
	}
	return d.String()
}
