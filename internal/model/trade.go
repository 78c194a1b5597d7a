package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Trade is a reported buy or sell against a listed stock. Trades are
// created by the market when recorded and handed out by value.
type Trade struct {
	ID        uint64          // Sequence number, strictly increasing per market
	Stock     string          // Stock name
	Side      Side            // BUY or SELL
	Quantity  decimal.Decimal // Shares traded (> 0)
	Price     decimal.Decimal // Price per share in pennies (>= 0)
	Timestamp int64           // Record time (µs since epoch)
}

// TotalAmount returns Price * Quantity.
func (t Trade) TotalAmount() decimal.Decimal {
	return t.Price.Mul(t.Quantity)
}

func (t Trade) String() string {
	return fmt.Sprintf("trade(id=%d, stock=%s, side=%s, quantity=%s, price=%s, timestamp=%d)",
		t.ID, t.Stock, t.Side, t.Quantity, t.Price, t.Timestamp)
}
