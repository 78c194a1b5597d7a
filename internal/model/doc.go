// Package model defines the listing and trade types of the exchange.
//
// Conventions:
//   - Amounts: shopspring/decimal values in pennies (prices, dividends, par values)
//   - Quantities: decimal share counts, strictly positive
//   - Timestamps: int64 microseconds since Unix epoch
//   - IDs: string names for stocks, uint64 sequence numbers for trades
package model
