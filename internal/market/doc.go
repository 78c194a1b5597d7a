// Package market implements the exchange ledger.
//
// The Market:
//   - Holds the registry of listed stocks, keyed by name
//   - Records reported trades into an append-only ledger
//   - Answers per-stock trade queries over half-open time windows
//   - Derives the volume-weighted stock price and the all-share index
package market
