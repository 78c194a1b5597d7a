// Package feed ingests reported trades from a WebSocket source.
//
// The feed:
//   - Keeps one WebSocket connection open, reconnecting with exponential backoff
//   - Subscribes to trade reports for the listed stocks
//   - Decodes each report and records it through a single Ingester goroutine,
//     so the market sees exactly one writer
package feed
