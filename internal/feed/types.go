package feed

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Errors
var (
	ErrNotConnected    = errors.New("not connected")
	ErrStaleConnection = errors.New("connection stale (no ping)")
	ErrAlreadyClosed   = errors.New("already closed")
	ErrUnknownType     = errors.New("unknown message type")
)

// Message types on the wire.
const (
	TypeTrade      = "trade"
	TypeSubscribed = "subscribed"
	TypeError      = "error"
)

// TimestampedMessage wraps raw message data with receive timestamp.
type TimestampedMessage struct {
	Data       []byte    // Raw message bytes from WebSocket
	ReceivedAt time.Time // Local timestamp when ReadMessage() returned
}

// Command is a WebSocket command sent to the feed server.
type Command struct {
	ID     int64       `json:"id"`
	Cmd    string      `json:"cmd"`
	Params interface{} `json:"params"`
}

// SubscribeParams are parameters for a subscribe command.
type SubscribeParams struct {
	Channels []string `json:"channels"`
	Stocks   []string `json:"stocks,omitempty"`
}

// Envelope is the outer shape of every server message.
type Envelope struct {
	Type string          `json:"type"` // "trade", "subscribed", "error"
	Msg  json.RawMessage `json:"msg"`
}

// TradeReport is the payload of a "trade" message. Quantity and price
// accept JSON numbers or decimal strings.
type TradeReport struct {
	Stock    string          `json:"stock"`
	Side     string          `json:"side"` // "buy" or "sell"
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// ClientConfig configures a WebSocket client.
type ClientConfig struct {
	URL          string        // WebSocket URL (e.g., ws://localhost:9000/trades)
	APIKey       string        // Sent as a bearer token when set
	PingTimeout  time.Duration // Max time without ping before considering connection stale
	WriteTimeout time.Duration // Write deadline for sends
	BufferSize   int           // Message channel buffer size
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		PingTimeout:  60 * time.Second,
		WriteTimeout: 5 * time.Second,
		BufferSize:   1000,
	}
}

// ManagerConfig configures the feed Manager.
type ManagerConfig struct {
	Client            ClientConfig
	Stocks            []string      // Stocks to subscribe to; empty means all
	ReconnectBaseWait time.Duration // Base wait time for reconnection
	ReconnectMaxWait  time.Duration // Max wait time for reconnection
	MessageBufferSize int           // Buffer size for output message channel
}

// DefaultManagerConfig returns sensible defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		Client:            DefaultClientConfig(),
		ReconnectBaseWait: 1 * time.Second,
		ReconnectMaxWait:  60 * time.Second,
		MessageBufferSize: 10000,
	}
}

// IngestStats contains ingester runtime statistics.
type IngestStats struct {
	MessagesReceived int64
	TradesRecorded   int64
	ParseErrors      int64
	Rejected         int64 // reports the market refused
	UnknownMessages  int64
}

// decodeEnvelope extracts the message type and payload.
func decodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// ParseTradeReport decodes a "trade" message. Other message types
// return ErrUnknownType.
func ParseTradeReport(data []byte) (TradeReport, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return TradeReport{}, err
	}
	return parseTrade(env)
}

// parseTrade decodes the payload of an already decoded envelope.
func parseTrade(env Envelope) (TradeReport, error) {
	if env.Type != TypeTrade {
		return TradeReport{}, ErrUnknownType
	}

	var report TradeReport
	if err := json.Unmarshal(env.Msg, &report); err != nil {
		return TradeReport{}, err
	}
	return report, nil
}
