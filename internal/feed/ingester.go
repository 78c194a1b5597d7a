package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/rickgao/gbce-market/internal/model"
)

// Recorder is the write side of the market.
type Recorder interface {
	RecordTrade(stock string, side model.Side, quantity, price decimal.Decimal) (model.Trade, error)
}

// Ingester decodes trade reports and records them. It runs a single
// goroutine, so reports are recorded in the order they were received.
type Ingester struct {
	recorder Recorder
	input    <-chan TimestampedMessage
	logger   *slog.Logger

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.RWMutex
	stats IngestStats
}

// NewIngester creates an Ingester reading from input.
func NewIngester(recorder Recorder, input <-chan TimestampedMessage, logger *slog.Logger) *Ingester {
	if logger == nil {
		logger = slog.Default()
	}

	return &Ingester{
		recorder: recorder,
		input:    input,
		logger:   logger,
	}
}

// Start begins ingesting messages.
func (in *Ingester) Start(ctx context.Context) error {
	in.ctx, in.cancel = context.WithCancel(ctx)

	in.wg.Add(1)
	go in.ingestLoop()

	in.logger.Info("trade ingester started")
	return nil
}

// Stop waits for the ingest goroutine to exit.
func (in *Ingester) Stop(ctx context.Context) error {
	if in.cancel != nil {
		in.cancel()
	}

	done := make(chan struct{})
	go func() {
		in.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		in.logger.Info("trade ingester stopped", "recorded", in.Stats().TradesRecorded)
	case <-ctx.Done():
		in.logger.Warn("trade ingester stop timed out")
	}
	return nil
}

// Stats returns current statistics.
func (in *Ingester) Stats() IngestStats {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.stats
}

func (in *Ingester) ingestLoop() {
	defer in.wg.Done()

	for {
		select {
		case <-in.ctx.Done():
			return
		case msg, ok := <-in.input:
			if !ok {
				in.logger.Info("input channel closed")
				return
			}
			in.handle(msg)
		}
	}
}

// handle records a single message.
func (in *Ingester) handle(msg TimestampedMessage) {
	in.count(func(s *IngestStats) { s.MessagesReceived++ })

	env, err := decodeEnvelope(msg.Data)
	if err != nil {
		in.logger.Warn("failed to decode feed message", "error", err)
		in.count(func(s *IngestStats) { s.ParseErrors++ })
		return
	}

	switch env.Type {
	case TypeTrade:
	case TypeSubscribed:
		in.logger.Info("feed subscription confirmed")
		return
	case TypeError:
		in.logger.Warn("feed server error", "msg", string(env.Msg))
		return
	default:
		in.logger.Debug("unknown feed message type", "type", env.Type)
		in.count(func(s *IngestStats) { s.UnknownMessages++ })
		return
	}

	report, err := parseTrade(env)
	if err != nil {
		in.logger.Warn("failed to parse trade report", "error", err)
		in.count(func(s *IngestStats) { s.ParseErrors++ })
		return
	}

	trade, err := in.record(report)
	if err != nil {
		in.logger.Warn("trade report rejected",
			"stock", report.Stock,
			"side", report.Side,
			"quantity", report.Quantity.String(),
			"price", report.Price.String(),
			"error", err,
		)
		in.count(func(s *IngestStats) { s.Rejected++ })
		return
	}

	in.count(func(s *IngestStats) { s.TradesRecorded++ })
	in.logger.Debug("trade ingested",
		"trade_id", trade.ID,
		"stock", trade.Stock,
		"latency", trade.Timestamp-msg.ReceivedAt.UnixMicro(),
	)
}

// record passes the report to the market. An unparseable side goes
// through as the zero Side so the market's validation order still holds.
func (in *Ingester) record(report TradeReport) (model.Trade, error) {
	side, sideErr := model.ParseSide(report.Side)
	trade, err := in.recorder.RecordTrade(report.Stock, side, report.Quantity, report.Price)
	if sideErr != nil && errors.Is(err, model.ErrInvalidSide) {
		return model.Trade{}, sideErr
	}
	return trade, err
}

func (in *Ingester) count(f func(*IngestStats)) {
	in.mu.Lock()
	f(&in.stats)
	in.mu.Unlock()
}
