package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Manager keeps a feed connection alive and forwards every message it
// receives to a single output channel that outlives reconnects.
type Manager struct {
	cfg    ManagerConfig
	logger *slog.Logger

	// newClient is swapped out in tests.
	newClient func(ClientConfig, *slog.Logger) Client

	out chan TimestampedMessage

	mu       sync.Mutex
	client   Client
	cmdID    int64
	connects int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager creates a feed Manager. Call Start to connect.
func NewManager(cfg ManagerConfig, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MessageBufferSize < 1 {
		cfg.MessageBufferSize = DefaultManagerConfig().MessageBufferSize
	}
	if cfg.ReconnectBaseWait <= 0 {
		cfg.ReconnectBaseWait = DefaultManagerConfig().ReconnectBaseWait
	}
	if cfg.ReconnectMaxWait < cfg.ReconnectBaseWait {
		cfg.ReconnectMaxWait = cfg.ReconnectBaseWait
	}

	return &Manager{
		cfg:       cfg,
		logger:    logger,
		newClient: NewClient,
		out:       make(chan TimestampedMessage, cfg.MessageBufferSize),
	}
}

// Messages returns the channel of raw feed messages.
func (m *Manager) Messages() <-chan TimestampedMessage {
	return m.out
}

// Start connects and subscribes. The first connection must succeed;
// later disconnects are retried in the background.
func (m *Manager) Start(ctx context.Context) error {
	m.ctx, m.cancel = context.WithCancel(ctx)

	client, err := m.connect(m.ctx)
	if err != nil {
		m.cancel()
		return err
	}

	m.wg.Add(1)
	go m.readLoop(client)

	m.logger.Info("feed started", "url", m.cfg.Client.URL, "stocks", len(m.cfg.Stocks))
	return nil
}

// Stop closes the connection and waits for background work to finish.
func (m *Manager) Stop(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}

	m.mu.Lock()
	if m.client != nil {
		m.client.Close()
	}
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("feed stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Connects returns how many connections have been established.
func (m *Manager) Connects() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connects
}

// connect dials a new client and subscribes to trades.
func (m *Manager) connect(ctx context.Context) (Client, error) {
	client := m.newClient(m.cfg.Client, m.logger)
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.client = client
	m.cmdID++
	cmd := Command{
		ID:  m.cmdID,
		Cmd: "subscribe",
		Params: SubscribeParams{
			Channels: []string{TypeTrade},
			Stocks:   m.cfg.Stocks,
		},
	}
	m.connects++
	m.mu.Unlock()

	data, err := json.Marshal(cmd)
	if err != nil {
		client.Close()
		return nil, err
	}
	if err := client.Send(data); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// readLoop forwards messages from client until it fails, then reconnects.
func (m *Manager) readLoop(client Client) {
	defer m.wg.Done()
	defer func() { client.Close() }()

	for {
		select {
		case <-m.ctx.Done():
			return

		case err := <-client.Errors():
			m.logger.Warn("feed connection error", "error", err)
			client.Close()

			next, ok := m.reconnect()
			if !ok {
				return
			}
			client = next

		case msg, ok := <-client.Messages():
			if !ok {
				return
			}
			select {
			case m.out <- msg:
			case <-m.ctx.Done():
				return
			}
		}
	}
}

// reconnect retries with exponential backoff until it succeeds or the
// manager is stopped.
func (m *Manager) reconnect() (Client, bool) {
	wait := m.cfg.ReconnectBaseWait

	for {
		select {
		case <-m.ctx.Done():
			return nil, false
		case <-time.After(wait):
		}

		m.logger.Info("attempting feed reconnection")

		client, err := m.connect(m.ctx)
		if err != nil {
			// Exponential backoff
			wait *= 2
			if wait > m.cfg.ReconnectMaxWait {
				wait = m.cfg.ReconnectMaxWait
			}

			m.logger.Warn("feed reconnection failed", "error", err, "retry_in", wait)
			continue
		}

		m.logger.Info("feed reconnected")
		return client, true
	}
}
