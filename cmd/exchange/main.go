package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rickgao/gbce-market/internal/clock"
	"github.com/rickgao/gbce-market/internal/config"
	"github.com/rickgao/gbce-market/internal/feed"
	"github.com/rickgao/gbce-market/internal/market"
	"github.com/rickgao/gbce-market/internal/sequence"
	"github.com/rickgao/gbce-market/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	demo := flag.Bool("demo", false, "run the example trading session and exit")
	flag.Parse()

	// A missing .env file is fine
	_ = godotenv.Load()

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With("instance_id", cfg.Instance.ID)
	slog.SetDefault(logger)

	if *demo {
		if err := runDemo(os.Stdout, clock.NewManual(time.Now().UnixMicro()), demoLogger(os.Stderr)); err != nil {
			logger.Error("demo failed", "error", err)
			os.Exit(1)
		}
		return
	}

	logger.Info("starting exchange",
		"version", version.String(),
		"config", *configPath,
	)

	listing, err := cfg.Listing()
	if err != nil {
		logger.Error("invalid stock listing", "error", err)
		os.Exit(1)
	}

	mkt := market.New(market.Config{Window: cfg.Market.VWSPWindow},
		market.WithClock(clock.System{}),
		market.WithSequence(sequence.New(0)),
		market.WithLogger(logger),
	)
	for _, s := range listing {
		if err := mkt.AddStock(s); err != nil {
			logger.Error("failed to list stock", "stock", s.Name(), "error", err)
			os.Exit(1)
		}
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	var ingester *feed.Ingester
	if cfg.Feed.Enabled() {
		mgr := feed.NewManager(feedConfig(cfg, mkt), logger)
		if err := mgr.Start(ctx); err != nil {
			logger.Error("failed to start feed", "url", cfg.Feed.URL, "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			mgr.Stop(shutdownCtx)
		}()

		ingester = feed.NewIngester(mkt, mgr.Messages(), logger)
		if err := ingester.Start(ctx); err != nil {
			logger.Error("failed to start ingester", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			ingester.Stop(shutdownCtx)
		}()
	} else {
		logger.Info("feed disabled")
	}

	logger.Info("exchange running",
		"stocks", len(listing),
		"vwsp_window", cfg.Market.VWSPWindow,
		"report_interval", cfg.Market.ReportInterval,
	)

	if cfg.Market.ReportInterval > 0 {
		reportLoop(ctx, mkt, ingester, cfg.Market.ReportInterval, logger)
	} else {
		<-ctx.Done()
	}

	logReport(mkt, ingester, logger)
	logger.Info("exchange stopped")
}

// feedConfig builds the feed manager settings, subscribing to the listed
// stocks only.
func feedConfig(cfg *config.Config, mkt *market.Market) feed.ManagerConfig {
	mc := feed.DefaultManagerConfig()
	mc.Client = feed.ClientConfig{
		URL:          cfg.Feed.URL,
		APIKey:       cfg.Feed.APIKey,
		PingTimeout:  cfg.Feed.PingTimeout,
		WriteTimeout: cfg.Feed.WriteTimeout,
		BufferSize:   cfg.Feed.BufferSize,
	}
	mc.MessageBufferSize = cfg.Feed.BufferSize
	for _, s := range mkt.ListStocks() {
		mc.Stocks = append(mc.Stocks, s.Name())
	}
	return mc
}

// reportLoop logs market metrics every interval until ctx is done.
func reportLoop(ctx context.Context, mkt *market.Market, ingester *feed.Ingester, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logReport(mkt, ingester, logger)
		}
	}
}

func logReport(mkt *market.Market, ingester *feed.Ingester, logger *slog.Logger) {
	summary := mkt.Summary(nil)

	for _, p := range summary.Prices {
		logger.Info("stock price",
			"stock", p.Stock,
			"vwsp", p.VWSP.String(),
			"volume", p.Volume.String(),
			"trades", p.Trades,
		)
	}

	attrs := []any{
		"period", summary.Period.String(),
		"ledger_size", mkt.TradeCount(),
	}
	if summary.HasIndex {
		attrs = append(attrs, "all_share_index", summary.Index)
	}
	if ingester != nil {
		stats := ingester.Stats()
		attrs = append(attrs,
			"feed_received", stats.MessagesReceived,
			"feed_recorded", stats.TradesRecorded,
			"feed_rejected", stats.Rejected,
			"feed_parse_errors", stats.ParseErrors,
		)
	}
	logger.Info("market report", attrs...)
}
