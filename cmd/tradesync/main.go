package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"tradesync/internal/aggregate"
	tscfg "tradesync/internal/config"
	"tradesync/internal/creds"
	"tradesync/internal/fetcher"
	"tradesync/internal/gateway"
	"tradesync/internal/logger"
	"tradesync/internal/pkg/circuit"
	"tradesync/internal/scheduler"
	"tradesync/internal/store"
	"tradesync/internal/syncer"
)

func main() {
	cfgPath := os.Getenv("TRADESYNC_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}

	cfg, err := tscfg.Load(cfgPath)
	if err != nil {
		log.Fatalf("loading config failed: %v", err)
	}
	logFile, err := setupLogOutput(cfg.App.LogPath)
	if err != nil {
		log.Fatalf("initializing log file failed: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger.SetLevel(cfg.App.LogLevel)

	db, err := store.Open(cfg.App.DBPath)
	if err != nil {
		log.Fatalf("opening store failed: %v", err)
	}
	defer db.Close()

	blob, err := os.ReadFile(cfg.Sync.CredentialsPath)
	if err != nil {
		log.Fatalf("reading credentials failed: %v", err)
	}

	match, err := aggregate.PresetConfig(cfg.Sync.Preset)
	if err != nil {
		log.Fatalf("resolving preset failed: %v", err)
	}

	orch := syncer.New(syncer.Deps{
		Decryptor: creds.PlainJSON{},
		Factory:   sessionFactory(cfg),
		Orders:    db.Orders(),
		Positions: db.Positions(),
		SyncTimes: db,
		Match:     match,
		Quotes:    cfg.Sync.QuoteCurrencies,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOnce := func(ctx context.Context) {
		result := orch.Sync(ctx, cfg.Sync.UserID, blob)
		printResult(result)
	}

	if every, ok := scheduler.ParseIntervalDuration(cfg.Sync.WatchInterval); ok {
		logger.Infof("watch mode: syncing every %s", every)
		scheduler.RunEvery(ctx, every, runOnce)
		return
	}
	runOnce(ctx)
}

// sessionFactory wires a credential set into a fetch session: concrete
// SDK adapter, circuit breaker, business filter from config.
func sessionFactory(cfg *tscfg.Config) syncer.SessionFactory {
	return func(c creds.Credentials) (syncer.Session, error) {
		tc, err := gateway.NewTradingClient(c, gateway.Options{
			HTTPTimeout: time.Duration(cfg.Fetch.HTTPTimeoutSeconds) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		breaker := circuit.NewBreaker(tc.Name(), cfg.Fetch.BreakerThreshold,
			time.Duration(cfg.Fetch.BreakerCooldownSeconds)*time.Second)
		business := fetcher.BusinessFilter{
			MinNotionalUSD: cfg.Fetch.MinNotionalUSD,
			MaxAge:         time.Duration(cfg.Fetch.MaxAgeDays) * 24 * time.Hour,
		}
		client := fetcher.New(tc,
			fetcher.WithBreaker(breaker),
			fetcher.WithBusinessFilter(business),
		)
		return syncer.NewSession(tc.Name(), client, tc), nil
	}
}

func printResult(r syncer.SyncResult) {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		logger.Errorf("encoding result failed: %v", err)
		return
	}
	fmt.Println(string(out))
}

func setupLogOutput(path string) (*os.File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(trimmed, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	logger.SetOutput(f)
	return f, nil
}
