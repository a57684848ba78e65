// Package syncer orchestrates one sync invocation end to end:
// credentials → per-exchange fetch sessions → trade aggregation →
// position matching → persistence. It decides full vs incremental per
// exchange and guarantees that the only failure crossing its boundary
// is a structured SyncResult.
package syncer

import (
	"context"
	"fmt"
	"time"

	"tradesync/internal/aggregate"
	"tradesync/internal/creds"
	"tradesync/internal/logger"
	"tradesync/internal/store"
	"tradesync/internal/types"
)

// TradeFetcher is the slice of the fetch client the orchestrator uses.
type TradeFetcher interface {
	FetchTrades(ctx context.Context, pair string, since int64) (map[string]types.Trade, error)
}

// Session is one authenticated exchange ready to be synced.
type Session interface {
	Exchange() string
	FetchTrades(ctx context.Context, pair string, since int64) (map[string]types.Trade, error)
	DiscoverPairs(ctx context.Context, quotes []string) ([]string, error)
}

// SessionFactory turns decrypted credentials into a live session. A
// factory error is a credential/initialization failure and aborts the
// whole sync.
type SessionFactory func(c creds.Credentials) (Session, error)

type Orchestrator struct {
	decryptor creds.Decryptor
	factory   SessionFactory
	orders    store.OrderRepository
	positions store.PositionRepository
	syncTimes store.SyncTimeStore
	match     aggregate.MatchConfig
	quotes    []string
	now       func() time.Time
}

type Deps struct {
	Decryptor creds.Decryptor
	Factory   SessionFactory
	Orders    store.OrderRepository
	Positions store.PositionRepository
	SyncTimes store.SyncTimeStore
	Match     aggregate.MatchConfig
	Quotes    []string
}

func New(d Deps) *Orchestrator {
	quotes := d.Quotes
	if len(quotes) == 0 {
		quotes = []string{"USDT", "USDC"}
	}
	match := d.Match
	if match.MinOrders == 0 && match.VolumeThresholdPct == 0 {
		match = aggregate.DefaultMatchConfig()
	}
	return &Orchestrator{
		decryptor: d.Decryptor,
		factory:   d.Factory,
		orders:    d.Orders,
		positions: d.Positions,
		syncTimes: d.SyncTimes,
		match:     match,
		quotes:    quotes,
		now:       time.Now,
	}
}

// Sync runs one full or incremental sync for a user. Not resumable
// mid-flight: per-pair and per-exchange fetch failures are skipped with
// partial results still saved, while credential failures abort before
// any fetching starts.
func (o *Orchestrator) Sync(ctx context.Context, userID string, blob []byte) SyncResult {
	credentials, err := o.decryptor.Decrypt(blob)
	if err != nil || len(credentials) == 0 {
		if err == nil {
			err = fmt.Errorf("no credentials decrypted")
		}
		logger.Errorf("sync %s: credential decryption failed: %v", userID, err)
		return failure(fmt.Sprintf("credential decryption failed: %v", err))
	}

	lastTimes, err := o.syncTimes.GetLastSyncTimes(ctx, userID)
	if err != nil {
		logger.Errorf("sync %s: loading sync cursors failed: %v", userID, err)
		return failure(fmt.Sprintf("loading sync cursors failed: %v", err))
	}

	sessions := make([]Session, 0, len(credentials))
	for _, c := range credentials {
		s, err := o.factory(c)
		if err != nil {
			logger.Errorf("sync %s: initializing %s client failed: %v", userID, c.Exchange, err)
			return failure(fmt.Sprintf("initializing %s client failed: %v", c.Exchange, err))
		}
		sessions = append(sessions, s)
	}

	result := SyncResult{Success: true, Type: TypeIncremental}
	startedAt := o.now().UnixMilli()
	completed := map[string]int64{}

	for _, s := range sessions {
		exch := s.Exchange()
		known, err := o.orders.KnownPairs(ctx, userID, exch)
		if err != nil {
			logger.Warnf("sync %s: listing known pairs for %s failed, forcing full sync: %v", userID, exch, err)
			known = nil
		}
		since := lastTimes[exch]
		full := len(known) == 0 || since == 0

		pairs, newPairs, err := o.resolvePairs(ctx, s, known, full)
		if err != nil {
			// Discovery failure costs this exchange, not the sync.
			logger.Errorf("sync %s: pair discovery on %s failed: %v", userID, exch, err)
			continue
		}
		if full {
			result.Type = TypeInitial
			since = 0
		}
		result.NewPairs = append(result.NewPairs, newPairs...)
		result.PairsFound += len(pairs)

		var fills []types.Trade
		for _, pair := range pairs {
			trades, err := s.FetchTrades(ctx, pair, since)
			if err != nil {
				logger.Warnf("sync %s: fetching %s %s failed, treating as zero trades: %v", userID, exch, pair, err)
				continue
			}
			fills = append(fills, aggregate.TradeMapToSlice(trades)...)
		}
		result.TradesFound += len(fills)

		orders := aggregate.AggregateTrades(fills)
		positions := aggregate.AggregatePositions(orders, o.match)

		savedOrders, err := o.orders.SaveAll(ctx, orders, userID)
		if err != nil {
			logger.Errorf("sync %s: saving %s orders failed: %v", userID, exch, err)
			continue
		}
		savedPositions, err := o.positions.SaveAll(ctx, positions, userID)
		if err != nil {
			logger.Errorf("sync %s: saving %s positions failed: %v", userID, exch, err)
			continue
		}
		logger.Infof("sync %s: %s done, %d pairs, %d fills, %d orders, %d positions",
			userID, exch, len(pairs), len(fills), len(savedOrders), len(savedPositions))
		completed[exch] = startedAt
	}

	if len(completed) > 0 {
		if err := o.syncTimes.UpdateLastSyncTimes(ctx, userID, completed); err != nil {
			logger.Warnf("sync %s: updating sync cursors failed: %v", userID, err)
		}
	}

	result.Message = fmt.Sprintf("%s sync finished: %d pairs, %d trades", result.Type, result.PairsFound, result.TradesFound)
	return result
}

// resolvePairs picks the pair set to fetch. Full syncs discover from
// scratch; incremental syncs re-check for pairs that appeared since the
// last run and fetch known plus new.
func (o *Orchestrator) resolvePairs(ctx context.Context, s Session, known []string, full bool) (pairs, newPairs []string, err error) {
	if full {
		pairs, err = s.DiscoverPairs(ctx, o.quotes)
		return pairs, nil, err
	}
	discovered, err := s.DiscoverPairs(ctx, o.quotes)
	if err != nil {
		// Discovery is best-effort on incremental runs; known pairs
		// still get their new trades.
		logger.Warnf("sync: incremental pair recheck on %s failed: %v", s.Exchange(), err)
		return known, nil, nil
	}
	knownSet := make(map[string]bool, len(known))
	for _, p := range known {
		knownSet[p] = true
	}
	pairs = append(pairs, known...)
	for _, p := range discovered {
		if !knownSet[p] {
			pairs = append(pairs, p)
			newPairs = append(newPairs, p)
		}
	}
	return pairs, newPairs, nil
}
