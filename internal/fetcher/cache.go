package fetcher

import (
	"sync"
	"time"

	"tradesync/internal/gateway/exchange"
)

// TradeCache holds one bulk-fetched trade dump partitioned by pair.
// It is scoped to a single fetch client, injected at construction, and
// carries a generation marker so tests can observe repopulations.
type TradeCache struct {
	ttl time.Duration

	mu         sync.Mutex
	byPair     map[string][]exchange.RawTrade
	fetchedAt  time.Time
	generation uint64
}

func NewTradeCache(ttl time.Duration) *TradeCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TradeCache{ttl: ttl}
}

// Get returns the cached slice for a pair. ok is false only when the
// cache is unpopulated or expired; a pair absent from a fresh bulk dump
// is a genuine empty result, not a miss.
func (c *TradeCache) Get(pair string) ([]exchange.RawTrade, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.byPair == nil || time.Since(c.fetchedAt) > c.ttl {
		return nil, false
	}
	return c.byPair[pair], true
}

// Populate replaces the whole cache content with a fresh dump.
func (c *TradeCache) Populate(byPair map[string][]exchange.RawTrade) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if byPair == nil {
		byPair = map[string][]exchange.RawTrade{}
	}
	c.byPair = byPair
	c.fetchedAt = time.Now()
	c.generation++
}

// Invalidate drops everything. Used both for explicit out-of-band
// invalidation and after a failed repopulation, so stale data is never
// served in place of an error.
func (c *TradeCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byPair = nil
	c.fetchedAt = time.Time{}
}

// Generation counts successful repopulations.
func (c *TradeCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}
