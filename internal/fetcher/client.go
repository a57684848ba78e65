// Package fetcher turns per-exchange trade history APIs into validated
// domain trades. It picks a fetch strategy from the capability table
// (one bulk dump cached per client vs paced per-symbol calls) and runs
// every fill through the filter pipeline before anything downstream
// sees it.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tradesync/internal/gateway/exchange"
	"tradesync/internal/logger"
	"tradesync/internal/pkg/circuit"
	"tradesync/internal/pkg/symbol"
	"tradesync/internal/types"

	"golang.org/x/time/rate"
)

// ErrCircuitOpen reports that the exchange breaker tripped; callers
// treat it like any other per-pair fetch failure.
var ErrCircuitOpen = errors.New("exchange circuit breaker open")

type Client struct {
	name     string
	tc       exchange.TradingClient
	cap      exchange.Capability
	cache    *TradeCache
	limiter  *rate.Limiter
	breaker  *circuit.Breaker
	filter   FilterConfig
	business BusinessFilter
	now      func() time.Time
}

type Option func(*Client)

// WithCapability overrides the registry lookup, mainly for tests.
func WithCapability(c exchange.Capability) Option {
	return func(cl *Client) { cl.cap = c }
}

func WithFilterConfig(f FilterConfig) Option {
	return func(cl *Client) { cl.filter = f }
}

func WithBusinessFilter(f BusinessFilter) Option {
	return func(cl *Client) { cl.business = f }
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(cl *Client) { cl.breaker = b }
}

func New(tc exchange.TradingClient, opts ...Option) *Client {
	name := tc.Name()
	c := &Client{
		name:     name,
		tc:       tc,
		cap:      exchange.LookupCapability(name),
		filter:   filterConfigFor(name),
		business: BusinessFilter{MinNotionalUSD: DefaultMinNotionalUSD},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = NewTradeCache(c.cap.CacheTTL)
	}
	if c.limiter == nil {
		c.limiter = rate.NewLimiter(rate.Every(c.cap.RateInterval), 1)
	}
	return c
}

func (c *Client) Exchange() string { return c.name }

// InvalidateCache drops the bulk cache for out-of-band refresh.
func (c *Client) InvalidateCache() { c.cache.Invalidate() }

// CacheGeneration exposes the repopulation counter.
func (c *Client) CacheGeneration() uint64 { return c.cache.Generation() }

// FetchTrades returns validated trades for one pair, keyed by trade id.
// since is an exclusive epoch-ms cursor; 0 means full history. A nil
// error with an empty map is a legitimate "no trades" answer.
func (c *Client) FetchTrades(ctx context.Context, pair string, since int64) (map[string]types.Trade, error) {
	if c.breaker != nil && !c.breaker.Allow() {
		return nil, fmt.Errorf("%s: %w", c.name, ErrCircuitOpen)
	}
	var (
		raw []exchange.RawTrade
		err error
	)
	if c.cap.FetchStyle == exchange.StyleBulk {
		raw, err = c.bulkTrades(ctx, pair)
	} else {
		raw, err = c.scopedTrades(ctx, pair, since)
	}
	if err != nil {
		if c.breaker != nil {
			c.breaker.Failure()
		}
		return nil, err
	}
	if c.breaker != nil {
		c.breaker.Success()
	}
	return c.runPipeline(raw, since), nil
}

// bulkTrades serves from the cache when fresh; a miss triggers exactly
// one full repopulation rather than a per-pair call. A failed
// repopulation clears the cache and propagates: stale or empty data is
// never silently substituted.
func (c *Client) bulkTrades(ctx context.Context, pair string) ([]exchange.RawTrade, error) {
	if cached, ok := c.cache.Get(pair); ok {
		return cached, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	dump, err := c.tc.FetchMyTrades(ctx, "", 0, c.cap.MaxPageSize)
	if err != nil {
		c.cache.Invalidate()
		return nil, fmt.Errorf("%s bulk trade fetch: %w", c.name, err)
	}
	byPair := make(map[string][]exchange.RawTrade)
	for _, rt := range dump {
		key := symbol.Normalize(rt.Symbol)
		if key == "" {
			key = rt.Symbol
		}
		byPair[key] = append(byPair[key], rt)
	}
	c.cache.Populate(byPair)
	logger.Debugf("%s: bulk cache repopulated, %d fills across %d pairs", c.name, len(dump), len(byPair))
	cached, _ := c.cache.Get(pair)
	return cached, nil
}

func (c *Client) scopedTrades(ctx context.Context, pair string, since int64) ([]exchange.RawTrade, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	// Pass since through even when the venue ignores it; the time
	// filter below re-checks client-side either way.
	raw, err := c.tc.FetchMyTrades(ctx, pair, since, c.cap.MaxPageSize)
	if err != nil {
		return nil, fmt.Errorf("%s trade fetch for %s: %w", c.name, pair, err)
	}
	return raw, nil
}

// runPipeline applies the four filter stages in order: time cursor,
// structural validation, per-exchange config filter, business filter.
func (c *Client) runPipeline(raw []exchange.RawTrade, since int64) map[string]types.Trade {
	out := make(map[string]types.Trade, len(raw))
	validate := validatorFor(c.name)
	now := c.now()
	var dropped int
	for _, rt := range raw {
		if since > 0 && rt.Timestamp <= since {
			continue
		}
		t, err := validate(rt)
		if err != nil {
			dropped++
			logger.Debugf("%s: dropping malformed fill: %v", c.name, err)
			continue
		}
		t.Exchange = c.name
		if !c.filter.keep(t) {
			dropped++
			continue
		}
		if !c.business.keep(t, now) {
			dropped++
			continue
		}
		out[t.ID] = t
	}
	if dropped > 0 {
		logger.Debugf("%s: filter pipeline dropped %d of %d fills", c.name, dropped, len(raw))
	}
	return out
}
