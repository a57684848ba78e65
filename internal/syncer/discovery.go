package syncer

import (
	"context"
	"fmt"
	"sort"

	"tradesync/internal/gateway/exchange"
	"tradesync/internal/types"
)

// DiscoverPairs proposes the pairs worth fetching for an account:
// every held non-quote asset crossed with the configured quote
// currencies, kept when the venue lists the pair as tradable. This is
// the expensive step per-symbol venues pay one history call per
// candidate for, and the reason bulk caching exists.
func DiscoverPairs(ctx context.Context, tc exchange.TradingClient, quotes []string) ([]string, error) {
	if len(quotes) == 0 {
		return nil, fmt.Errorf("no quote currencies configured")
	}
	balance, err := tc.FetchBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s balance: %w", tc.Name(), err)
	}
	markets, err := tc.LoadMarkets(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s markets: %w", tc.Name(), err)
	}

	quoteSet := make(map[string]bool, len(quotes))
	for _, q := range quotes {
		quoteSet[q] = true
	}

	var pairs []string
	for asset := range balance {
		if quoteSet[asset] {
			continue
		}
		for _, quote := range quotes {
			pair := asset + "/" + quote
			if m, ok := markets[pair]; ok && m.Active {
				pairs = append(pairs, pair)
			}
		}
	}
	sort.Strings(pairs)
	return pairs, nil
}

// session bundles what the orchestrator needs per exchange: a fetch
// client for history plus the raw trading client for discovery.
type session struct {
	fetcher  TradeFetcher
	tc       exchange.TradingClient
	exchange string
}

// NewSession wraps a fetch client and its trading client as a Session.
func NewSession(name string, f TradeFetcher, tc exchange.TradingClient) Session {
	return &session{fetcher: f, tc: tc, exchange: name}
}

func (s *session) Exchange() string { return s.exchange }

func (s *session) FetchTrades(ctx context.Context, pair string, since int64) (map[string]types.Trade, error) {
	return s.fetcher.FetchTrades(ctx, pair, since)
}

func (s *session) DiscoverPairs(ctx context.Context, quotes []string) ([]string, error) {
	return DiscoverPairs(ctx, s.tc, quotes)
}
