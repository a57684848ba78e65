// Package exchange defines the generic trading-client abstraction the
// fetch layer is built on. Concrete adapters (binance, gate) translate
// their SDK types into the wire-neutral ones defined here; nothing
// above this package knows which SDK produced a trade.
package exchange

import (
	"context"
	"errors"
)

// ErrNotSupported is returned by adapters for operations the venue has
// no equivalent for (e.g. positions on a spot-only account).
var ErrNotSupported = errors.New("operation not supported by exchange")

// RawTrade is one fill exactly as the adapter decoded it, before any
// validation. Numeric fields stay strings so the validation layer, not
// the adapter, decides what parses and what gets dropped.
type RawTrade struct {
	ID        string
	OrderID   string
	Symbol    string // internal "BASE/QUOTE" form
	Side      string // "buy" or "sell"
	Price     string
	Amount    string
	Cost      string
	Fee       string
	FeeAsset  string
	PnL       string
	Timestamp int64 // epoch ms, 0 when the venue omitted it

	// Info is the original JSON payload, kept for exchange-specific
	// structural checks.
	Info []byte
}

// RawOrder is a resting/historical order as reported by the venue.
type RawOrder struct {
	ID        string
	Symbol    string
	Side      string
	Status    string
	Price     string
	Amount    string
	Filled    string
	Timestamp int64
}

// RawPosition is an open derivative position, for venues that have them.
type RawPosition struct {
	Symbol     string
	Side       string
	Size       string
	EntryPrice string
	Leverage   string
}

// Market is one tradable pair from LoadMarkets.
type Market struct {
	Symbol string // internal form
	Base   string
	Quote  string
	Active bool
}

// Balance maps asset code to total holding (free + locked).
type Balance map[string]float64

// TradingClient is the unified surface over heterogeneous exchange
// SDKs. FetchMyTrades with an empty symbol asks for the whole account
// history; adapters for venues that cannot do that return
// ErrNotSupported and the fetch layer falls back to per-symbol calls.
type TradingClient interface {
	Name() string
	FetchMyTrades(ctx context.Context, symbol string, since int64, limit int) ([]RawTrade, error)
	FetchOrders(ctx context.Context, symbol string, since int64, limit int) ([]RawOrder, error)
	FetchPositions(ctx context.Context) ([]RawPosition, error)
	FetchBalance(ctx context.Context) (Balance, error)
	LoadMarkets(ctx context.Context) (map[string]Market, error)
}
