package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"tradesync/internal/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tradesync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleOrder(orderID, side string, price, amount float64, ts int64) types.Order {
	return types.Order{
		OrderID:   orderID,
		Symbol:    "BTC/USDT",
		Side:      side,
		Exchange:  "binance",
		Amount:    amount,
		AvgPrice:  price,
		TotalCost: price * amount,
		MinPrice:  price,
		MaxPrice:  price,
		Timestamp: ts,
	}
}

func TestStore_OpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestStore_SaveOrdersRoundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	orders := []types.Order{
		sampleOrder("o1", "buy", 50000, 0.5, 1000),
		sampleOrder("o2", "sell", 51000, 0.5, 2000),
	}
	saved, err := s.Orders().SaveAll(ctx, orders, "u1")
	require.NoError(t, err)
	assert.Len(t, saved, 2)

	pairs, err := s.Orders().KnownPairs(ctx, "u1", "binance")
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC/USDT"}, pairs)

	// Unknown exchange and user stay empty.
	pairs, err = s.Orders().KnownPairs(ctx, "u1", "gate")
	require.NoError(t, err)
	assert.Empty(t, pairs)
	pairs, err = s.Orders().KnownPairs(ctx, "u2", "binance")
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestStore_SaveOrdersUpsertsOnResync(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := sampleOrder("o1", "buy", 50000, 0.5, 1000)
	_, err := s.Orders().SaveAll(ctx, []types.Order{first}, "u1")
	require.NoError(t, err)

	// Same order ref with a later fill folded in.
	second := sampleOrder("o1", "buy", 50100, 0.75, 1000)
	saved, err := s.Orders().SaveAll(ctx, []types.Order{second}, "u1")
	require.NoError(t, err)
	require.Len(t, saved, 1)

	pairs, err := s.Orders().KnownPairs(ctx, "u1", "binance")
	require.NoError(t, err)
	assert.Len(t, pairs, 1)
}

func TestStore_SaveOrdersSkipsInvalidRows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	bad := sampleOrder("o-bad", "buy", 50000, 0.5, 1000)
	bad.PnL = math.NaN()
	noRef := sampleOrder("", "buy", 50000, 0.5, 1000)
	good := sampleOrder("o-good", "buy", 50000, 0.5, 1000)

	saved, err := s.Orders().SaveAll(ctx, []types.Order{bad, noRef, good}, "u1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "o-good", saved[0].OrderID)
}

func TestStore_SavePositionsAndLinkOrders(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	open := sampleOrder("o1", "buy", 50000, 1, 1000)
	closeOrd := sampleOrder("o2", "sell", 52000, 1, 2000)
	_, err := s.Orders().SaveAll(ctx, []types.Order{open, closeOrd}, "u1")
	require.NoError(t, err)

	p := types.Position{
		ID:            uuid.NewString(),
		Symbol:        "BTC/USDT",
		Exchange:      "binance",
		Direction:     types.DirectionLong,
		Shape:         types.ShapeSimple,
		Quantity:      1,
		TotalBuyCost:  50000,
		TotalSellCost: 52000,
		RealizedPnL:   2000,
		OpenedAt:      1000,
		ClosedAt:      2000,
		DurationMs:    1000,
		Orders:        []types.Order{open, closeOrd},
	}
	saved, err := s.Positions().SaveAll(ctx, []types.Position{p}, "u1")
	require.NoError(t, err)
	assert.Len(t, saved, 1)

	// Saving again under the same id is an update, not a duplicate.
	saved, err = s.Positions().SaveAll(ctx, []types.Position{p}, "u1")
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestStore_SavePositionsRejectsMalformed(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	noID := types.Position{Symbol: "BTC/USDT", Exchange: "binance", Orders: []types.Order{sampleOrder("o1", "buy", 1, 1, 1)}}
	noOrders := types.Position{ID: uuid.NewString(), Symbol: "BTC/USDT", Exchange: "binance"}
	nan := types.Position{
		ID: uuid.NewString(), Symbol: "BTC/USDT", Exchange: "binance",
		Quantity: math.NaN(),
		Orders:   []types.Order{sampleOrder("o1", "buy", 1, 1, 1)},
	}

	saved, err := s.Positions().SaveAll(ctx, []types.Position{noID, noOrders, nan}, "u1")
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestStore_SyncTimeCursorRoundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	times, err := s.GetLastSyncTimes(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, times)

	require.NoError(t, s.UpdateLastSyncTimes(ctx, "u1", map[string]int64{
		"binance": 1700000000000,
		"gate":    1700000001000,
	}))
	require.NoError(t, s.UpdateLastSyncTimes(ctx, "u1", map[string]int64{
		"binance": 1700000002000,
	}))

	times, err = s.GetLastSyncTimes(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000002000), times["binance"])
	assert.Equal(t, int64(1700000001000), times["gate"])

	// Cursors are per user.
	times, err = s.GetLastSyncTimes(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, times)
}
