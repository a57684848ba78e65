package aggregate

import (
	"math/rand"
	"testing"

	"tradesync/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(id, orderID, side string, price, amount float64, ts int64) types.Trade {
	return types.Trade{
		ID:        id,
		OrderID:   orderID,
		Symbol:    "BTC/USDT",
		Side:      side,
		Price:     price,
		Amount:    amount,
		Cost:      price * amount,
		Exchange:  "binance",
		Timestamp: ts,
	}
}

func TestAggregateTrades_Partition(t *testing.T) {
	trades := []types.Trade{
		fill("t1", "o1", "buy", 100, 1, 1000),
		fill("t2", "o1", "buy", 102, 2, 1001),
		fill("t3", "o2", "sell", 110, 3, 2000),
		fill("t4", "o3", "buy", 95, 0.5, 3000),
		fill("t5", "o2", "sell", 111, 1, 2001),
	}

	orders := AggregateTrades(trades)
	require.Len(t, orders, 3)

	// Every input fill lands in exactly one order's trade list.
	seen := map[string]int{}
	for _, o := range orders {
		for _, tr := range o.Trades {
			seen[tr.ID]++
			assert.Equal(t, o.OrderID, tr.OrderID)
		}
	}
	assert.Len(t, seen, len(trades))
	for id, n := range seen {
		assert.Equalf(t, 1, n, "trade %s appears %d times", id, n)
	}
}

func TestAggregateTrades_WeightedAverage(t *testing.T) {
	trades := []types.Trade{
		fill("t1", "o1", "buy", 100, 1, 1000),
		fill("t2", "o1", "buy", 110, 1, 1001),
		fill("t3", "o1", "buy", 120, 2, 1002),
	}

	orders := AggregateTrades(trades)
	require.Len(t, orders, 1)
	o := orders[0]
	assert.InDelta(t, 4.0, o.Amount, 1e-9)
	assert.InDelta(t, 112.5, o.AvgPrice, 1e-9)
	assert.InDelta(t, o.TotalCost, o.AvgPrice*o.Amount, 1e-6)
	assert.InDelta(t, 100.0, o.MinPrice, 1e-9)
	assert.InDelta(t, 120.0, o.MaxPrice, 1e-9)
}

func TestAggregateTrades_PermutationInvariant(t *testing.T) {
	base := []types.Trade{
		fill("t1", "o1", "buy", 100.31, 1.5, 1000),
		fill("t2", "o1", "buy", 99.87, 0.25, 1001),
		fill("t3", "o1", "buy", 101.02, 3.75, 1002),
		fill("t4", "o1", "buy", 100.00, 2.0, 1003),
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]types.Trade, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		orders := AggregateTrades(shuffled)
		require.Len(t, orders, 1)
		o := orders[0]
		assert.InDelta(t, o.TotalCost, o.AvgPrice*o.Amount, 1e-6)
		assert.InDelta(t, 7.5, o.Amount, 1e-9)
	}
}

func TestAggregateTrades_SkipsMissingOrderID(t *testing.T) {
	trades := []types.Trade{
		fill("t1", "", "buy", 100, 1, 1000),
		fill("t2", "o1", "buy", 100, 1, 1001),
	}
	orders := AggregateTrades(trades)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].OrderID)
}

func TestAggregateTrades_OrderedByTime(t *testing.T) {
	trades := []types.Trade{
		fill("t1", "late", "sell", 100, 1, 5000),
		fill("t2", "early", "buy", 100, 1, 1000),
	}
	orders := AggregateTrades(trades)
	require.Len(t, orders, 2)
	assert.Equal(t, "early", orders[0].OrderID)
	assert.Equal(t, "late", orders[1].OrderID)
}
