// Package aggregate reconstructs orders from raw fills and positions
// from orders. Both passes are pure: no I/O, no shared state, safe to
// run concurrently for different users.
package aggregate

import (
	"sort"

	"tradesync/internal/types"
)

// AggregateTrades groups fills by originating order id. Fills without
// an order id were already rejected by validation and are skipped here
// rather than grouped under an empty key. Output is ordered by first
// fill time.
func AggregateTrades(trades []types.Trade) []types.Order {
	sorted := make([]types.Trade, len(trades))
	copy(sorted, trades)
	// Deterministic fold order so weighted averages come out identical
	// for any input permutation.
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Timestamp != sorted[j].Timestamp {
			return sorted[i].Timestamp < sorted[j].Timestamp
		}
		return sorted[i].ID < sorted[j].ID
	})

	byID := make(map[string]*types.Order)
	var seq []string
	for _, t := range sorted {
		if t.OrderID == "" {
			continue
		}
		if o, ok := byID[t.OrderID]; ok {
			o.Fold(t)
			continue
		}
		o := types.NewOrder(t)
		byID[t.OrderID] = &o
		seq = append(seq, t.OrderID)
	}

	out := make([]types.Order, 0, len(seq))
	for _, id := range seq {
		out = append(out, *byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// TradeMapToSlice flattens a fetch result into the aggregation input.
func TradeMapToSlice(m map[string]types.Trade) []types.Trade {
	out := make([]types.Trade, 0, len(m))
	for _, t := range m {
		out = append(out, t)
	}
	return out
}
