package aggregate

import (
	"math"
	"sort"

	"tradesync/internal/types"

	"github.com/google/uuid"
)

// AggregatePositions walks each pair's orders in time order and cuts
// position boundaries by volume matching. Two boundary rules, checked
// in this order (the balanced check deliberately wins ties):
//
//  1. balanced close: relative buy/sell volume difference within the
//     threshold, both sides traded, minimum order count reached;
//  2. directional flip: the latest order swings the running net volume
//     from long to short or back, which marks the end of the previous
//     cycle even though volumes never balanced.
//
// A trailing unsealed run becomes one partial position when the config
// allows it, otherwise it is dropped, never persisted half-built.
func AggregatePositions(orders []types.Order, cfg MatchConfig) []types.Position {
	if cfg.MinOrders <= 0 {
		cfg.MinOrders = 1
	}
	byPair := make(map[string][]types.Order)
	var pairSeq []string
	for _, o := range orders {
		key := o.Exchange + "|" + o.Symbol
		if _, ok := byPair[key]; !ok {
			pairSeq = append(pairSeq, key)
		}
		byPair[key] = append(byPair[key], o)
	}

	var out []types.Position
	for _, key := range pairSeq {
		out = append(out, matchPair(byPair[key], cfg)...)
	}
	return out
}

func matchPair(orders []types.Order, cfg MatchConfig) []types.Position {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Timestamp < orders[j].Timestamp
	})

	var (
		positions []types.Position
		group     []types.Order
		buyVol    float64
		sellVol   float64
	)
	reset := func() {
		group = nil
		buyVol = 0
		sellVol = 0
	}

	for _, o := range orders {
		prevNet := buyVol - sellVol
		group = append(group, o)
		if o.Side == types.SideBuy {
			buyVol += o.Amount
		} else {
			sellVol += o.Amount
		}
		newNet := buyVol - sellVol

		if balancedClose(buyVol, sellVol, len(group), cfg) {
			positions = append(positions, seal(group, buyVol, sellVol, false))
			reset()
			continue
		}

		// Directional flip: the run before this order was net one way,
		// now it is net the other. The previous orders are a finished
		// cycle only if both sides actually traded; an orphaned closer
		// with no opener is discarded here.
		if prevNet != 0 && newNet != 0 && (prevNet > 0) != (newNet > 0) {
			prefix := group[:len(group)-1]
			pBuy, pSell := volumes(prefix)
			if pBuy > 0 && pSell > 0 {
				positions = append(positions, seal(prefix, pBuy, pSell, false))
			}
			group = []types.Order{o}
			buyVol, sellVol = volumes(group)
		}
	}

	if len(group) > 0 && cfg.AllowPartial {
		positions = append(positions, seal(group, buyVol, sellVol, true))
	}
	return positions
}

func balancedClose(buyVol, sellVol float64, count int, cfg MatchConfig) bool {
	if buyVol <= 0 || sellVol <= 0 || count < cfg.MinOrders {
		return false
	}
	total := buyVol + sellVol
	if total == 0 {
		return false
	}
	return math.Abs(buyVol-sellVol)/total <= cfg.VolumeThresholdPct
}

func volumes(orders []types.Order) (buy, sell float64) {
	for _, o := range orders {
		if o.Side == types.SideBuy {
			buy += o.Amount
		} else {
			sell += o.Amount
		}
	}
	return buy, sell
}

// seal materializes one position from a finished run. Quantity is the
// matched volume min(buy, sell) for a balanced close and the open side
// max(buy, sell) for a partial, never the sum of order amounts.
func seal(orders []types.Order, buyVol, sellVol float64, partial bool) types.Position {
	group := make([]types.Order, len(orders))
	copy(group, orders)

	first := group[0]
	last := group[len(group)-1]

	direction := types.DirectionShort
	if first.Side == types.SideBuy {
		direction = types.DirectionLong
	}

	quantity := math.Min(buyVol, sellVol)
	if partial {
		quantity = math.Max(buyVol, sellVol)
	}

	var buyCost, sellCost, fee, orderPnL float64
	for _, o := range group {
		if o.Side == types.SideBuy {
			buyCost += o.TotalCost
		} else {
			sellCost += o.TotalCost
		}
		fee += o.TotalFee
		orderPnL += o.PnL
	}

	// Prefer exchange-reported realized PnL when any order carried it;
	// otherwise derive it from cost flow for closed cycles.
	pnl := orderPnL
	if pnl == 0 && !partial {
		pnl = sellCost - buyCost - fee
	}

	p := types.Position{
		ID:            uuid.NewString(),
		Symbol:        first.Symbol,
		Exchange:      first.Exchange,
		Direction:     direction,
		Shape:         classifyShape(group),
		Quantity:      quantity,
		TotalBuyCost:  buyCost,
		TotalSellCost: sellCost,
		RealizedPnL:   pnl,
		TotalFee:      fee,
		OpenedAt:      first.Timestamp,
		Partial:       partial,
		Orders:        group,
	}
	if !partial {
		p.ClosedAt = last.Timestamp
		if p.ClosedAt > p.OpenedAt {
			p.DurationMs = p.ClosedAt - p.OpenedAt
		}
	}
	return p
}

// classifyShape tags the position for display; it never influences
// matching.
func classifyShape(orders []types.Order) string {
	var buys, sells int
	for _, o := range orders {
		if o.Side == types.SideBuy {
			buys++
		} else {
			sells++
		}
	}
	switch {
	case buys > 1 && sells > 1:
		return types.ShapeMixed
	case buys > 1:
		return types.ShapeDCA
	case sells > 1:
		return types.ShapeScalingOut
	default:
		return types.ShapeSimple
	}
}
