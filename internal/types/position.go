package types

// Position shape classifications. Tag only; never feeds back into
// matching.
const (
	ShapeSimple     = "simple"
	ShapeDCA        = "dca"
	ShapeScalingOut = "scaling_out"
	ShapeMixed      = "mixed"
)

const (
	DirectionLong  = "long"
	DirectionShort = "short"
)

// Position is a bounded run of orders on one pair interpreted as a
// single long/short cycle. Positions are built once from a materialized
// order list and never patched afterwards; recomputation replaces them.
type Position struct {
	ID            string  `json:"id"`
	Symbol        string  `json:"symbol"`
	Exchange      string  `json:"exchange"`
	Direction     string  `json:"direction"`
	Shape         string  `json:"shape"`
	Quantity      float64 `json:"quantity"`
	TotalBuyCost  float64 `json:"total_buy_cost"`
	TotalSellCost float64 `json:"total_sell_cost"`
	RealizedPnL   float64 `json:"realized_pnl"`
	TotalFee      float64 `json:"total_fee"`
	OpenedAt      int64   `json:"opened_at"` // epoch ms
	ClosedAt      int64   `json:"closed_at"` // epoch ms, 0 while partial
	DurationMs    int64   `json:"duration_ms"`
	Partial       bool    `json:"partial"`
	Orders        []Order `json:"orders"`
}

// OrderIDs returns the originating order ids in sequence order.
func (p Position) OrderIDs() []string {
	ids := make([]string, 0, len(p.Orders))
	for _, o := range p.Orders {
		ids = append(ids, o.OrderID)
	}
	return ids
}
