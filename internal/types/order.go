package types

// Order aggregates every fill that shares one originating order id.
// AvgPrice is recomputed on each fold so that AvgPrice*Amount tracks
// TotalCost regardless of fill arrival order.
type Order struct {
	OrderID    string  `json:"order_id"`
	Symbol     string  `json:"symbol"`
	Side       string  `json:"side"`
	Exchange   string  `json:"exchange"`
	Amount     float64 `json:"amount"`
	AvgPrice   float64 `json:"avg_price"`
	TotalCost  float64 `json:"total_cost"`
	TotalFee   float64 `json:"total_fee"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
	PnL        float64 `json:"pnl"`
	Timestamp  int64   `json:"timestamp"` // earliest fill, epoch ms
	Trades     []Trade `json:"trades"`
	PositionID string  `json:"position_id,omitempty"`
}

// NewOrder seeds an Order from its first fill.
func NewOrder(t Trade) Order {
	return Order{
		OrderID:   t.OrderID,
		Symbol:    t.Symbol,
		Side:      t.Side,
		Exchange:  t.Exchange,
		Amount:    t.Amount,
		AvgPrice:  t.Price,
		TotalCost: t.Notional(),
		TotalFee:  t.Fee,
		MinPrice:  t.Price,
		MaxPrice:  t.Price,
		PnL:       t.RealizedPnL,
		Timestamp: t.Timestamp,
		Trades:    []Trade{t},
	}
}

// Fold merges one more fill into the order and recomputes the weighted
// average price.
func (o *Order) Fold(t Trade) {
	o.Amount += t.Amount
	o.TotalCost += t.Notional()
	o.TotalFee += t.Fee
	o.PnL += t.RealizedPnL
	if t.Price < o.MinPrice {
		o.MinPrice = t.Price
	}
	if t.Price > o.MaxPrice {
		o.MaxPrice = t.Price
	}
	if t.Timestamp < o.Timestamp {
		o.Timestamp = t.Timestamp
	}
	if o.Amount > 0 {
		o.AvgPrice = o.TotalCost / o.Amount
	}
	o.Trades = append(o.Trades, t)
}
