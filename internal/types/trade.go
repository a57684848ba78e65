// Package types holds the domain model shared by the fetch, aggregation
// and persistence layers.
package types

// Trade is a single executed fill as reported by an exchange. Trades are
// immutable once validated; the natural key is (Exchange, ID).
type Trade struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order_id"`
	Symbol      string  `json:"symbol"` // internal form, e.g. "BTC/USDT"
	Side        string  `json:"side"`   // "buy" or "sell"
	Price       float64 `json:"price"`
	Amount      float64 `json:"amount"`
	Cost        float64 `json:"cost"`
	Fee         float64 `json:"fee"`
	FeeCurrency string  `json:"fee_currency,omitempty"`
	Exchange    string  `json:"exchange"`
	Timestamp   int64   `json:"timestamp"` // epoch milliseconds
	RealizedPnL float64 `json:"realized_pnl,omitempty"`
	Leverage    float64 `json:"leverage,omitempty"`

	// Raw keeps the original exchange payload for debugging. Never used
	// by aggregation.
	Raw []byte `json:"-"`
}

const (
	SideBuy  = "buy"
	SideSell = "sell"
)

// Notional returns the quote-currency value of the fill. Cost is
// preferred when the exchange reported it; otherwise price*amount.
func (t Trade) Notional() float64 {
	if t.Cost > 0 {
		return t.Cost
	}
	return t.Price * t.Amount
}
