package fetcher

import (
	"fmt"
	"strings"

	"tradesync/internal/gateway/exchange"
	"tradesync/internal/pkg/convert"
	"tradesync/internal/types"

	"github.com/tidwall/gjson"
)

// Validator checks one raw fill for structural soundness and converts
// it to the domain type. A failing trade is dropped by the pipeline,
// never defaulted.
type Validator func(exchange.RawTrade) (types.Trade, error)

// validators is the per-exchange dispatch table; unknown exchanges get
// the generic check.
var validators = map[string]Validator{
	"binance": validateBinance,
	"gate":    validateGate,
}

func validatorFor(name string) Validator {
	if v, ok := validators[strings.ToLower(name)]; ok {
		return v
	}
	return validateGeneric
}

// validateGeneric requires identity, a parseable positive price and
// amount, and a buy/sell side. Fee and PnL are optional but must parse
// when present.
func validateGeneric(rt exchange.RawTrade) (types.Trade, error) {
	if strings.TrimSpace(rt.ID) == "" {
		return types.Trade{}, fmt.Errorf("missing trade id")
	}
	if strings.TrimSpace(rt.OrderID) == "" {
		return types.Trade{}, fmt.Errorf("trade %s: missing order id", rt.ID)
	}
	if strings.TrimSpace(rt.Symbol) == "" {
		return types.Trade{}, fmt.Errorf("trade %s: missing symbol", rt.ID)
	}
	side := strings.ToLower(strings.TrimSpace(rt.Side))
	if side != types.SideBuy && side != types.SideSell {
		return types.Trade{}, fmt.Errorf("trade %s: invalid side %q", rt.ID, rt.Side)
	}
	price, err := convert.PositiveFloat(rt.Price)
	if err != nil {
		return types.Trade{}, fmt.Errorf("trade %s: price: %w", rt.ID, err)
	}
	amount, err := convert.PositiveFloat(rt.Amount)
	if err != nil {
		return types.Trade{}, fmt.Errorf("trade %s: amount: %w", rt.ID, err)
	}
	t := types.Trade{
		ID:          rt.ID,
		OrderID:     rt.OrderID,
		Symbol:      rt.Symbol,
		Side:        side,
		Price:       price,
		Amount:      amount,
		FeeCurrency: rt.FeeAsset,
		Timestamp:   rt.Timestamp,
		Raw:         rt.Info,
	}
	if strings.TrimSpace(rt.Cost) != "" {
		cost, err := convert.Float(rt.Cost)
		if err != nil {
			return types.Trade{}, fmt.Errorf("trade %s: cost: %w", rt.ID, err)
		}
		t.Cost = cost
	}
	if t.Cost == 0 {
		t.Cost = price * amount
	}
	if strings.TrimSpace(rt.Fee) != "" {
		fee, err := convert.Float(rt.Fee)
		if err != nil {
			return types.Trade{}, fmt.Errorf("trade %s: fee: %w", rt.ID, err)
		}
		t.Fee = fee
	}
	if strings.TrimSpace(rt.PnL) != "" {
		pnl, err := convert.Float(rt.PnL)
		if err != nil {
			return types.Trade{}, fmt.Errorf("trade %s: pnl: %w", rt.ID, err)
		}
		t.RealizedPnL = pnl
	}
	return t, nil
}

// validateBinance additionally checks the raw payload shape the SDK is
// expected to produce; a fill without commission bookkeeping or the
// taker/maker flag is malformed.
func validateBinance(rt exchange.RawTrade) (types.Trade, error) {
	t, err := validateGeneric(rt)
	if err != nil {
		return types.Trade{}, err
	}
	if len(rt.Info) > 0 {
		if !gjson.GetBytes(rt.Info, "commission").Exists() {
			return types.Trade{}, fmt.Errorf("trade %s: binance payload missing commission", rt.ID)
		}
		if !gjson.GetBytes(rt.Info, "isBuyer").Exists() {
			return types.Trade{}, fmt.Errorf("trade %s: binance payload missing isBuyer", rt.ID)
		}
	}
	return t, nil
}

// validateGate insists on a creation time; gate fills without one
// cannot be ordered and poison position matching.
func validateGate(rt exchange.RawTrade) (types.Trade, error) {
	t, err := validateGeneric(rt)
	if err != nil {
		return types.Trade{}, err
	}
	if rt.Timestamp <= 0 {
		return types.Trade{}, fmt.Errorf("trade %s: gate fill missing create time", rt.ID)
	}
	if len(rt.Info) > 0 {
		created := gjson.GetBytes(rt.Info, "create_time_ms")
		if !created.Exists() {
			created = gjson.GetBytes(rt.Info, "create_time")
		}
		if !created.Exists() {
			return types.Trade{}, fmt.Errorf("trade %s: gate payload missing create_time", rt.ID)
		}
	}
	return t, nil
}
