package fetcher

import (
	"testing"

	"tradesync/internal/gateway/exchange"
	"tradesync/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() exchange.RawTrade {
	return exchange.RawTrade{
		ID:        "t1",
		OrderID:   "o1",
		Symbol:    "BTC/USDT",
		Side:      "BUY",
		Price:     "50000.5",
		Amount:    "0.25",
		Fee:       "0.0001",
		FeeAsset:  "BNB",
		Timestamp: 1700000000000,
	}
}

func TestValidateGeneric_HappyPath(t *testing.T) {
	got, err := validateGeneric(validRaw())
	require.NoError(t, err)
	assert.Equal(t, types.SideBuy, got.Side)
	assert.InDelta(t, 50000.5, got.Price, 1e-9)
	assert.InDelta(t, 0.25, got.Amount, 1e-9)
	assert.InDelta(t, 50000.5*0.25, got.Cost, 1e-6)
	assert.InDelta(t, 0.0001, got.Fee, 1e-12)
	assert.Equal(t, "BNB", got.FeeCurrency)
}

func TestValidateGeneric_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*exchange.RawTrade)
	}{
		{"missing id", func(rt *exchange.RawTrade) { rt.ID = "" }},
		{"missing order id", func(rt *exchange.RawTrade) { rt.OrderID = " " }},
		{"missing symbol", func(rt *exchange.RawTrade) { rt.Symbol = "" }},
		{"bad side", func(rt *exchange.RawTrade) { rt.Side = "hold" }},
		{"unparseable price", func(rt *exchange.RawTrade) { rt.Price = "fifty" }},
		{"zero price", func(rt *exchange.RawTrade) { rt.Price = "0" }},
		{"negative amount", func(rt *exchange.RawTrade) { rt.Amount = "-1" }},
		{"empty amount", func(rt *exchange.RawTrade) { rt.Amount = "" }},
		{"unparseable fee", func(rt *exchange.RawTrade) { rt.Fee = "free" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rt := validRaw()
			tc.mutate(&rt)
			_, err := validateGeneric(rt)
			assert.Error(t, err)
		})
	}
}

func TestValidateBinance_PayloadShape(t *testing.T) {
	rt := validRaw()
	rt.Info = []byte(`{"commission":"0.0001","isBuyer":true}`)
	_, err := validateBinance(rt)
	assert.NoError(t, err)

	rt.Info = []byte(`{"isBuyer":true}`)
	_, err = validateBinance(rt)
	assert.ErrorContains(t, err, "commission")

	rt.Info = []byte(`{"commission":"0.0001"}`)
	_, err = validateBinance(rt)
	assert.ErrorContains(t, err, "isBuyer")
}

func TestValidateGate_RequiresCreateTime(t *testing.T) {
	rt := validRaw()
	rt.Timestamp = 0
	_, err := validateGate(rt)
	assert.Error(t, err)

	rt = validRaw()
	rt.Info = []byte(`{"create_time_ms":"1700000000123"}`)
	_, err = validateGate(rt)
	assert.NoError(t, err)

	rt.Info = []byte(`{"currency_pair":"BTC_USDT"}`)
	_, err = validateGate(rt)
	assert.ErrorContains(t, err, "create_time")
}

func TestValidatorFor_FallsBackToGeneric(t *testing.T) {
	v := validatorFor("kraken")
	got, err := v(validRaw())
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
}
