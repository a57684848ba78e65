package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in    string
		base  string
		quote string
	}{
		{"BTC/USDT", "BTC", "USDT"},
		{"btc/usdt", "BTC", "USDT"},
		{"BTC_USDT", "BTC", "USDT"},
		{"BTC-USDT", "BTC", "USDT"},
		{"BTCUSDT", "BTC", "USDT"},
		{"ETHBTC", "ETH", "BTC"},
		{"BTC/USDT:USDT", "BTC", "USDT"},
		{"DOGEUSDC", "DOGE", "USDC"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := Parse(tc.in)
			assert.Equal(t, tc.base, got.Base)
			assert.Equal(t, tc.quote, got.Quote)
		})
	}
}

func TestParse_Unrecognized(t *testing.T) {
	assert.Equal(t, Symbol{}, Parse(""))
	assert.Equal(t, Symbol{}, Parse("USDT"))
	assert.Equal(t, Symbol{}, Parse("XYZ"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "BTC/USDT", Normalize("BTCUSDT"))
	assert.Equal(t, "BTC/USDT", Normalize("btc_usdt"))
	assert.Equal(t, "", Normalize("???"))
}

func TestWireFormats(t *testing.T) {
	assert.Equal(t, "BTCUSDT", ToBinance("BTC/USDT"))
	assert.Equal(t, "BTC_USDT", ToGate("BTC/USDT"))
	assert.Equal(t, "", ToBinance("nope"))
	assert.Equal(t, "", ToGate(""))
}
