// Package symbol normalizes pair symbols between the internal
// "BASE/QUOTE" form and per-exchange wire formats.
package symbol

import "strings"

type Symbol struct {
	Base  string
	Quote string
}

func (s Symbol) Internal() string {
	if s.Base == "" || s.Quote == "" {
		return ""
	}
	return s.Base + "/" + s.Quote
}

// quoteCurrencies is ordered longest-first so that e.g. BTCUSDT splits
// as BTC/USDT rather than BTCU/SDT.
var quoteCurrencies = []string{"USDT", "USDC", "BUSD", "TUSD", "BTC", "ETH", "BNB"}

// Parse accepts "BTC/USDT", "BTC_USDT", "BTCUSDT" or "BTC/USDT:USDT"
// and returns the split pair. Zero value when the input cannot be split.
func Parse(s string) Symbol {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Symbol{}
	}
	if idx := strings.Index(s, ":"); idx >= 0 {
		s = s[:idx]
	}
	for _, sep := range []string{"/", "_", "-"} {
		if parts := strings.SplitN(s, sep, 2); len(parts) == 2 {
			return Symbol{Base: strings.TrimSpace(parts[0]), Quote: strings.TrimSpace(parts[1])}
		}
	}
	for _, quote := range quoteCurrencies {
		if strings.HasSuffix(s, quote) && len(s) > len(quote) {
			return Symbol{Base: s[:len(s)-len(quote)], Quote: quote}
		}
	}
	return Symbol{}
}

// Normalize returns the internal form of any recognized spelling, or ""
// for unparseable input.
func Normalize(s string) string {
	return Parse(s).Internal()
}

// ToBinance renders the internal form as a concatenated binance symbol.
func ToBinance(internal string) string {
	sym := Parse(internal)
	if sym.Base == "" {
		return ""
	}
	return sym.Base + sym.Quote
}

// ToGate renders the internal form as a gate currency pair.
func ToGate(internal string) string {
	sym := Parse(internal)
	if sym.Base == "" {
		return ""
	}
	return sym.Base + "_" + sym.Quote
}
