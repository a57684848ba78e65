package fetcher

import (
	"time"

	"tradesync/internal/types"

	"github.com/shopspring/decimal"
)

// DefaultMinNotionalUSD drops dust fills below ten cents of quote
// value unless configured otherwise.
const DefaultMinNotionalUSD = 0.10

// FilterConfig is the per-exchange configurable stage of the pipeline,
// applied after structural validation.
type FilterConfig struct {
	MinAmount        float64
	RequireTimestamp bool
	RequireOrderID   bool
	Predicate        func(types.Trade) bool
}

// defaultFilters supplies sane per-exchange settings; exchanges without
// an entry require timestamps and ids but set no amount floor.
var defaultFilters = map[string]FilterConfig{
	"binance": {RequireTimestamp: true, RequireOrderID: true},
	"gate":    {RequireTimestamp: true, RequireOrderID: true, MinAmount: 1e-8},
}

func filterConfigFor(name string) FilterConfig {
	if f, ok := defaultFilters[name]; ok {
		return f
	}
	return FilterConfig{RequireTimestamp: true, RequireOrderID: true}
}

func (f FilterConfig) keep(t types.Trade) bool {
	if f.MinAmount > 0 && t.Amount < f.MinAmount {
		return false
	}
	if f.RequireTimestamp && t.Timestamp <= 0 {
		return false
	}
	if f.RequireOrderID && t.OrderID == "" {
		return false
	}
	if f.Predicate != nil && !f.Predicate(t) {
		return false
	}
	return true
}

// BusinessFilter is the final stage: economically meaningless fills are
// dropped regardless of which exchange produced them.
type BusinessFilter struct {
	MinNotionalUSD float64
	MaxAge         time.Duration // 0 = no age limit
}

func (f BusinessFilter) keep(t types.Trade, now time.Time) bool {
	min := f.MinNotionalUSD
	if min < 0 {
		min = 0
	}
	// decimal comparison: notional thresholds like 0.10 should not be
	// defeated by float representation noise.
	notional := decimal.NewFromFloat(t.Notional())
	if notional.LessThan(decimal.NewFromFloat(min)) {
		return false
	}
	if f.MaxAge > 0 && t.Timestamp > 0 {
		oldest := now.Add(-f.MaxAge).UnixMilli()
		if t.Timestamp < oldest {
			return false
		}
	}
	return true
}
