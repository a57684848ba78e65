package exchange

import "time"

// FetchStyle selects the trade-history strategy for a venue.
type FetchStyle int

const (
	// StylePerSymbol venues only answer scoped per-pair history calls.
	StylePerSymbol FetchStyle = iota
	// StyleBulk venues return the whole account history in one call.
	StyleBulk
)

func (s FetchStyle) String() string {
	if s == StyleBulk {
		return "bulk"
	}
	return "per-symbol"
}

// Capability is the static fetch/rate-limit profile of one exchange.
// Read-only; looked up once per client construction.
type Capability struct {
	FetchStyle   FetchStyle
	RateInterval time.Duration // minimum gap between history calls
	HonorsSince  bool          // server-side since filtering claimed; we re-filter anyway
	MaxPageSize  int
	CacheTTL     time.Duration // bulk result lifetime
}

var capabilities = map[string]Capability{
	"binance": {
		FetchStyle:   StylePerSymbol,
		RateInterval: 250 * time.Millisecond,
		HonorsSince:  true,
		MaxPageSize:  1000,
		CacheTTL:     5 * time.Minute,
	},
	"gate": {
		FetchStyle:   StyleBulk,
		RateInterval: 500 * time.Millisecond,
		HonorsSince:  false,
		MaxPageSize:  1000,
		CacheTTL:     5 * time.Minute,
	},
	"kraken": {
		FetchStyle:   StyleBulk,
		RateInterval: 3 * time.Second,
		HonorsSince:  true,
		MaxPageSize:  50,
		CacheTTL:     5 * time.Minute,
	},
	"bitmart": {
		FetchStyle:   StylePerSymbol,
		RateInterval: time.Second,
		HonorsSince:  false,
		MaxPageSize:  200,
		CacheTTL:     5 * time.Minute,
	},
}

var defaultCapability = Capability{
	FetchStyle:   StylePerSymbol,
	RateInterval: time.Second,
	HonorsSince:  false,
	MaxPageSize:  500,
	CacheTTL:     5 * time.Minute,
}

// LookupCapability returns the descriptor for an exchange id, falling
// back to a conservative per-symbol profile for unknown venues.
func LookupCapability(name string) Capability {
	if c, ok := capabilities[name]; ok {
		return c
	}
	return defaultCapability
}
