package gateway

import (
	"fmt"
	"strings"
	"time"

	"tradesync/internal/creds"
	"tradesync/internal/gateway/binance"
	"tradesync/internal/gateway/exchange"
	"tradesync/internal/gateway/gate"
)

// Options carries per-venue overrides that do not belong in credentials.
type Options struct {
	BaseURL     string
	HTTPTimeout time.Duration
}

// NewTradingClient builds the concrete adapter for a credential set.
func NewTradingClient(c creds.Credentials, opts Options) (exchange.TradingClient, error) {
	switch strings.ToLower(strings.TrimSpace(c.Exchange)) {
	case "binance":
		return binance.New(binance.Config{
			APIKey:      c.APIKey,
			Secret:      c.Secret,
			BaseURL:     opts.BaseURL,
			HTTPTimeout: opts.HTTPTimeout,
		})
	case "gate", "gateio", "gate.io":
		return gate.New(gate.Config{
			APIKey:      c.APIKey,
			Secret:      c.Secret,
			RESTBaseURL: opts.BaseURL,
			HTTPTimeout: opts.HTTPTimeout,
		})
	default:
		return nil, fmt.Errorf("unsupported exchange: %s", c.Exchange)
	}
}
