// Package gate adapts the gate.io spot SDK to the generic
// trading-client surface. Gate answers an unscoped my-trades call with
// the whole account history, so the fetch layer runs it in bulk mode.
package gate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"tradesync/internal/gateway/exchange"
	symbolpkg "tradesync/internal/pkg/symbol"

	"github.com/antihax/optional"
	gateapi "github.com/gateio/gateapi-go/v7"
)

type Client struct {
	cfg  Config
	rest *gateapi.APIClient
}

func New(cfg Config) (*Client, error) {
	final := cfg.withDefaults()
	if strings.TrimSpace(final.APIKey) == "" || strings.TrimSpace(final.Secret) == "" {
		return nil, fmt.Errorf("gate: api key and secret are required")
	}
	conf := gateapi.NewConfiguration()
	if strings.TrimSpace(final.RESTBaseURL) != "" {
		conf.BasePath = strings.TrimSpace(final.RESTBaseURL)
	}
	conf.HTTPClient = &http.Client{Timeout: final.HTTPTimeout}
	return &Client{cfg: final, rest: gateapi.NewAPIClient(conf)}, nil
}

func (c *Client) Name() string { return "gate" }

func (c *Client) authCtx(ctx context.Context) context.Context {
	return context.WithValue(ctx, gateapi.ContextGateAPIV4, gateapi.GateAPIV4{
		Key:    c.cfg.APIKey,
		Secret: c.cfg.Secret,
	})
}

// FetchMyTrades with an empty symbol returns the full account history,
// which is what the bulk fetch strategy relies on.
func (c *Client) FetchMyTrades(ctx context.Context, symbol string, since int64, limit int) ([]exchange.RawTrade, error) {
	opts := &gateapi.ListMyTradesOpts{}
	if symbol != "" {
		opts.CurrencyPair = optional.NewString(symbolpkg.ToGate(symbol))
	}
	if since > 0 {
		opts.From = optional.NewInt64(since / 1000)
	}
	if limit > 0 {
		opts.Limit = optional.NewInt32(int32(limit))
	}
	trades, _, err := c.rest.SpotApi.ListMyTrades(c.authCtx(ctx), opts)
	if err != nil {
		return nil, fmt.Errorf("gate list my trades: %w", err)
	}
	out := make([]exchange.RawTrade, 0, len(trades))
	for _, t := range trades {
		out = append(out, mapTrade(t))
	}
	return out, nil
}

func mapTrade(t gateapi.Trade) exchange.RawTrade {
	raw, _ := json.Marshal(t)
	return exchange.RawTrade{
		ID:        t.Id,
		OrderID:   t.OrderId,
		Symbol:    symbolpkg.Normalize(t.CurrencyPair),
		Side:      strings.ToLower(t.Side),
		Price:     t.Price,
		Amount:    t.Amount,
		Fee:       t.Fee,
		FeeAsset:  t.FeeCurrency,
		Timestamp: parseCreateTime(t),
		Info:      raw,
	}
}

// parseCreateTime prefers the millisecond field, falling back to the
// second-resolution one older payloads carry.
func parseCreateTime(t gateapi.Trade) int64 {
	if ms := strings.TrimSpace(t.CreateTimeMs); ms != "" {
		if f, err := strconv.ParseFloat(ms, 64); err == nil {
			return int64(f)
		}
	}
	if s := strings.TrimSpace(t.CreateTime); s != "" {
		if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
			return sec * 1000
		}
	}
	return 0
}

func (c *Client) FetchOrders(ctx context.Context, symbol string, since int64, limit int) ([]exchange.RawOrder, error) {
	if symbol == "" {
		return nil, exchange.ErrNotSupported
	}
	opts := &gateapi.ListOrdersOpts{}
	if limit > 0 {
		opts.Limit = optional.NewInt32(int32(limit))
	}
	orders, _, err := c.rest.SpotApi.ListOrders(c.authCtx(ctx), symbolpkg.ToGate(symbol), "finished", opts)
	if err != nil {
		return nil, fmt.Errorf("gate list orders %s: %w", symbol, err)
	}
	out := make([]exchange.RawOrder, 0, len(orders))
	for _, o := range orders {
		var ts int64
		if sec, err := strconv.ParseInt(strings.TrimSpace(o.CreateTime), 10, 64); err == nil {
			ts = sec * 1000
		}
		if since > 0 && ts > 0 && ts <= since {
			continue
		}
		out = append(out, exchange.RawOrder{
			ID:        o.Id,
			Symbol:    symbolpkg.Normalize(o.CurrencyPair),
			Side:      strings.ToLower(o.Side),
			Status:    strings.ToLower(o.Status),
			Price:     o.Price,
			Amount:    o.Amount,
			Timestamp: ts,
		})
	}
	return out, nil
}

// FetchPositions is not applicable to a spot account.
func (c *Client) FetchPositions(ctx context.Context) ([]exchange.RawPosition, error) {
	return nil, exchange.ErrNotSupported
}

func (c *Client) FetchBalance(ctx context.Context) (exchange.Balance, error) {
	accounts, _, err := c.rest.SpotApi.ListSpotAccounts(c.authCtx(ctx), nil)
	if err != nil {
		return nil, fmt.Errorf("gate spot accounts: %w", err)
	}
	out := make(exchange.Balance, len(accounts))
	for _, a := range accounts {
		avail, _ := strconv.ParseFloat(a.Available, 64)
		locked, _ := strconv.ParseFloat(a.Locked, 64)
		if total := avail + locked; total > 0 {
			out[strings.ToUpper(a.Currency)] = total
		}
	}
	return out, nil
}

func (c *Client) LoadMarkets(ctx context.Context) (map[string]exchange.Market, error) {
	pairs, _, err := c.rest.SpotApi.ListCurrencyPairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("gate currency pairs: %w", err)
	}
	out := make(map[string]exchange.Market, len(pairs))
	for _, p := range pairs {
		internal := strings.ToUpper(p.Base) + "/" + strings.ToUpper(p.Quote)
		out[internal] = exchange.Market{
			Symbol: internal,
			Base:   strings.ToUpper(p.Base),
			Quote:  strings.ToUpper(p.Quote),
			Active: strings.EqualFold(p.TradeStatus, "tradable"),
		}
	}
	return out, nil
}
