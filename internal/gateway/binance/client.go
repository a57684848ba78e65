// Package binance adapts the go-binance spot SDK to the generic
// trading-client surface. Binance has no account-wide trade dump, so
// FetchMyTrades requires a symbol and the fetch layer runs it in
// per-symbol mode.
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"tradesync/internal/gateway/exchange"
	symbolpkg "tradesync/internal/pkg/symbol"

	binance "github.com/adshao/go-binance/v2"
)

type Client struct {
	cfg Config
	api *binance.Client
}

func New(cfg Config) (*Client, error) {
	final := cfg.withDefaults()
	if strings.TrimSpace(final.APIKey) == "" || strings.TrimSpace(final.Secret) == "" {
		return nil, fmt.Errorf("binance: api key and secret are required")
	}
	api := binance.NewClient(final.APIKey, final.Secret)
	if final.BaseURL != "" {
		api.BaseURL = final.BaseURL
	}
	api.HTTPClient.Timeout = final.HTTPTimeout
	return &Client{cfg: final, api: api}, nil
}

func (c *Client) Name() string { return "binance" }

func (c *Client) FetchMyTrades(ctx context.Context, symbol string, since int64, limit int) ([]exchange.RawTrade, error) {
	if symbol == "" {
		return nil, exchange.ErrNotSupported
	}
	svc := c.api.NewListTradesService().Symbol(symbolpkg.ToBinance(symbol))
	if since > 0 {
		svc = svc.StartTime(since)
	}
	if limit > 0 {
		svc = svc.Limit(limit)
	}
	trades, err := svc.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance list trades %s: %w", symbol, err)
	}
	out := make([]exchange.RawTrade, 0, len(trades))
	for _, t := range trades {
		out = append(out, mapTrade(symbol, t))
	}
	return out, nil
}

func mapTrade(symbol string, t *binance.TradeV3) exchange.RawTrade {
	side := "sell"
	if t.IsBuyer {
		side = "buy"
	}
	raw, _ := json.Marshal(t)
	return exchange.RawTrade{
		ID:        strconv.FormatInt(t.ID, 10),
		OrderID:   strconv.FormatInt(t.OrderID, 10),
		Symbol:    symbol,
		Side:      side,
		Price:     t.Price,
		Amount:    t.Quantity,
		Cost:      t.QuoteQuantity,
		Fee:       t.Commission,
		FeeAsset:  t.CommissionAsset,
		Timestamp: t.Time,
		Info:      raw,
	}
}

func (c *Client) FetchOrders(ctx context.Context, symbol string, since int64, limit int) ([]exchange.RawOrder, error) {
	if symbol == "" {
		return nil, exchange.ErrNotSupported
	}
	svc := c.api.NewListOrdersService().Symbol(symbolpkg.ToBinance(symbol))
	if since > 0 {
		svc = svc.StartTime(since)
	}
	if limit > 0 {
		svc = svc.Limit(limit)
	}
	orders, err := svc.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance list orders %s: %w", symbol, err)
	}
	out := make([]exchange.RawOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, exchange.RawOrder{
			ID:        strconv.FormatInt(o.OrderID, 10),
			Symbol:    symbol,
			Side:      strings.ToLower(string(o.Side)),
			Status:    strings.ToLower(string(o.Status)),
			Price:     o.Price,
			Amount:    o.OrigQuantity,
			Filled:    o.ExecutedQuantity,
			Timestamp: o.Time,
		})
	}
	return out, nil
}

// FetchPositions is not applicable to a spot account.
func (c *Client) FetchPositions(ctx context.Context) ([]exchange.RawPosition, error) {
	return nil, exchange.ErrNotSupported
}

func (c *Client) FetchBalance(ctx context.Context) (exchange.Balance, error) {
	account, err := c.api.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance account: %w", err)
	}
	out := make(exchange.Balance, len(account.Balances))
	for _, b := range account.Balances {
		free, _ := strconv.ParseFloat(b.Free, 64)
		locked, _ := strconv.ParseFloat(b.Locked, 64)
		if total := free + locked; total > 0 {
			out[b.Asset] = total
		}
	}
	return out, nil
}

func (c *Client) LoadMarkets(ctx context.Context) (map[string]exchange.Market, error) {
	info, err := c.api.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance exchange info: %w", err)
	}
	out := make(map[string]exchange.Market, len(info.Symbols))
	for _, s := range info.Symbols {
		internal := s.BaseAsset + "/" + s.QuoteAsset
		out[internal] = exchange.Market{
			Symbol: internal,
			Base:   s.BaseAsset,
			Quote:  s.QuoteAsset,
			Active: s.Status == "TRADING",
		}
	}
	return out, nil
}
