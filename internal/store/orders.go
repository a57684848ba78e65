package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tradesync/internal/logger"
	"tradesync/internal/pkg/convert"
	"tradesync/internal/store/model"
	"tradesync/internal/types"

	"gorm.io/gorm/clause"
)

// saveOrders upserts one row per order, keyed by (user, exchange,
// order ref) so re-syncs replace instead of duplicating. A row that
// fails coercion or the write is logged and skipped.
func (s *Store) saveOrders(ctx context.Context, orders []types.Order, userID string) ([]types.Order, error) {
	saved := make([]types.Order, 0, len(orders))
	for _, o := range orders {
		row, err := s.orderRow(ctx, o, userID)
		if err != nil {
			logger.Warnf("store: skipping order %s/%s: %v", o.Exchange, o.OrderID, err)
			continue
		}
		err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "exchange"}, {Name: "order_ref"}},
			UpdateAll: true,
		}).Create(row).Error
		if err != nil {
			logger.Warnf("store: saving order %s/%s failed: %v", o.Exchange, o.OrderID, err)
			continue
		}
		saved = append(saved, o)
	}
	return saved, nil
}

// orderRow is the coercion boundary for orders: every numeric field is
// checked here and a genuinely invalid value rejects the row instead of
// being written as zero.
func (s *Store) orderRow(ctx context.Context, o types.Order, userID string) (*model.OrderModel, error) {
	if o.OrderID == "" {
		return nil, fmt.Errorf("missing order ref")
	}
	pairID, err := s.ensurePair(ctx, userID, o.Exchange, o.Symbol)
	if err != nil {
		return nil, fmt.Errorf("pair lookup: %w", err)
	}
	row := &model.OrderModel{
		UserID:        userID,
		Exchange:      o.Exchange,
		OrderRef:      o.OrderID,
		PairID:        pairID,
		Symbol:        o.Symbol,
		Side:          o.Side,
		Timestamp:     o.Timestamp,
		TradeCount:    len(o.Trades),
		PositionID:    o.PositionID,
		CreatedAtUnix: time.Now().Unix(),
	}
	fields := []struct {
		name string
		src  float64
		dst  *float64
	}{
		{"amount", o.Amount, &row.Amount},
		{"avg_price", o.AvgPrice, &row.AvgPrice},
		{"total_cost", o.TotalCost, &row.TotalCost},
		{"total_fee", o.TotalFee, &row.TotalFee},
		{"min_price", o.MinPrice, &row.MinPrice},
		{"max_price", o.MaxPrice, &row.MaxPrice},
		{"pnl", o.PnL, &row.PnL},
	}
	for _, f := range fields {
		v, err := convert.Finite(f.name, f.src)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	trades, err := json.Marshal(o.Trades)
	if err != nil {
		return nil, fmt.Errorf("encoding trades: %w", err)
	}
	row.TradesJSON = trades
	return row, nil
}

// knownPairs lists the pairs a user has previously synced orders for
// on one exchange; the orchestrator uses an empty answer as the
// full-sync trigger.
func (s *Store) knownPairs(ctx context.Context, userID, exch string) ([]string, error) {
	var symbols []string
	err := s.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Distinct("symbol").
		Where("user_id = ? AND exchange = ?", userID, exch).
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}
