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

// savePositions mirrors saveOrders and additionally links the member
// order rows to their position.
func (s *Store) savePositions(ctx context.Context, positions []types.Position, userID string) ([]types.Position, error) {
	saved := make([]types.Position, 0, len(positions))
	for _, p := range positions {
		row, err := s.positionRow(ctx, p, userID)
		if err != nil {
			logger.Warnf("store: skipping position %s %s: %v", p.Exchange, p.Symbol, err)
			continue
		}
		err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(row).Error
		if err != nil {
			logger.Warnf("store: saving position %s %s failed: %v", p.Exchange, p.Symbol, err)
			continue
		}
		if err := s.linkOrders(ctx, p, userID); err != nil {
			logger.Warnf("store: linking orders for position %s failed: %v", p.ID, err)
		}
		saved = append(saved, p)
	}
	return saved, nil
}

func (s *Store) positionRow(ctx context.Context, p types.Position, userID string) (*model.PositionModel, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("missing position id")
	}
	if len(p.Orders) == 0 {
		return nil, fmt.Errorf("position without orders")
	}
	pairID, err := s.ensurePair(ctx, userID, p.Exchange, p.Symbol)
	if err != nil {
		return nil, fmt.Errorf("pair lookup: %w", err)
	}
	row := &model.PositionModel{
		ID:            p.ID,
		UserID:        userID,
		Exchange:      p.Exchange,
		PairID:        pairID,
		Symbol:        p.Symbol,
		Direction:     p.Direction,
		Shape:         p.Shape,
		OpenedAt:      p.OpenedAt,
		ClosedAt:      p.ClosedAt,
		DurationMs:    p.DurationMs,
		Partial:       p.Partial,
		CreatedAtUnix: time.Now().Unix(),
	}
	fields := []struct {
		name string
		src  float64
		dst  *float64
	}{
		{"quantity", p.Quantity, &row.Quantity},
		{"buy_cost", p.TotalBuyCost, &row.BuyCost},
		{"sell_cost", p.TotalSellCost, &row.SellCost},
		{"realized_pnl", p.RealizedPnL, &row.RealizedPnL},
		{"total_fee", p.TotalFee, &row.TotalFee},
	}
	for _, f := range fields {
		v, err := convert.Finite(f.name, f.src)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	refs, err := json.Marshal(p.OrderIDs())
	if err != nil {
		return nil, fmt.Errorf("encoding order refs: %w", err)
	}
	row.OrderRefsJSON = refs
	return row, nil
}

// linkOrders stamps the position id onto the member order rows.
func (s *Store) linkOrders(ctx context.Context, p types.Position, userID string) error {
	refs := p.OrderIDs()
	if len(refs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("user_id = ? AND exchange = ? AND order_ref IN ?", userID, p.Exchange, refs).
		Update("position_id", p.ID).Error
}
