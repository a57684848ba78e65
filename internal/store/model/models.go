package model

import "gorm.io/datatypes"

type PairModel struct {
	ID       int64  `gorm:"column:id;primaryKey"`
	UserID   string `gorm:"column:user_id;uniqueIndex:idx_pair,priority:1"`
	Exchange string `gorm:"column:exchange;uniqueIndex:idx_pair,priority:2"`
	Symbol   string `gorm:"column:symbol;uniqueIndex:idx_pair,priority:3"`
}

func (PairModel) TableName() string { return "pairs" }

type OrderModel struct {
	ID            int64          `gorm:"column:id;primaryKey"`
	UserID        string         `gorm:"column:user_id;uniqueIndex:idx_order,priority:1"`
	Exchange      string         `gorm:"column:exchange;uniqueIndex:idx_order,priority:2"`
	OrderRef      string         `gorm:"column:order_ref;uniqueIndex:idx_order,priority:3"`
	PairID        int64          `gorm:"column:pair_id;index"`
	Symbol        string         `gorm:"column:symbol;index"`
	Side          string         `gorm:"column:side"`
	Amount        float64        `gorm:"column:amount"`
	AvgPrice      float64        `gorm:"column:avg_price"`
	TotalCost     float64        `gorm:"column:total_cost"`
	TotalFee      float64        `gorm:"column:total_fee"`
	MinPrice      float64        `gorm:"column:min_price"`
	MaxPrice      float64        `gorm:"column:max_price"`
	PnL           float64        `gorm:"column:pnl"`
	Timestamp     int64          `gorm:"column:timestamp;index"`
	TradeCount    int            `gorm:"column:trade_count"`
	TradesJSON    datatypes.JSON `gorm:"column:trades_json;type:TEXT"`
	PositionID    string         `gorm:"column:position_id;index"`
	CreatedAtUnix int64          `gorm:"column:created_at"`
}

func (OrderModel) TableName() string { return "orders" }

type PositionModel struct {
	ID            string         `gorm:"column:id;primaryKey"`
	UserID        string         `gorm:"column:user_id;index"`
	Exchange      string         `gorm:"column:exchange;index"`
	PairID        int64          `gorm:"column:pair_id;index"`
	Symbol        string         `gorm:"column:symbol;index"`
	Direction     string         `gorm:"column:direction"`
	Shape         string         `gorm:"column:shape"`
	Quantity      float64        `gorm:"column:quantity"`
	BuyCost       float64        `gorm:"column:buy_cost"`
	SellCost      float64        `gorm:"column:sell_cost"`
	RealizedPnL   float64        `gorm:"column:realized_pnl"`
	TotalFee      float64        `gorm:"column:total_fee"`
	OpenedAt      int64          `gorm:"column:opened_at;index"`
	ClosedAt      int64          `gorm:"column:closed_at"`
	DurationMs    int64          `gorm:"column:duration_ms"`
	Partial       bool           `gorm:"column:partial"`
	OrderRefsJSON datatypes.JSON `gorm:"column:order_refs_json;type:TEXT"`
	CreatedAtUnix int64          `gorm:"column:created_at"`
}

func (PositionModel) TableName() string { return "positions" }

type SyncTimeModel struct {
	ID           int64  `gorm:"column:id;primaryKey"`
	UserID       string `gorm:"column:user_id;uniqueIndex:idx_sync,priority:1"`
	Exchange     string `gorm:"column:exchange;uniqueIndex:idx_sync,priority:2"`
	LastSyncedAt int64  `gorm:"column:last_synced_at"`
}

func (SyncTimeModel) TableName() string { return "sync_times" }
