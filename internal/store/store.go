// Package store persists reconstructed orders and positions behind
// narrow save/query contracts. It owns pair lookup/creation, the
// numeric coercion boundary and order-position linking; batch saves
// tolerate per-entity failure.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tradesync/internal/types"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradesync/internal/store/model"
)

// OrderRepository saves aggregated orders. Entities that fail coercion
// or the insert are logged and omitted from the returned set; the batch
// itself never fails on one bad row.
type OrderRepository interface {
	SaveAll(ctx context.Context, orders []types.Order, userID string) ([]types.Order, error)
	KnownPairs(ctx context.Context, userID, exchange string) ([]string, error)
}

// PositionRepository saves positions and links their order rows.
type PositionRepository interface {
	SaveAll(ctx context.Context, positions []types.Position, userID string) ([]types.Position, error)
}

// SyncTimeStore records the per-exchange incremental sync cursor.
type SyncTimeStore interface {
	GetLastSyncTimes(ctx context.Context, userID string) (map[string]int64, error)
	UpdateLastSyncTimes(ctx context.Context, userID string, exchanges map[string]int64) error
}

// Store backs all three contracts with one SQLite database.
type Store struct {
	db *gorm.DB
}

type orderRepo struct{ s *Store }

func (r orderRepo) SaveAll(ctx context.Context, orders []types.Order, userID string) ([]types.Order, error) {
	return r.s.saveOrders(ctx, orders, userID)
}

func (r orderRepo) KnownPairs(ctx context.Context, userID, exch string) ([]string, error) {
	return r.s.knownPairs(ctx, userID, exch)
}

type positionRepo struct{ s *Store }

func (r positionRepo) SaveAll(ctx context.Context, positions []types.Position, userID string) ([]types.Position, error) {
	return r.s.savePositions(ctx, positions, userID)
}

// Orders returns the order repository view of the store.
func (s *Store) Orders() OrderRepository { return orderRepo{s} }

// Positions returns the position repository view of the store.
func (s *Store) Positions() PositionRepository { return positionRepo{s} }

func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("store: database path cannot be empty")
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}
	models := []interface{}{
		&model.PairModel{},
		&model.OrderModel{},
		&model.PositionModel{},
		&model.SyncTimeModel{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite + WAL: keep the pool tiny to avoid lock contention.
	sqlDB.SetMaxOpenConns(2)
	sqlDB.SetMaxIdleConns(2)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ensurePair returns the pair row id, creating it on first sight.
func (s *Store) ensurePair(ctx context.Context, userID, exch, symbol string) (int64, error) {
	var pair model.PairModel
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND exchange = ? AND symbol = ?", userID, exch, symbol).
		First(&pair).Error
	if err == nil {
		return pair.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, err
	}
	pair = model.PairModel{UserID: userID, Exchange: exch, Symbol: symbol}
	if err := s.db.WithContext(ctx).Create(&pair).Error; err != nil {
		return 0, err
	}
	return pair.ID, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
