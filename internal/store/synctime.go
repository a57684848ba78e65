package store

import (
	"context"

	"tradesync/internal/store/model"

	"gorm.io/gorm/clause"
)

// GetLastSyncTimes returns the per-exchange cursor (epoch ms) for a
// user. Exchanges never synced are simply absent from the map.
func (s *Store) GetLastSyncTimes(ctx context.Context, userID string) (map[string]int64, error) {
	var rows []model.SyncTimeModel
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Exchange] = r.LastSyncedAt
	}
	return out, nil
}

// UpdateLastSyncTimes upserts the cursor for each exchange.
func (s *Store) UpdateLastSyncTimes(ctx context.Context, userID string, exchanges map[string]int64) error {
	for exch, ts := range exchanges {
		row := model.SyncTimeModel{UserID: userID, Exchange: exch, LastSyncedAt: ts}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "exchange"}},
			UpdateAll: true,
		}).Create(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}
