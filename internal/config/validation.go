package config

import (
	"fmt"
	"strings"

	"tradesync/internal/aggregate"
	"tradesync/internal/scheduler"
)

func validate(c *Config) error {
	if strings.TrimSpace(c.Sync.UserID) == "" {
		return fmt.Errorf("sync.user_id cannot be empty")
	}
	if _, err := aggregate.PresetConfig(c.Sync.Preset); err != nil {
		return fmt.Errorf("sync.preset: %w", err)
	}
	if c.Sync.WatchInterval != "" {
		if _, ok := scheduler.ParseIntervalDuration(c.Sync.WatchInterval); !ok {
			return fmt.Errorf("sync.watch_interval %q is not a valid interval", c.Sync.WatchInterval)
		}
	}
	if c.Fetch.MinNotionalUSD < 0 {
		return fmt.Errorf("fetch.min_notional_usd must be >= 0")
	}
	if c.Fetch.MaxAgeDays < 0 {
		return fmt.Errorf("fetch.max_age_days must be >= 0")
	}
	return nil
}
