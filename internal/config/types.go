package config

// Config is the top-level configuration carrier.
type Config struct {
	App   AppConfig   `toml:"app"`
	Sync  SyncConfig  `toml:"sync"`
	Fetch FetchConfig `toml:"fetch"`
}

type AppConfig struct {
	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
	DBPath   string `toml:"db_path"`
}

// SyncConfig drives the orchestrator: whose history, which quotes to
// cross held assets with, which matching preset, and an optional watch
// interval ("30m", "1h") for daemon mode.
type SyncConfig struct {
	UserID          string   `toml:"user_id"`
	CredentialsPath string   `toml:"credentials_path"`
	QuoteCurrencies []string `toml:"quote_currencies"`
	Preset          string   `toml:"preset"`
	WatchInterval   string   `toml:"watch_interval"`
}

// FetchConfig tunes the fetch layer across all exchanges.
type FetchConfig struct {
	MinNotionalUSD         float64 `toml:"min_notional_usd"`
	MaxAgeDays             int     `toml:"max_age_days"`
	BreakerThreshold       int     `toml:"breaker_threshold"`
	BreakerCooldownSeconds int     `toml:"breaker_cooldown_seconds"`
	HTTPTimeoutSeconds     int     `toml:"http_timeout_seconds"`
}
