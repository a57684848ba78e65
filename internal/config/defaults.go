package config

const (
	defaultLogLevel        = "info"
	defaultDBPath          = "data/tradesync.db"
	defaultUserID          = "local"
	defaultCredentialsPath = "configs/credentials.json"
	defaultPreset          = "conservative"
	defaultMinNotionalUSD  = 0.10
	defaultBreakerLimit    = 5
	defaultBreakerCooldown = 60
	defaultHTTPTimeout     = 15
)

func (c *Config) applyDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = defaultLogLevel
	}
	if c.App.DBPath == "" {
		c.App.DBPath = defaultDBPath
	}
	if c.Sync.UserID == "" {
		c.Sync.UserID = defaultUserID
	}
	if c.Sync.CredentialsPath == "" {
		c.Sync.CredentialsPath = defaultCredentialsPath
	}
	if len(c.Sync.QuoteCurrencies) == 0 {
		c.Sync.QuoteCurrencies = []string{"USDT", "USDC"}
	}
	if c.Sync.Preset == "" {
		c.Sync.Preset = defaultPreset
	}
	if c.Fetch.MinNotionalUSD == 0 {
		c.Fetch.MinNotionalUSD = defaultMinNotionalUSD
	}
	if c.Fetch.BreakerThreshold == 0 {
		c.Fetch.BreakerThreshold = defaultBreakerLimit
	}
	if c.Fetch.BreakerCooldownSeconds == 0 {
		c.Fetch.BreakerCooldownSeconds = defaultBreakerCooldown
	}
	if c.Fetch.HTTPTimeoutSeconds == 0 {
		c.Fetch.HTTPTimeoutSeconds = defaultHTTPTimeout
	}
}
