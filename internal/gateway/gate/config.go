package gate

import "time"

type Config struct {
	APIKey      string
	Secret      string
	RESTBaseURL string // empty = production API v4
	HTTPTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 15 * time.Second
	}
	return c
}
