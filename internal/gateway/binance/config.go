package binance

import "time"

type Config struct {
	APIKey      string
	Secret      string
	BaseURL     string // override for testnets/mirrors, empty = SDK default
	HTTPTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 15 * time.Second
	}
	return c
}
