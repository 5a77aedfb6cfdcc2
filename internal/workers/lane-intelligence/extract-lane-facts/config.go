// internal/workers/lane-intelligence/extract-lane-facts/config.go
package extractlanefacts

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
