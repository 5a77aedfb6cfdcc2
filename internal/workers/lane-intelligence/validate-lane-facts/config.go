// internal/workers/lane-intelligence/validate-lane-facts/config.go
package validatelanefacts

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
