// internal/workers/rate-intelligence/fetch-rate-quotes/config.go
package fetchratequotes

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 45 * time.Second,
	}
}
