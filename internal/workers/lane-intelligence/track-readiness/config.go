// internal/workers/lane-intelligence/track-readiness/config.go
package trackreadiness

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
