// internal/workers/rate-intelligence/build-spot-matrix/config.go
package buildspotmatrix

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
