// internal/workers/lane-intelligence/generate-recommendation/config.go
package generaterecommendation

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
