// internal/workers/communication/notify-recommendation/config.go
package notifyrecommendation

import "time"

type Config struct {
	Timeout     time.Duration
	FromAddress string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     15 * time.Second,
		FromAddress: "recommendations@lane-workers.io",
	}
}
