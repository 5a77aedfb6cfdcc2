// internal/workers/data-access/query-chat-insights/config.go
package querychatinsights

import "time"

type Config struct {
	Timeout time.Duration
	Index   string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 20 * time.Second,
		Index:   "chat-insights",
	}
}
