// internal/workers/search/execute-property-search/config.go
package executepropertysearch

import "time"

type Config struct {
	Timeout      time.Duration
	DefaultLimit int
	MaxLimit     int
	LatestLimit  int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		DefaultLimit: 50,
		MaxLimit:     1000,
		LatestLimit:  50,
	}
}
