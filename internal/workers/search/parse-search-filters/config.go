// internal/workers/search/parse-search-filters/config.go
package parsesearchfilters

import "time"

// Pure state transformation, no external calls; config kept for consistency
type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
