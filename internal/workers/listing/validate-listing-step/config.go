// internal/workers/listing/validate-listing-step/config.go
package validatelistingstep

import "time"

// Pure validation, no external calls; config kept for consistency
type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
