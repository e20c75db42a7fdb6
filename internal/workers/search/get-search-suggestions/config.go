// internal/workers/search/get-search-suggestions/config.go
package getsearchsuggestions

import "time"

type Config struct {
	Timeout     time.Duration
	CacheTTL    time.Duration
	MaxResults  int
	TitleIndex  string
	MinQueryLen int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     10 * time.Second,
		CacheTTL:    5 * time.Minute,
		MaxResults:  10,
		TitleIndex:  "property-titles",
		MinQueryLen: 2,
	}
}
