// internal/workers/search/get-search-suggestions/cache.go
package getsearchsuggestions

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "suggestions:"

// SuggestionCache is a TTL cache over Redis keyed by the lowercased query
// text. Serving stale entries up to the TTL is fine; suggestions have no
// consistency requirement with the listing data.
type SuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSuggestionCache(client *redis.Client, ttl time.Duration) *SuggestionCache {
	return &SuggestionCache{client: client, ttl: ttl}
}

func cacheKey(query string) string {
	return cacheKeyPrefix + strings.ToLower(strings.TrimSpace(query))
}

// Get returns the cached suggestions for a query, or (nil, false) on a miss
// or any cache error.
func (c *SuggestionCache) Get(ctx context.Context, query string) ([]Suggestion, bool) {
	raw, err := c.client.Get(ctx, cacheKey(query)).Result()
	if err != nil {
		return nil, false
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return nil, false
	}
	return suggestions, true
}

// Set stores suggestions under the query key with the configured TTL.
func (c *SuggestionCache) Set(ctx context.Context, query string, suggestions []Suggestion) error {
	raw, err := json.Marshal(suggestions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(query), raw, c.ttl).Err()
}

// Clear removes every cached suggestion entry.
func (c *SuggestionCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, cacheKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
