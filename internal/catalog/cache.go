package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultCacheTTL is how long a downloaded export stays valid
const DefaultCacheTTL = 24 * time.Hour

// Cache keeps downloaded catalog exports on disk between runs
type Cache struct {
	Exports  map[string][]Entry   `json:"exports"`   // export URL → entries
	CachedAt map[string]time.Time `json:"cached_at"` // export URL → download time
	TTL      time.Duration        `json:"-"`         // Cache TTL (not serialized)

	path string
}

// NewCache creates an empty cache that saves to path
func NewCache(path string) *Cache {
	return &Cache{
		Exports:  make(map[string][]Entry),
		CachedAt: make(map[string]time.Time),
		TTL:      DefaultCacheTTL,
		path:     path,
	}
}

// LoadCache reads the cache file at path. A missing file yields an empty cache.
func LoadCache(path string) (*Cache, error) {
	c := NewCache(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading catalog cache: %w", err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing catalog cache: %w", err)
	}

	// Ensure maps are initialized
	if c.Exports == nil {
		c.Exports = make(map[string][]Entry)
	}
	if c.CachedAt == nil {
		c.CachedAt = make(map[string]time.Time)
	}

	return c, nil
}

// Get returns the cached entries for url if present and not expired
func (c *Cache) Get(url string) ([]Entry, bool) {
	entries, exists := c.Exports[url]
	if !exists {
		return nil, false
	}

	cachedTime, hasTime := c.CachedAt[url]
	if !hasTime || time.Since(cachedTime) > c.TTL {
		delete(c.Exports, url)
		delete(c.CachedAt, url)
		return nil, false
	}

	return entries, true
}

// Set stores the entries downloaded from url
func (c *Cache) Set(url string, entries []Entry) {
	c.Exports[url] = entries
	c.CachedAt[url] = time.Now()
}

// CleanExpired removes expired entries from cache
func (c *Cache) CleanExpired() int {
	removed := 0
	now := time.Now()

	for url, cachedTime := range c.CachedAt {
		if now.Sub(cachedTime) > c.TTL {
			delete(c.Exports, url)
			delete(c.CachedAt, url)
			removed++
		}
	}

	return removed
}

// Size returns the number of cached exports
func (c *Cache) Size() int {
	return len(c.Exports)
}

// Save writes the cache back to its file
func (c *Cache) Save() error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating cache directory: %w", err)
		}
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding catalog cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("writing catalog cache: %w", err)
	}

	return nil
}
