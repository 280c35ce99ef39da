package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pfrederiksen/fgo-events/internal/logger"
)

const (
	ItemURL   = "https://api.atlasacademy.io/export/JP/nice_item.json"
	EquipURL  = "https://api.atlasacademy.io/export/JP/nice_equip.json"
	ItemNAURL = "https://api.atlasacademy.io/export/NA/nice_item.json"
	UserAgent = "fgo-events/1.0 (github.com/pfrederiksen/fgo-events)"
	Timeout   = 60 * time.Second
)

// Client fetches the catalog exports
type Client struct {
	httpClient *http.Client
	itemURL    string
	equipURL   string
	itemNAURL  string
	cache      *Cache
}

// NewClient creates a new catalog client pointed at the Atlas Academy exports
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: Timeout,
		},
		itemURL:   ItemURL,
		equipURL:  EquipURL,
		itemNAURL: ItemNAURL,
	}
}

// WithCache makes the client serve exports from cache when fresh and record new
// downloads in it. The cache is saved at the end of Build.
func (c *Client) WithCache(cache *Cache) *Client {
	c.cache = cache
	return c
}

// Build fetches all three catalogs and builds the Index.
// Any failure is returned as-is; there is no partial index.
func (c *Client) Build() (*Index, error) {
	items, err := c.load(c.itemURL)
	if err != nil {
		return nil, fmt.Errorf("fetching item catalog: %w", err)
	}

	equips, err := c.load(c.equipURL)
	if err != nil {
		return nil, fmt.Errorf("fetching equipment catalog: %w", err)
	}

	itemsEN, err := c.load(c.itemNAURL)
	if err != nil {
		return nil, fmt.Errorf("fetching NA item catalog: %w", err)
	}

	if c.cache != nil {
		if removed := c.cache.CleanExpired(); removed > 0 {
			logger.Debug("Dropped expired catalog exports", logger.Fields{"removed": removed})
		}
		logger.Debug("Catalog cache ready", logger.Fields{"exports": c.cache.Size()})
		if err := c.cache.Save(); err != nil {
			logger.Warn("Could not save catalog cache", logger.Fields{"error": err.Error()})
		}
	}

	idx := NewIndex(items, equips, itemsEN)

	logger.Info("Catalog loaded", logger.Fields{
		"items":    idx.Len(),
		"equips":   idx.EquipLen(),
		"items_na": len(itemsEN),
	})
	logger.SetGauge("catalog.items", float64(idx.Len()))

	return idx, nil
}

// load returns one catalog export, from cache when possible
func (c *Client) load(url string) ([]Entry, error) {
	if c.cache != nil {
		if entries, ok := c.cache.Get(url); ok {
			logger.IncrCounter("catalog.cache_hits")
			logger.Debug("Catalog served from cache", logger.Fields{"url": url})
			return entries, nil
		}
	}

	entries, err := c.fetch(url)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(url, entries)
	}
	return entries, nil
}

// fetch downloads and decodes one catalog export
func (c *Client) fetch(url string) ([]Entry, error) {
	start := time.Now()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	logger.RecordTiming("catalog.fetch", time.Since(start))
	logger.Debug("Fetched catalog", logger.Fields{
		"url":     url,
		"entries": len(entries),
	})

	return entries, nil
}
