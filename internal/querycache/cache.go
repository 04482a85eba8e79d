// Package querycache holds recent document query results keyed by their filters.
package querycache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ridwanfathin/invoice-document-service/internal/domain"
	"github.com/ridwanfathin/invoice-document-service/internal/metrics"
)

// DefaultTTL is how long a stored result is served
const DefaultTTL = 15 * time.Second

// sweepThreshold is the entry count above which expired entries are dropped on Set
const sweepThreshold = 1024

// Entry is one stored query result
type Entry struct {
	FilterKey string
	Documents []domain.InvoiceRecord
	StoredAt  time.Time
}

// Cache is a short-lived cache of query results
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates a cache. A non-positive ttl disables caching: every Get misses
// and Set stores nothing.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]Entry),
	}
}

// SetClock replaces time.Now, mainly for tests
func (c *Cache) SetClock(now func() time.Time) {
	c.now = now
}

// Key serializes a filter into a stable cache key
func Key(filter domain.DocumentFilter) string {
	b, _ := json.Marshal(struct {
		Invoice string `json:"invoice"`
		Date    string `json:"date"`
	}{filter.Invoice, filter.Date})
	return string(b)
}

// Get returns the stored documents when the entry is younger than the TTL.
// The slice is shared and must not be modified.
func (c *Cache) Get(key string) ([]domain.InvoiceRecord, bool) {
	if !c.Enabled() {
		metrics.QueryCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.StoredAt) >= c.ttl {
		metrics.QueryCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.QueryCacheTotal.WithLabelValues("hit").Inc()
	return entry.Documents, true
}

// Set stores documents under key, replacing any previous entry
func (c *Cache) Set(key string, documents []domain.InvoiceRecord) {
	if !c.Enabled() {
		return
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= sweepThreshold {
		for k, e := range c.entries {
			if now.Sub(e.StoredAt) >= c.ttl {
				delete(c.entries, k)
			}
		}
	}
	c.entries[key] = Entry{FilterKey: key, Documents: documents, StoredAt: now}
}

// Enabled reports whether results are stored at all
func (c *Cache) Enabled() bool {
	return c.ttl > 0
}

// Len returns the number of stored entries, expired ones included
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
