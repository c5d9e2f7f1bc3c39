package modules

import (
	"context"
	"sync"
	"time"

	"doneUI/internal/logger"

	"go.uber.org/zap"
)

// DefaultCacheInterval is how often the cache is flushed when no interval is given.
const DefaultCacheInterval = 300 * time.Millisecond

// Cache keeps loaded items for a short while. The whole cache is flushed on a
// fixed interval by Run, so callers never see content older than one interval.
type Cache struct {
	mu       sync.RWMutex
	items    map[string]Item
	interval time.Duration
}

func NewCache(interval *time.Duration) *Cache {
	var intervalToSet time.Duration
	if interval == nil || *interval <= 0 {
		intervalToSet = DefaultCacheInterval
	} else {
		intervalToSet = *interval
	}

	return &Cache{
		items:    make(map[string]Item),
		interval: intervalToSet,
	}
}

func (c *Cache) Get(key string) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[key]
	return item, ok
}

func (c *Cache) Set(key string, item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Flush drops every cached item and reports how many were dropped.
func (c *Cache) Flush() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.items)
	if n > 0 {
		c.items = make(map[string]Item)
	}
	return n
}

// Run flushes the cache every interval until ctx is cancelled.
func (c *Cache) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	logger.Debug("Modules: очистка кэша запущена", zap.Duration("interval", c.interval))
	for {
		select {
		case <-ticker.C:
			c.Flush()
		case <-ctx.Done():
			logger.Debug("Modules: очистка кэша остановлена")
			return nil
		}
	}
}
