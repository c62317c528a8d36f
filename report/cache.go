package report

import (
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"

	"github.com/cardioinsight/riskservice/config"
)

// Cache holds recently generated reports keyed by id. The size bound keeps
// memory predictable: once a report is evicted its download link stops
// working and the client has to generate it again.
type Cache struct {
	lru *simplelru.LRU
	mu  *sync.Mutex
}

func NewCache(cfg *config.Config) (*Cache, error) {
	var onEvict simplelru.EvictCallback
	lru, err := simplelru.NewLRU(cfg.ReportCacheSize, onEvict)
	if err != nil {
		return nil, err
	}

	return &Cache{
		lru: lru,
		mu:  &sync.Mutex{},
	}, nil
}

func (c *Cache) Add(result *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.lru.Add(result.ID, result)
}

func (c *Cache) Get(id string) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.lru.Get(id); ok {
		return e.(*Result), true
	}
	return nil, false
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Len()
}
