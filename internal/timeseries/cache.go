package timeseries

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// ParsedCache is a small in-memory LRU of parsed Tables, keyed by the same
// hash the cache store uses for a (cast_type, lat, lon) tuple. It sits in
// front of Parse* so that two segments sharing a coordinate within one
// request don't re-parse identical upstream JSON. It is a pure performance
// layer with one entry per key; it does not watch the cache file itself,
// so callers Purge a key whenever a fresh API response rewrites that file.
type ParsedCache struct {
	cache *lru.Cache[uint64, Table]
}

// NewParsedCache builds a ParsedCache holding up to size entries.
func NewParsedCache(size int) (*ParsedCache, error) {
	if size <= 0 {
		size = 256
	}
	c, err := lru.New[uint64, Table](size)
	if err != nil {
		return nil, err
	}
	return &ParsedCache{cache: c}, nil
}

// Get returns a cached Table for key, if present.
func (p *ParsedCache) Get(key uint64) (Table, bool) {
	return p.cache.Get(key)
}

// Put stores tbl under key, evicting the least-recently-used entry if full.
func (p *ParsedCache) Put(key uint64, tbl Table) {
	p.cache.Add(key, tbl)
}

// Purge drops a single key, used when a fresh API write makes the parsed
// table for that key stale.
func (p *ParsedCache) Purge(key uint64) {
	p.cache.Remove(key)
}
