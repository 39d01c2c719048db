// Package cache provides an in-run response cache for the fetch client.
// It exists so a business page fetched while resolving search results is
// not fetched again when its review feed is scraped; nothing survives the
// process.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Entry is one cached scrape response.
type Entry struct {
	Body       []byte
	StatusCode int
}

// Cache is the response cache used by the fetch client.
type Cache interface {
	// Get returns the cached entry for a target URL, if present and fresh.
	Get(url string) (*Entry, bool)

	// Set stores an entry under the target URL with the given TTL.
	Set(url string, entry *Entry, ttl time.Duration)

	// Close stops background maintenance.
	Close()
}

type cacheItem struct {
	url       string
	entry     *Entry
	expiresAt time.Time
}

// MemoryCache is an LRU cache bounded by total body bytes.
type MemoryCache struct {
	mu      sync.Mutex
	store   map[string]*list.Element
	lruList *list.List
	maxSize int64
	size    int64
	done    chan struct{}
}

// NewMemoryCache creates a memory cache holding at most maxSizeBytes of
// response bodies.
func NewMemoryCache(maxSizeBytes int64) *MemoryCache {
	if maxSizeBytes <= 0 {
		maxSizeBytes = 32 * 1024 * 1024
	}
	mc := &MemoryCache{
		store:   make(map[string]*list.Element),
		lruList: list.New(),
		maxSize: maxSizeBytes,
		done:    make(chan struct{}),
	}
	go mc.sweep()
	return mc
}

func (mc *MemoryCache) Get(url string) (*Entry, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	element, ok := mc.store[url]
	if !ok {
		return nil, false
	}
	item := element.Value.(*cacheItem)
	if time.Now().After(item.expiresAt) {
		mc.removeLocked(element)
		return nil, false
	}
	mc.lruList.MoveToFront(element)
	return item.entry, true
}

func (mc *MemoryCache) Set(url string, entry *Entry, ttl time.Duration) {
	if entry == nil || ttl <= 0 {
		return
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if element, ok := mc.store[url]; ok {
		mc.removeLocked(element)
	}

	item := &cacheItem{url: url, entry: entry, expiresAt: time.Now().Add(ttl)}
	mc.store[url] = mc.lruList.PushFront(item)
	mc.size += int64(len(entry.Body))

	// Evict from the back until we fit.
	for mc.size > mc.maxSize {
		oldest := mc.lruList.Back()
		if oldest == nil {
			break
		}
		mc.removeLocked(oldest)
	}
}

func (mc *MemoryCache) Close() {
	close(mc.done)
}

func (mc *MemoryCache) removeLocked(element *list.Element) {
	item := element.Value.(*cacheItem)
	mc.lruList.Remove(element)
	delete(mc.store, item.url)
	mc.size -= int64(len(item.entry.Body))
}

// sweep drops expired entries so TTL-expired bodies do not pin memory
// between cache hits.
func (mc *MemoryCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-mc.done:
			return
		case <-ticker.C:
			now := time.Now()
			mc.mu.Lock()
			for element := mc.lruList.Back(); element != nil; {
				prev := element.Prev()
				if now.After(element.Value.(*cacheItem).expiresAt) {
					mc.removeLocked(element)
				}
				element = prev
			}
			mc.mu.Unlock()
		}
	}
}
