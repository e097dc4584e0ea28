// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package github

import "sync"

// cachedResponse pairs the validator GitHub handed out with the body
// it validates.
type cachedResponse struct {
	etag    string
	payload []byte
}

// responseCache remembers the ETag and body of every GET response
// that carried a validator. Later GETs to the same URL send
// If-None-Match, and a 304 answer is served from the stored body.
// On GitHub a 304 does not count against the rate limit, so repeat
// polls of unchanged resources are close to free.
//
// Nothing is ever evicted: the cache lives as long as the Client and
// is bounded by the number of distinct URLs fetched.
type responseCache struct {
	mu    sync.Mutex
	byURL map[string]cachedResponse
}

func newResponseCache() *responseCache {
	return &responseCache{byURL: make(map[string]cachedResponse)}
}

// tag returns the stored ETag for url, or "" when the URL has not
// been cached.
func (cache *responseCache) tag(url string) string {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return cache.byURL[url].etag
}

// payload returns the stored body for url, or nil when the URL has
// not been cached.
func (cache *responseCache) payload(url string) []byte {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	entry, ok := cache.byURL[url]
	if !ok {
		return nil
	}
	return entry.payload
}

// store records the validator and body for url. An empty validator
// is ignored.
func (cache *responseCache) store(url, etag string, payload []byte) {
	if etag == "" {
		return
	}
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.byURL[url] = cachedResponse{etag: etag, payload: payload}
}
