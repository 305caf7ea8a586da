// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schemacache is a simple in-process cache for documents
// that have been parsed.
package schemacache

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Independence-University/json-validator/pkg/jsontext"
)

// Cache is a cache that holds documents keyed by identity.
type Cache struct {
	m map[string]*jsontext.Document
}

// Load checks the cache for a document.
// It returns nil if the identity is not cached.
func (c *Cache) Load(key string) *jsontext.Document {
	return c.m[key]
}

// Store stores a document in the cache.
// It returns the document to use, which may differ
// if one has already been cached.
func (c *Cache) Store(key string, doc *jsontext.Document) *jsontext.Document {
	if d := c.m[key]; d != nil {
		return d
	}

	if c.m == nil {
		c.m = make(map[string]*jsontext.Document)
	}

	c.m[key] = doc
	return doc
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	return len(c.m)
}

// ConcurrentCache is a cache that permits concurrent access.
type ConcurrentCache struct {
	cache Cache
	mu    sync.Mutex
	group singleflight.Group
}

// Load checks the cache for a document.
// It returns nil if the identity is not cached.
func (cc *ConcurrentCache) Load(key string) *jsontext.Document {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cache.Load(key)
}

// Store stores a document in the cache.
// It returns the document to use, which may differ
// if some other goroutine already cached it.
func (cc *ConcurrentCache) Store(key string, doc *jsontext.Document) *jsontext.Document {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cache.Store(key, doc)
}

// Len returns the number of cached documents.
func (cc *ConcurrentCache) Len() int {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cache.Len()
}

// LoadOrCompute returns the cached document for key.
// If there is none it calls compute and caches the result.
// Concurrent callers for the same key share a single call,
// and compute is never called for a key that is already cached.
func (cc *ConcurrentCache) LoadOrCompute(key string, compute func() *jsontext.Document) *jsontext.Document {
	if doc := cc.Load(key); doc != nil {
		return doc
	}
	v, _, _ := cc.group.Do(key, func() (any, error) {
		// Another flight may have finished between
		// the Load above and this call.
		if doc := cc.Load(key); doc != nil {
			return doc, nil
		}
		return cc.Store(key, compute()), nil
	})
	return v.(*jsontext.Document)
}
