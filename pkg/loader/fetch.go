// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"
)

// A Fetcher retrieves the text of a document given its URI.
// Implementations should honor ctx cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, uri string) (string, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, uri string) (string, error) {
	return f(ctx, uri)
}

// maxFetchSize limits the size of a fetched document.
const maxFetchSize = 64 << 20

// DefaultFetcher reads file: URIs and bare paths from the local
// file system, and http: and https: URIs over the network.
type DefaultFetcher struct {
	// Client is used for http and https.
	// If nil, http.DefaultClient is used.
	Client *http.Client
}

// Fetch implements Fetcher.
func (f DefaultFetcher) Fetch(ctx context.Context, uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "", "file":
		path := u.Path
		if u.Scheme == "" {
			path = uri
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "http", "https":
		client := f.Client
		if client == nil {
			client = http.DefaultClient
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
		if err != nil {
			return "", err
		}
		resp, err := client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("GET %s: %s", uri, resp.Status)
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchSize))
		if err != nil {
			return "", err
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("unsupported URI scheme %q", u.Scheme)
	}
}

// CachingFetcher remembers the text returned by another Fetcher
// so that it can be reused across validation runs.
// Entries are reused only while Fresh reports them as fresh.
// Failed fetches are not remembered.
type CachingFetcher struct {
	Fetcher Fetcher
	// Fresh reports whether text fetched from uri at fetchedAt
	// may still be used. If nil, entries never expire.
	Fresh func(uri string, fetchedAt time.Time) bool

	mu      sync.Mutex
	entries map[string]cachedText
}

type cachedText struct {
	text      string
	fetchedAt time.Time
}

// MaxAge returns a freshness policy that expires entries after d.
func MaxAge(d time.Duration) func(string, time.Time) bool {
	return func(_ string, fetchedAt time.Time) bool {
		return time.Since(fetchedAt) < d
	}
}

// Fetch implements Fetcher.
func (cf *CachingFetcher) Fetch(ctx context.Context, uri string) (string, error) {
	cf.mu.Lock()
	e, ok := cf.entries[uri]
	cf.mu.Unlock()
	if ok && (cf.Fresh == nil || cf.Fresh(uri, e.fetchedAt)) {
		return e.text, nil
	}

	text, err := cf.Fetcher.Fetch(ctx, uri)
	if err != nil {
		return "", err
	}

	cf.mu.Lock()
	defer cf.mu.Unlock()
	if cf.entries == nil {
		cf.entries = make(map[string]cachedText)
	}
	cf.entries[uri] = cachedText{text: text, fetchedAt: time.Now()}
	return text, nil
}

// Forget discards any remembered text for uri.
func (cf *CachingFetcher) Forget(uri string) {
	cf.mu.Lock()
	defer cf.mu.Unlock()
	delete(cf.entries, uri)
}
