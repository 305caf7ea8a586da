// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loader maps document identities to parsed documents.
// Each identity is fetched and parsed at most once per Loader,
// even when resolved from several goroutines at the same time.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	motmedelErrors "github.com/Motmedel/utils_go/pkg/errors"

	"github.com/Independence-University/json-validator/internal/metaschema"
	"github.com/Independence-University/json-validator/internal/schemacache"
	"github.com/Independence-University/json-validator/pkg/jsontext"
)

// DefaultTimeout is the default limit on a single fetch.
const DefaultTimeout = 10 * time.Second

// Options describes loader options.
// A nil *Options means the defaults.
type Options struct {
	// Fetcher retrieves documents that were not registered.
	// If nil, DefaultFetcher is used.
	Fetcher Fetcher
	// Timeout limits each fetch. Zero means DefaultTimeout.
	Timeout time.Duration
	// Parse holds the options used to parse fetched documents.
	Parse *jsontext.ParseOptions
	// Logger receives debug messages. If nil, nothing is logged.
	Logger *slog.Logger
}

// Loader is a cache of documents for a single validation run.
// It is safe for concurrent use.
type Loader struct {
	cache   schemacache.ConcurrentCache
	fetcher Fetcher
	timeout time.Duration
	parse   *jsontext.ParseOptions
	logger  *slog.Logger
	fetches atomic.Int64
}

// New returns a new Loader.
func New(opts *Options) *Loader {
	l := &Loader{
		fetcher: DefaultFetcher{},
		timeout: DefaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	if opts != nil {
		if opts.Fetcher != nil {
			l.fetcher = opts.Fetcher
		}
		if opts.Timeout > 0 {
			l.timeout = opts.Timeout
		}
		if opts.Logger != nil {
			l.logger = opts.Logger
		}
		l.parse = opts.Parse
	}
	return l
}

// Normalize returns the cache identity for uri:
// the URI without any fragment.
func Normalize(uri string) string {
	if i := strings.IndexByte(uri, '#'); i >= 0 {
		return uri[:i]
	}
	return uri
}

// Register records doc under its URI.
// It returns the document to use, which is an earlier document
// if one was already registered or resolved for the same identity.
func (l *Loader) Register(doc *jsontext.Document) *jsontext.Document {
	return l.cache.Store(Normalize(doc.URI), doc)
}

// Resolve returns the document for uri, fetching and parsing it
// if it has not been seen before. A document that can't be fetched,
// including one whose fetch timed out, is returned as an empty
// document with a single error; Resolve never returns nil.
func (l *Loader) Resolve(ctx context.Context, uri string) *jsontext.Document {
	key := Normalize(uri)
	if doc := l.cache.Load(key); doc != nil {
		l.logger.Debug("document cache hit", "uri", key)
		return doc
	}
	return l.cache.LoadOrCompute(key, func() *jsontext.Document {
		if doc := metaschema.Load(key); doc != nil {
			l.logger.Debug("using embedded meta-schema", "uri", key)
			return doc
		}
		return l.fetch(ctx, key)
	})
}

// Fetches reports how many fetches the loader has started.
func (l *Loader) Fetches() int {
	return int(l.fetches.Load())
}

// Len reports how many documents the loader holds.
func (l *Loader) Len() int {
	return l.cache.Len()
}

type fetchResult struct {
	text string
	err  error
}

// fetch retrieves and parses uri, subject to the loader timeout.
func (l *Loader) fetch(ctx context.Context, uri string) *jsontext.Document {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	l.fetches.Add(1)
	l.logger.Debug("fetching document", "uri", uri)
	start := time.Now()

	// Run the fetch separately so that a fetcher that ignores
	// ctx still can't hold up validation past the timeout.
	ch := make(chan fetchResult, 1)
	go func() {
		text, err := l.fetcher.Fetch(ctx, uri)
		ch <- fetchResult{text, err}
	}()

	var r fetchResult
	select {
	case r = <-ch:
	case <-ctx.Done():
		r.err = ctx.Err()
	}

	if r.err != nil {
		err := motmedelErrors.NewWithTrace(fmt.Errorf("could not load %q: %w", uri, r.err), uri)
		l.logger.Debug("fetch failed", "uri", uri, "error", err, "stack", err.GetStackTrace())
		return jsontext.NewFailedDocument(uri, err.Error())
	}

	doc := jsontext.Parse(uri, r.text, l.parse)
	l.logger.Debug("fetched document", "uri", uri, "bytes", len(r.text), "errors", len(doc.Errors), "elapsed", time.Since(start))
	return doc
}
