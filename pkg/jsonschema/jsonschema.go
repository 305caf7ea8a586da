// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonschema validates a JSON document against a
// draft 4 JSON schema and reports every problem found in
// either document, each at a span of the source text.
package jsonschema

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	motmedelErrors "github.com/Motmedel/utils_go/pkg/errors"
	"golang.org/x/sync/errgroup"

	_ "github.com/Independence-University/json-validator/pkg/draft4"
	"github.com/Independence-University/json-validator/pkg/format"
	"github.com/Independence-University/json-validator/pkg/jsontext"
	"github.com/Independence-University/json-validator/pkg/loader"
	"github.com/Independence-University/json-validator/pkg/types"
)

// Default identities of inline documents.
const (
	DefaultInstanceURI = "file:///instance.json"
	DefaultSchemaURI   = "file:///schema.json"
)

// Options describes validation options.
// A nil *Options means the defaults.
type Options struct {
	// Fetcher retrieves URI sources and referenced schemas.
	// If nil, loader.DefaultFetcher is used, except that an inline
	// schema without SchemaURI may not read local files.
	Fetcher loader.Fetcher
	// FetchTimeout limits each fetch.
	// Zero means loader.DefaultTimeout.
	FetchTimeout time.Duration
	// Parse holds the parser options for both documents
	// and for referenced schemas.
	Parse *jsontext.ParseOptions
	// FormatHandlers are the handlers for the format keyword.
	// If nil, format is not asserted.
	// Use format.Builtin() for the standard formats.
	FormatHandlers []format.Handler
	// Concurrency is the number of goroutines that may evaluate
	// combinator branches at once. Values below 2 mean none.
	Concurrency int
	// MaxDepth limits the depth of schema evaluation.
	// Zero means jsontext.DefaultMaxDepth.
	MaxDepth int
	// InstanceURI and SchemaURI are the identities given to
	// inline documents. Relative references in an inline schema
	// are resolved against SchemaURI.
	InstanceURI string
	SchemaURI   string
	// Logger receives debug messages. If nil, nothing is logged.
	Logger *slog.Logger
}

// Validate validates the instance document against the schema document.
//
// Problems with the documents are never returned as an error:
// they are reported in the Result. An error is returned only
// for invalid arguments.
func Validate(ctx context.Context, instance, schema Source, opts *Options) (*Result, error) {
	if ctx == nil {
		return nil, motmedelErrors.NewWithTrace(errors.New("jsonschema: nil context"))
	}
	for _, src := range []Source{instance, schema} {
		if _, ok := sourceKindNames[src.Kind]; !ok {
			return nil, motmedelErrors.NewWithTrace(fmt.Errorf("jsonschema: unknown source kind %d", int(src.Kind)))
		}
	}
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = loader.DefaultFetcher{}
		if schema.Kind == Text && opts.SchemaURI == "" {
			fetcher = noLocalFiles(fetcher, instance, schema)
		}
	}
	ld := loader.New(&loader.Options{
		Fetcher: fetcher,
		Timeout: opts.FetchTimeout,
		Parse:   opts.Parse,
		Logger:  logger,
	})

	// The documents are independent until evaluation starts.
	var instanceDoc, schemaDoc *jsontext.Document
	var g errgroup.Group
	g.Go(func() error {
		instanceDoc = load(ctx, ld, instance, cmp.Or(opts.InstanceURI, DefaultInstanceURI), opts.Parse)
		return nil
	})
	g.Go(func() error {
		schemaDoc = load(ctx, ld, schema, cmp.Or(opts.SchemaURI, DefaultSchemaURI), opts.Parse)
		return nil
	})
	g.Wait()
	// Inline documents can be the target of a reference, as any other.
	for _, doc := range []*jsontext.Document{instanceDoc, schemaDoc} {
		ld.Register(doc)
	}

	var formats *format.Registry
	if opts.FormatHandlers != nil {
		formats = format.NewRegistry(opts.FormatHandlers...)
	}
	out := types.Evaluate(ctx, instanceDoc, schemaDoc, ld, &types.EvalOptions{
		Formats:     formats,
		Concurrency: opts.Concurrency,
		MaxDepth:    opts.MaxDepth,
		Logger:      logger,
	})

	r := Aggregate(instanceDoc, schemaDoc, out)
	logger.Debug("validated", "instance", instanceDoc.URI, "schema", schemaDoc.URI, "issues", len(r.Errors))
	return r, nil
}

// load returns the document for src.
// Inline text is parsed under the identity uri.
func load(ctx context.Context, ld *loader.Loader, src Source, uri string, opts *jsontext.ParseOptions) *jsontext.Document {
	if src.Kind == URI {
		return ld.Resolve(ctx, src.Value)
	}
	return jsontext.Parse(uri, src.Value, opts)
}

// noLocalFiles wraps f so that it refuses file URIs other than
// those of the sources. It is used for an inline schema with the
// default identity, whose relative references would otherwise
// resolve against the root of the file system.
func noLocalFiles(f loader.Fetcher, sources ...Source) loader.Fetcher {
	allowed := make(map[string]bool)
	for _, src := range sources {
		if src.Kind == URI {
			allowed[loader.Normalize(src.Value)] = true
		}
	}
	return loader.FetcherFunc(func(ctx context.Context, uri string) (string, error) {
		u, err := url.Parse(uri)
		if err == nil && (u.Scheme == "file" || u.Scheme == "") && !allowed[loader.Normalize(uri)] {
			return "", fmt.Errorf("local file not available to an inline schema without SchemaURI")
		}
		return f.Fetch(ctx, uri)
	})
}
