// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Independence-University/json-validator/pkg/jsontext"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"file:///a.json", "file:///a.json"},
		{"file:///a.json#/definitions/x", "file:///a.json"},
		{"http://example.com/s#", "http://example.com/s"},
		{"#/a", ""},
	}
	for _, test := range tests {
		if got := Normalize(test.in); got != test.want {
			t.Errorf("Normalize(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestResolveOnce(t *testing.T) {
	var calls atomic.Int32
	fetcher := FetcherFunc(func(ctx context.Context, uri string) (string, error) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return `{"type":"string"}`, nil
	})
	l := New(&Options{Fetcher: fetcher})

	const n = 16
	docs := make([]*jsontext.Document, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			frag := "#/a"
			if i%2 == 0 {
				frag = ""
			}
			docs[i] = l.Resolve(context.Background(), "mem:shared.json"+frag)
		}()
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("fetcher called %d times, want 1", got)
	}
	if got := l.Fetches(); got != 1 {
		t.Errorf("Fetches() = %d, want 1", got)
	}
	for i, d := range docs {
		if d != docs[0] {
			t.Errorf("Resolve %d returned a different document", i)
		}
	}
	if !docs[0].Valid() {
		t.Errorf("resolved document has errors %v", docs[0].Errors)
	}
}

func TestResolveRegistered(t *testing.T) {
	l := New(&Options{Fetcher: FetcherFunc(func(context.Context, string) (string, error) {
		t.Errorf("unexpected fetch")
		return "", errors.New("unexpected")
	})})
	doc := jsontext.Parse("file:///schema.json", `{}`, nil)
	if got := l.Register(doc); got != doc {
		t.Fatalf("Register returned a different document")
	}
	if got := l.Resolve(context.Background(), "file:///schema.json#/x"); got != doc {
		t.Errorf("Resolve after Register returned a different document")
	}
	if got := l.Fetches(); got != 0 {
		t.Errorf("Fetches() = %d, want 0", got)
	}
}

func TestResolveMetaSchema(t *testing.T) {
	l := New(&Options{Fetcher: FetcherFunc(func(context.Context, string) (string, error) {
		return "", errors.New("network disabled")
	})})
	doc := l.Resolve(context.Background(), "http://json-schema.org/draft-04/schema#")
	if !doc.Valid() {
		t.Fatalf("meta-schema has errors %v", doc.Errors)
	}
	if got := l.Fetches(); got != 0 {
		t.Errorf("Fetches() = %d, want 0", got)
	}
}

func TestResolveFailure(t *testing.T) {
	l := New(&Options{Fetcher: FetcherFunc(func(context.Context, string) (string, error) {
		return "", errors.New("no such document")
	})})
	doc := l.Resolve(context.Background(), "mem:missing.json")
	if doc == nil {
		t.Fatal("Resolve returned nil")
	}
	if doc.Root != nil {
		t.Errorf("failed document has root %v", doc.Root)
	}
	if len(doc.Errors) != 1 || doc.Errors[0].Kind != jsontext.ErrFetch {
		t.Fatalf("failed document errors = %v, want one fetch error", doc.Errors)
	}
	if want := `could not load "mem:missing.json": no such document`; doc.Errors[0].Message != want {
		t.Errorf("fetch error message %q, want %q", doc.Errors[0].Message, want)
	}
}

func TestResolveFailureLogged(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Options{
		Fetcher: FetcherFunc(func(context.Context, string) (string, error) {
			return "", errors.New("no such document")
		}),
		Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	l.Resolve(context.Background(), "mem:missing.json")
	out := buf.String()
	if !strings.Contains(out, "fetch failed") || !strings.Contains(out, "stack=") {
		t.Errorf("log %q does not report the failure with its stack", out)
	}
	if !strings.Contains(out, "TestResolveFailureLogged") && !strings.Contains(out, "loader.(*Loader).fetch") {
		t.Errorf("log %q has no stack frames", out)
	}
}

func TestResolveTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	l := New(&Options{
		Timeout: 20 * time.Millisecond,
		// This fetcher ignores ctx.
		Fetcher: FetcherFunc(func(context.Context, string) (string, error) {
			<-release
			return "{}", nil
		}),
	})

	start := time.Now()
	doc := l.Resolve(context.Background(), "mem:slow.json")
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Resolve took %v, want about the timeout", elapsed)
	}
	if len(doc.Errors) != 1 || doc.Errors[0].Kind != jsontext.ErrFetch {
		t.Errorf("timed out document errors = %v, want one fetch error", doc.Errors)
	}
}

func TestResolveSyntaxErrors(t *testing.T) {
	l := New(&Options{Fetcher: FetcherFunc(func(context.Context, string) (string, error) {
		return `{"a":}`, nil
	})})
	doc := l.Resolve(context.Background(), "mem:bad.json")
	if doc.Valid() {
		t.Errorf("document with syntax errors reported as valid")
	}
	if doc.Root == nil || doc.Root.Kind != jsontext.Object {
		t.Errorf("recovered root = %v, want object", doc.Root)
	}
}

func TestDefaultFetcherFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.json")
	if err := os.WriteFile(path, []byte(`{"x":1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	var f DefaultFetcher
	for _, uri := range []string{path, "file://" + filepath.ToSlash(path)} {
		text, err := f.Fetch(context.Background(), uri)
		if err != nil {
			t.Errorf("Fetch(%q) failed: %v", uri, err)
			continue
		}
		if text != `{"x":1}` {
			t.Errorf("Fetch(%q) = %q, want file contents", uri, text)
		}
	}
	if _, err := f.Fetch(context.Background(), "ftp://example.com/x"); err == nil {
		t.Errorf("Fetch of ftp URI succeeded, want error")
	}
}

func TestDefaultFetcherHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"type":"integer"}`))
	}))
	defer srv.Close()

	f := DefaultFetcher{Client: srv.Client()}
	text, err := f.Fetch(context.Background(), srv.URL+"/schema.json")
	if err != nil {
		t.Fatal(err)
	}
	if text != `{"type":"integer"}` {
		t.Errorf("Fetch = %q, want served text", text)
	}
	if _, err := f.Fetch(context.Background(), srv.URL+"/missing"); err == nil {
		t.Errorf("Fetch of 404 succeeded, want error")
	}
}

func TestCachingFetcher(t *testing.T) {
	var calls atomic.Int32
	fail := false
	inner := FetcherFunc(func(context.Context, string) (string, error) {
		calls.Add(1)
		if fail {
			return "", errors.New("down")
		}
		return "{}", nil
	})

	cf := &CachingFetcher{Fetcher: inner}
	for range 3 {
		if _, err := cf.Fetch(context.Background(), "mem:a"); err != nil {
			t.Fatal(err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("inner fetcher called %d times, want 1", got)
	}

	cf.Forget("mem:a")
	if _, err := cf.Fetch(context.Background(), "mem:a"); err != nil {
		t.Fatal(err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("after Forget inner fetcher called %d times, want 2", got)
	}

	fail = true
	if _, err := cf.Fetch(context.Background(), "mem:b"); err == nil {
		t.Errorf("Fetch of failing URI succeeded")
	}
	fail = false
	if _, err := cf.Fetch(context.Background(), "mem:b"); err != nil {
		t.Errorf("failure was cached: %v", err)
	}

	expired := &CachingFetcher{Fetcher: inner, Fresh: MaxAge(0)}
	calls.Store(0)
	expired.Fetch(context.Background(), "mem:c")
	expired.Fetch(context.Background(), "mem:c")
	if got := calls.Load(); got != 2 {
		t.Errorf("with MaxAge(0) inner fetcher called %d times, want 2", got)
	}
}
