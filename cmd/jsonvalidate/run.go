// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-json"

	"github.com/Independence-University/json-validator/internal/console"
	"github.com/Independence-University/json-validator/pkg/jsonschema"
	"github.com/Independence-University/json-validator/pkg/loader"
)

// remoteMaxAge is how long a fetched remote schema is reused in watch mode.
const remoteMaxAge = 5 * time.Minute

// A validation validates one instance against one schema.
type validation struct {
	schema   string // file or URI
	instance string // file or URI
	output   string // "text" or "json"
	opts     *jsonschema.Options
	printer  *console.Printer
}

// run validates once and writes the result to w.
// It reports whether the documents have no issues.
func (v *validation) run(ctx context.Context, w io.Writer) (bool, error) {
	schema, err := sourceFor(v.schema)
	if err != nil {
		return false, err
	}
	instance, err := sourceFor(v.instance)
	if err != nil {
		return false, err
	}
	r, err := jsonschema.Validate(ctx, instance, schema, v.opts)
	if err != nil {
		return false, err
	}

	if v.output == "json" {
		if err := writeJSON(w, r); err != nil {
			return false, err
		}
	} else {
		if _, err := io.WriteString(w, v.printer.FormatResult(r, v.instance, v.schema)); err != nil {
			return false, err
		}
	}
	return r.Valid(), nil
}

// watch validates, and validates again whenever a local document
// changes, until interrupted.
func (v *validation) watch(ctx context.Context, w io.Writer, verbose bool) error {
	files := localFiles(v.schema, v.instance)
	if len(files) == 0 {
		return fmt.Errorf("--watch needs a local schema or instance file")
	}

	// Set up file system watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files, so watch the directories.
	dirs := make(map[string]bool)
	for file := range files {
		dir := filepath.Dir(file)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	fmt.Fprintln(w, "Watching for file changes")
	if verbose {
		fmt.Fprintln(w, "Press Ctrl+C to stop watching.")
	}
	if _, err := v.run(ctx, w); err != nil {
		return err
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	// Debouncing setup
	const debounceDelay = 300 * time.Millisecond
	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if !files[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			v.opts.Logger.Debug("detected change", "file", event.Name, "op", event.Op.String())

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				fmt.Fprintln(w)
				if _, err := v.run(ctx, w); err != nil {
					v.opts.Logger.Error("validation failed", "err", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			v.opts.Logger.Warn("watcher error", "err", err)

		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return ctx.Err()

		case <-sigChan:
			v.opts.Logger.Debug("stopping watch mode")
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil
		}
	}
}

// answer decodes a request from r, validates it, and writes the
// result to w.
func answer(ctx context.Context, r io.Reader, w io.Writer, opts *jsonschema.Options) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var req request
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("reading request: %w", err)
	}
	res, err := jsonschema.Validate(ctx, req.Instance, req.Schema, opts)
	if err != nil {
		return err
	}
	return writeJSON(w, res)
}

// sourceFor returns the source for a command-line argument,
// which is an http, https or file URI, or a file path.
func sourceFor(arg string) (jsonschema.Source, error) {
	if isURI(arg) {
		return jsonschema.URISource(arg), nil
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return jsonschema.Source{}, err
	}
	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return jsonschema.URISource(u.String()), nil
}

func isURI(arg string) bool {
	for _, prefix := range []string{"http://", "https://", "file:"} {
		if strings.HasPrefix(arg, prefix) {
			return true
		}
	}
	return false
}

// localFiles returns the cleaned absolute paths of the arguments
// that name local files.
func localFiles(args ...string) map[string]bool {
	files := make(map[string]bool)
	for _, arg := range args {
		path := arg
		if isURI(arg) {
			u, err := url.Parse(arg)
			if err != nil || u.Scheme != "file" {
				continue
			}
			path = filepath.FromSlash(u.Path)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		files[filepath.Clean(abs)] = true
	}
	return files
}

// remoteFresh is the freshness policy of the watch mode cache.
// Local files are always read again.
func remoteFresh(uri string, fetchedAt time.Time) bool {
	if strings.HasPrefix(uri, "file:") {
		return false
	}
	return loader.MaxAge(remoteMaxAge)(uri, fetchedAt)
}
