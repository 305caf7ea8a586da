// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format defines checkers for the format keyword.
//
// Draft 4 treats format as advisory, so the validator only asserts
// formats for which a [Handler] has been supplied.
// [Builtin] returns handlers for the formats defined by draft 4
// along with a few that later drafts added.
package format

import (
	"slices"
	"sync"
)

// Handler checks strings against a named format.
type Handler interface {
	// Name is the format name, as used in the schema.
	Name() string
	// Check returns an error describing why s
	// does not conform to the format.
	Check(s string) error
}

// New returns a Handler that calls fn.
func New(name string, fn func(string) error) Handler {
	return funcHandler{name, fn}
}

type funcHandler struct {
	name string
	fn   func(string) error
}

func (h funcHandler) Name() string         { return h.name }
func (h funcHandler) Check(s string) error { return h.fn(s) }

// Registry maps format names to handlers.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	handlers map[string]Handler
}

// NewRegistry returns a registry holding handlers.
// A later handler replaces an earlier one with the same name.
func NewRegistry(handlers ...Handler) *Registry {
	r := &Registry{}
	for _, h := range handlers {
		r.Register(h)
	}
	return r
}

// Register records h, replacing any handler with the same name.
func (r *Registry) Register(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handlers == nil {
		r.handlers = make(map[string]Handler)
	}
	r.handlers[h.Name()] = h
}

// Lookup returns the handler for name, or nil.
func (r *Registry) Lookup(name string) Handler {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handlers[name]
}

// Names returns the registered format names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Builtin returns the predefined handlers.
func Builtin() []Handler {
	return []Handler{
		New("date-time", dateTimeFormat),
		New("date", dateFormat),
		New("time", timeFormat),
		New("email", emailFormat),
		New("hostname", hostnameFormat),
		New("ipv4", ipv4Format),
		New("ipv6", ipv6Format),
		New("uri", uriFormat),
		New("uri-reference", uriReferenceFormat),
		New("uuid", uuidFormat),
		New("regex", regexFormat),
		New("json-pointer", jsonPointerFormat),
	}
}
