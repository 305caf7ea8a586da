// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validerr

import (
	"sync"

	"github.com/Independence-University/json-validator/pkg/jsontext"
)

// Sink collects schema errors in the order they are found.
// An error with the same node and message as one already
// collected is dropped.
// A Sink is safe for concurrent use.
type Sink struct {
	mu   sync.Mutex
	errs []*SchemaError
	seen map[sinkKey]bool
}

type sinkKey struct {
	node *jsontext.Node
	msg  string
}

// Add records se. It reports whether se was new.
func (s *Sink) Add(se *SchemaError) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(se)
}

func (s *Sink) addLocked(se *SchemaError) bool {
	k := sinkKey{se.Node, se.Message}
	if s.seen[k] {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[sinkKey]bool)
	}
	s.seen[k] = true
	s.errs = append(s.errs, se)
	return true
}

// Merge appends the errors of child to s, in order.
func (s *Sink) Merge(child *Sink) {
	if child == nil || child == s {
		return
	}
	errs := child.Errors()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, se := range errs {
		s.addLocked(se)
	}
}

// Errors returns the collected errors.
func (s *Sink) Errors() []*SchemaError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*SchemaError(nil), s.errs...)
}

// Len returns the number of collected errors.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.errs)
}
