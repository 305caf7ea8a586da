// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"fmt"
	"strings"
	"sync"
)

// Vocabulary is the set of keywords known to one schema version.
type Vocabulary struct {
	// Name is used in messages, as in "draft-04".
	Name string
	// Schema is the $schema value that selects this vocabulary,
	// without the empty fragment.
	Schema string
	// Keywords not in the map are ignored during evaluation.
	Keywords map[string]*Keyword
}

// vocabularies maps the identity of a $schema value to its Vocabulary.
var vocabularies struct {
	mu    sync.RWMutex
	byID  map[string]*Vocabulary
	deflt *Vocabulary
}

// vocabularyID returns the registry key for a $schema value.
// The empty fragment and the http/https distinction are ignored.
func vocabularyID(s string) string {
	s = strings.TrimSuffix(s, "#")
	if rest, ok := strings.CutPrefix(s, "https://"); ok {
		return "http://" + rest
	}
	return s
}

// RegisterVocabulary registers v under v.Schema.
// If def is true v becomes the vocabulary of schemas without $schema.
// Importing a schema version package registers its vocabulary,
// so this is rarely called directly.
// It panics on a duplicate registration.
func RegisterVocabulary(v *Vocabulary, def bool) {
	vocabularies.mu.Lock()
	defer vocabularies.mu.Unlock()
	id := vocabularyID(v.Schema)
	if vocabularies.byID == nil {
		vocabularies.byID = make(map[string]*Vocabulary)
	}
	if _, ok := vocabularies.byID[id]; ok {
		panic(fmt.Sprintf("jsonschema: vocabulary %q registered twice", v.Schema))
	}
	vocabularies.byID[id] = v
	if def {
		if vocabularies.deflt != nil {
			panic(fmt.Sprintf("jsonschema: %s and %s both registered as default", vocabularies.deflt.Name, v.Name))
		}
		vocabularies.deflt = v
	}
}

// LookupVocabulary returns the vocabulary selected by a $schema
// value, or nil if none is registered.
func LookupVocabulary(s string) *Vocabulary {
	vocabularies.mu.RLock()
	defer vocabularies.mu.RUnlock()
	return vocabularies.byID[vocabularyID(s)]
}

// DefaultVocabulary returns the vocabulary used when a schema has
// no $schema. With a single registered vocabulary, that one is the
// default.
func DefaultVocabulary() *Vocabulary {
	vocabularies.mu.RLock()
	defer vocabularies.mu.RUnlock()
	if vocabularies.deflt != nil || len(vocabularies.byID) != 1 {
		return vocabularies.deflt
	}
	for _, v := range vocabularies.byID {
		return v
	}
	return nil
}
