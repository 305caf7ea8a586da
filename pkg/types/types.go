// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types defines the JSON schema evaluation engine.
// Most programs do not need to use this package;
// they should call jsonschema.Validate.
//
// The engine works for a specific JSON schema draft,
// whose vocabulary must be registered by importing it:
//
//	import _ "github.com/Independence-University/json-validator/pkg/draft4"
package types

import (
	"fmt"

	"github.com/Independence-University/json-validator/internal/argtype"
	"github.com/Independence-University/json-validator/pkg/jsontext"
)

// Schema is a schema object within a parsed document.
// A schema is never copied out of its document, so that
// errors in it can be reported at their position in the text.
type Schema struct {
	Doc  *jsontext.Document
	Node *jsontext.Node
}

// Lookup returns the argument of a keyword in the schema.
// The bool result reports whether the keyword is present at all.
func (s Schema) Lookup(keyword string) (*jsontext.Node, bool) {
	return s.Node.Lookup(keyword)
}

// Sub returns the schema at node n of the same document.
func (s Schema) Sub(n *jsontext.Node) Schema {
	return Schema{Doc: s.Doc, Node: n}
}

// String returns a short description of where the schema is.
func (s Schema) String() string {
	if s.Node == nil {
		return fmt.Sprintf("%s: <nil>", s.Doc.URI)
	}
	line, col := s.Doc.Position(s.Node.Start)
	return fmt.Sprintf("%s:%d:%d", s.Doc.URI, line, col)
}

// Keyword is a schema keyword.
type Keyword struct {
	// Name is the keyword, such as allOf, anyOf, and so forth.
	Name string

	// ArgType is the shape of argument expected.
	// It is checked before Validate is called.
	ArgType argtype.ArgType

	// Check, if not nil, is an additional check of the argument
	// that may look at sibling keywords in s.
	// Like the ArgType check it must not depend on an instance.
	Check func(arg *jsontext.Node, s Schema) error

	// Validate is a function that checks whether an instance
	// matches the keyword. arg is the value from the schema.
	// A nil Validate means that the keyword is an annotation.
	//
	// The function returns an error if any.
	// A failure to validate will be type [*ValidationError]
	// or type [*ValidationErrors].
	// Any other error type indicates a problem with the schema itself,
	// not the instance.
	Validate func(arg, instance *jsontext.Node, state *ValidationState) error
}

// Equal reports whether two keywords are equal.
// This is for the benefit of the github.com/google/go-cmp package,
// which won't compare the function values.
func (k1 Keyword) Equal(k2 Keyword) bool {
	return k1.Name == k2.Name && k1.ArgType == k2.ArgType
}
