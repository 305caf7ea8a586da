// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"fmt"
)

// SourceKind says how a Source supplies its document.
type SourceKind int

const (
	// Text means Value is the document text.
	Text SourceKind = iota
	// URI means Value is the URI of the document.
	URI
)

// Source is a document given to Validate.
type Source struct {
	Kind  SourceKind
	Value string
}

// TextSource returns a Source for inline text.
func TextSource(text string) Source {
	return Source{Kind: Text, Value: text}
}

// URISource returns a Source for a document to be fetched.
func URISource(uri string) Source {
	return Source{Kind: URI, Value: uri}
}

var sourceKindNames = map[SourceKind]string{
	Text: "Text",
	URI:  "Uri",
}

func (k SourceKind) String() string {
	if s, ok := sourceKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("SourceKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k SourceKind) MarshalText() ([]byte, error) {
	s, ok := sourceKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown source kind %d", int(k))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SourceKind) UnmarshalText(b []byte) error {
	for v, s := range sourceKindNames {
		if s == string(b) {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("unknown source kind %q", b)
}

// IssueKind classifies an Issue.
type IssueKind int

const (
	// Syntax is malformed JSON text.
	Syntax IssueKind = iota
	// Validation is an instance that does not satisfy the schema,
	// or a defect in the schema itself.
	Validation
)

var issueKindNames = map[IssueKind]string{
	Syntax:     "Syntax",
	Validation: "Validation",
}

func (k IssueKind) String() string {
	if s, ok := issueKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("IssueKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k IssueKind) MarshalText() ([]byte, error) {
	s, ok := issueKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown issue kind %d", int(k))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *IssueKind) UnmarshalText(b []byte) error {
	for v, s := range issueKindNames {
		if s == string(b) {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("unknown issue kind %q", b)
}

// Location says which document an Issue is about.
type Location int

const (
	InstanceDocument Location = iota
	Schema
)

var locationNames = map[Location]string{
	InstanceDocument: "InstanceDocument",
	Schema:           "Schema",
}

func (l Location) String() string {
	if s, ok := locationNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Location(%d)", int(l))
}

// MarshalText implements encoding.TextMarshaler.
func (l Location) MarshalText() ([]byte, error) {
	s, ok := locationNames[l]
	if !ok {
		return nil, fmt.Errorf("unknown location %d", int(l))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Location) UnmarshalText(b []byte) error {
	for v, s := range locationNames {
		if s == string(b) {
			*l = v
			return nil
		}
	}
	return fmt.Errorf("unknown location %q", b)
}

// Issue is a single problem found by Validate.
// Start and Length are in characters (Unicode code points)
// of the document text.
type Issue struct {
	Kind     IssueKind
	Location Location
	Start    int
	Length   int
	Message  string

	// Document is the URI of the document holding the span,
	// when that is not the instance or the schema itself.
	// This happens for defects in referenced schemas.
	Document string `json:",omitempty"`

	// KeywordLocation and InstanceLocation are JSON pointers
	// for instance validation failures.
	KeywordLocation  string `json:",omitempty"`
	InstanceLocation string `json:",omitempty"`
}

func (is Issue) String() string {
	return fmt.Sprintf("%s %s [%d+%d]: %s", is.Location, is.Kind, is.Start, is.Length, is.Message)
}

// Result is the outcome of Validate.
type Result struct {
	// InstanceDocumentText and SchemaText are the texts the
	// issue spans refer to. For a URI source they hold the
	// fetched text, or "" if the fetch failed.
	InstanceDocumentText string
	SchemaText           string
	// Errors lists the issues: syntax errors in the instance,
	// then syntax errors in the schema, then validation failures,
	// then schema defects.
	Errors []Issue
}

// Valid reports whether no issue was found.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}
