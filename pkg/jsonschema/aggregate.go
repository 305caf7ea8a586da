// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"github.com/Independence-University/json-validator/pkg/jsontext"
	"github.com/Independence-University/json-validator/pkg/types"
)

// Aggregate builds the Result of validating instance against schema.
// The syntax errors of each document come first, instance then schema,
// followed by the validation failures and schema defects in out,
// each in the order found. Nothing is deduplicated.
func Aggregate(instance, schema *jsontext.Document, out *types.Outcome) *Result {
	r := &Result{
		InstanceDocumentText: instance.Text,
		SchemaText:           schema.Text,
	}
	r.Errors = appendSyntax(r.Errors, instance, InstanceDocument)
	r.Errors = appendSyntax(r.Errors, schema, Schema)
	if out == nil {
		return r
	}

	for _, ve := range out.Validation {
		start, length := span(instance, ve.Node)
		r.Errors = append(r.Errors, Issue{
			Kind:             Validation,
			Location:         InstanceDocument,
			Start:            start,
			Length:           length,
			Message:          ve.Message,
			KeywordLocation:  ve.KeywordLocation,
			InstanceLocation: ve.InstanceLocation,
		})
	}

	for _, se := range out.Sanity {
		doc := se.Doc
		if doc == nil {
			doc = schema
		}
		start, length := span(doc, se.Node)
		is := Issue{
			Kind:     Validation,
			Location: Schema,
			Start:    start,
			Length:   length,
			Message:  se.Message,
		}
		if doc != schema {
			is.Document = doc.URI
		}
		r.Errors = append(r.Errors, is)
	}
	return r
}

func appendSyntax(issues []Issue, doc *jsontext.Document, loc Location) []Issue {
	for _, pe := range doc.Errors {
		start := doc.CharOffset(pe.Start)
		issues = append(issues, Issue{
			Kind:     Syntax,
			Location: loc,
			Start:    start,
			Length:   doc.CharOffset(pe.Start+pe.Length) - start,
			Message:  pe.Message,
		})
	}
	return issues
}

// span returns the character span of n in doc.
// A nil node is taken to be the document root.
func span(doc *jsontext.Document, n *jsontext.Node) (start, length int) {
	if n == nil {
		n = doc.Root
	}
	if n == nil {
		return 0, 0
	}
	start = doc.CharOffset(n.Start)
	return start, doc.CharOffset(n.End()) - start
}
