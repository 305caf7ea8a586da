// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Independence-University/json-validator/internal/validerr"
	"github.com/Independence-University/json-validator/pkg/jsonpointer"
	"github.com/Independence-University/json-validator/pkg/jsontext"
	"github.com/Independence-University/json-validator/pkg/loader"
)

// activeRef is a list of the references being followed
// on the current path of the evaluation.
// Lists share their tails, so a state can extend the list
// without disturbing its siblings.
type activeRef struct {
	target   string         // document URI and pointer
	instance *jsontext.Node // instance the target is applied to
	next     *activeRef
}

// validateRef validates instance against the target of ref.
// An unresolvable or circular reference is reported to the sink
// and the instance is treated as satisfying it.
func (vs *ValidationState) validateRef(ref, instance *jsontext.Node) error {
	target, key, se := vs.ResolveRef(ref)
	if se != nil {
		vs.Sink.Add(se)
		return nil
	}
	if target.Node == nil {
		return nil
	}

	for r := vs.refs; r != nil; r = r.next {
		if r.target == key && r.instance == instance {
			vs.run.logger.Debug("circular reference", "ref", ref.Str, "at", vs.Schema.String())
			vs.Sink.Add(&validerr.SchemaError{
				Node:    ref,
				Doc:     vs.Schema.Doc,
				Message: fmt.Sprintf("reference %q: circular reference", ref.Str),
			})
			return nil
		}
	}

	sub := *vs
	sub.refs = &activeRef{target: key, instance: instance, next: vs.refs}
	return sub.validate(target, instance)
}

// ResolveRef finds the schema that ref, a $ref argument in the
// current schema, refers to. It returns the target and a key
// identifying it. A target that is a syntax error placeholder
// is returned as a Schema with a nil Node.
func (vs *ValidationState) ResolveRef(ref *jsontext.Node) (Schema, string, *validerr.SchemaError) {
	s := vs.Schema
	fail := func(format string, args ...any) (Schema, string, *validerr.SchemaError) {
		return Schema{}, "", &validerr.SchemaError{
			Node:    ref,
			Doc:     s.Doc,
			Message: fmt.Sprintf("reference %q: ", ref.Str) + fmt.Sprintf(format, args...),
		}
	}

	docURI, pointer, err := resolveURI(s.Doc.URI, ref.Str)
	if err != nil {
		return fail("%v", err)
	}

	doc := s.Doc
	if docURI != loader.Normalize(s.Doc.URI) {
		doc = vs.run.loader.Resolve(vs.run.ctx, docURI)
		if doc.Root == nil {
			msg := "document is empty"
			if len(doc.Errors) > 0 {
				msg = doc.Errors[0].Message
			}
			vs.run.logger.Debug("referenced document failed to load", "uri", docURI, "error", msg)
			return fail("could not load document: %s", msg)
		}
		if len(doc.Errors) > 0 {
			vs.Sink.Add(&validerr.SchemaError{
				Node:    ref,
				Doc:     s.Doc,
				Message: fmt.Sprintf("reference %q: referenced document has %d syntax error(s)", ref.Str, len(doc.Errors)),
			})
		}
	}

	n, err := jsonpointer.Deref(doc.Root, pointer)
	if err != nil {
		return fail("%v", err)
	}
	if n.IsPlaceholder() {
		return Schema{Doc: doc}, "", nil
	}
	if n.Kind != jsontext.Object {
		return fail("target is not a schema object")
	}

	target := Schema{Doc: doc, Node: n}
	if doc != s.Doc {
		// Schemas in other documents are checked when first reached.
		vs.Sweep(target)
	}
	return target, docURI + "#" + pointer, nil
}

// resolveURI resolves ref against the document URI base.
// It returns the URI of the referenced document
// and the JSON pointer within it.
func resolveURI(base, ref string) (docURI, pointer string, err error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", fmt.Errorf("invalid URI: %v", err)
	}
	if strings.HasPrefix(ref, "#") {
		return loader.Normalize(base), u.Fragment, nil
	}

	abs := u
	if b, err := url.Parse(base); err == nil {
		abs = b.ResolveReference(u)
	}
	abs.Fragment = ""
	abs.RawFragment = ""
	return abs.String(), u.Fragment, nil
}
