// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"fmt"
	"iter"

	"github.com/Independence-University/json-validator/internal/argtype"
	"github.com/Independence-University/json-validator/pkg/jsonpointer"
	"github.com/Independence-University/json-validator/pkg/jsontext"
)

// Children returns an iterator over the immediate subschemas,
// as found through the keywords of v.
// The first iterator value is the location of the subschema
// relative to s, as used in a JSON pointer;
// the second is the subschema itself.
// Only schema objects are returned.
func (s Schema) Children(v *Vocabulary) iter.Seq2[string, Schema] {
	return func(yield func(string, Schema) bool) {
		if s.Node == nil || s.Node.Kind != jsontext.Object {
			return
		}
		for _, name := range s.Node.Keys() {
			kw := v.Keywords[name]
			if kw == nil {
				continue
			}
			arg, _ := s.Lookup(name)
			loc := jsonpointer.Escape(name)

			one := func(loc string, n *jsontext.Node) bool {
				if n.IsPlaceholder() || n.Kind != jsontext.Object {
					return true
				}
				return yield(loc, s.Sub(n))
			}
			array := func() bool {
				if arg.Kind != jsontext.Array {
					return true
				}
				for i, item := range arg.Items {
					if !one(fmt.Sprintf("%s/%d", loc, i), item) {
						return false
					}
				}
				return true
			}
			members := func() bool {
				for _, key := range arg.Keys() {
					val, _ := arg.Lookup(key)
					if !one(loc+"/"+jsonpointer.Escape(key), val) {
						return false
					}
				}
				return true
			}

			var ok bool
			switch kw.ArgType {
			case argtype.Schema, argtype.BoolOrSchema:
				ok = one(loc, arg)
			case argtype.SchemaArray:
				ok = array()
			case argtype.SchemaOrSchemas:
				ok = one(loc, arg) && array()
			case argtype.MapSchema, argtype.PatternMap, argtype.Dependencies:
				ok = members()
			default:
				ok = true
			}
			if !ok {
				return
			}
		}
	}
}

// Sweep runs the argument checks of every keyword in s and in
// all of its subschemas, and resolves every reference among them,
// loading the documents they name. The defects found go to the sink.
// This makes schema errors visible whatever the instance is.
// Each schema is swept at most once per evaluation.
func (vs *ValidationState) Sweep(s Schema) {
	if s.Node.IsPlaceholder() || s.Node.Kind != jsontext.Object {
		return
	}
	if _, done := vs.run.swept.LoadOrStore(s.Node, true); done {
		return
	}

	state := *vs
	state.Schema = s
	for _, name := range s.Node.Keys() {
		kw := vs.run.vocab.Keywords[name]
		if kw == nil {
			continue
		}
		arg, _ := s.Lookup(name)
		if !state.checkKeyword(kw, arg) {
			continue
		}
		if name == RefKeyword.Name {
			if _, _, se := state.ResolveRef(arg); se != nil {
				state.Sink.Add(se)
			}
		}
	}

	for _, child := range s.Children(vs.run.vocab) {
		state.Sweep(child)
	}
}
