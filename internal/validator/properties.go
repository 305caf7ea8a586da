// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import (
	"fmt"

	"github.com/Independence-University/json-validator/internal/validerr"
	"github.com/Independence-University/json-validator/pkg/jsonpointer"
	"github.com/Independence-University/json-validator/pkg/jsontext"
	"github.com/Independence-University/json-validator/pkg/types"
)

// ValidateProperties implements the properties keyword.
func ValidateProperties(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.Object {
		return nil
	}

	var topErr error
	for _, name := range arg.Keys() {
		v, found := instance.Lookup(name)
		if !found {
			continue
		}
		sub, _ := arg.Lookup(name)
		err := state.ValidateSubSchema(sub, v, name)
		validerr.AddError(&topErr, err, jsonpointer.Escape(name))
	}
	return topErr
}

// ValidatePatternProperties implements the patternProperties keyword.
func ValidatePatternProperties(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.Object {
		return nil
	}

	var topErr error
	for _, name := range instance.Keys() {
		v, _ := instance.Lookup(name)
		for _, pat := range arg.Keys() {
			re, err := state.CompileRegex(pat)
			if err != nil {
				// Reported by the argument check.
				continue
			}
			if !re.MatchString(name) {
				continue
			}
			sub, _ := arg.Lookup(pat)
			err = state.ValidateSubSchema(sub, v, name)
			validerr.AddError(&topErr, err, jsonpointer.Escape(pat))
		}
	}
	return topErr
}

// ValidateAdditionalProperties implements the additionalProperties keyword.
// It applies to the members of the instance that are matched
// by neither properties nor patternProperties in the same schema.
func ValidateAdditionalProperties(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.Object {
		return nil
	}

	var topErr error
	for _, name := range instance.Keys() {
		if isDeclared(state, name) {
			continue
		}
		v, _ := instance.Lookup(name)

		if arg.Kind == jsontext.Boolean {
			if arg.Bool {
				continue
			}
			validerr.AddValidationErrorStruct(&topErr, &validerr.ValidationError{
				Message:          fmt.Sprintf("unexpected additional property %q", name),
				InstanceLocation: state.InstancePointer() + "/" + jsonpointer.Escape(name),
				Node:             memberKey(instance, name),
			})
			continue
		}

		err := state.ValidateSubSchema(arg, v, name)
		validerr.AddError(&topErr, err, "")
	}
	return topErr
}

// isDeclared reports whether the property name is covered by
// the properties or patternProperties keywords of the current schema.
func isDeclared(state *types.ValidationState, name string) bool {
	s := state.Schema
	if props, ok := s.Lookup("properties"); ok && props.Kind == jsontext.Object {
		if _, found := props.Lookup(name); found {
			return true
		}
	}
	if pats, ok := s.Lookup("patternProperties"); ok && pats.Kind == jsontext.Object {
		for _, pat := range pats.Keys() {
			if re, err := state.CompileRegex(pat); err == nil && re.MatchString(name) {
				return true
			}
		}
	}
	return false
}

// memberKey returns the key node of the last member of
// the object n named name, falling back to its value.
func memberKey(n *jsontext.Node, name string) *jsontext.Node {
	for i := len(n.Members) - 1; i >= 0; i-- {
		m := n.Members[i]
		if m.Key.Kind == jsontext.String && m.Key.Str == name {
			return m.Key
		}
	}
	v, _ := n.Lookup(name)
	return v
}
