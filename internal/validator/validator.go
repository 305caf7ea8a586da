// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package validator contains the keyword validation functions.
// Each function is called with a keyword argument that has
// already passed the checks for its argument type.
package validator

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/Independence-University/json-validator/internal/validerr"
	"github.com/Independence-University/json-validator/pkg/jsonpointer"
	"github.com/Independence-University/json-validator/pkg/jsontext"
	"github.com/Independence-University/json-validator/pkg/types"
)

// ValidateAllOf implements the allOf keyword.
func ValidateAllOf(arg, instance *jsontext.Node, state *types.ValidationState) error {
	var topErr error
	for i, err := range state.Branches(arg, instance) {
		validerr.AddError(&topErr, err, strconv.Itoa(i))
	}
	return topErr
}

// ValidateAnyOf implements the anyOf keyword.
func ValidateAnyOf(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if slices.Contains(state.Branches(arg, instance), nil) {
		return nil
	}
	return &validerr.ValidationError{
		Message: `no "anyOf" schema matches`,
	}
}

// ValidateOneOf implements the oneOf keyword.
func ValidateOneOf(arg, instance *jsontext.Node, state *types.ValidationState) error {
	c := 0
	for _, err := range state.Branches(arg, instance) {
		if err == nil {
			c++
		}
	}
	switch c {
	case 1:
		return nil
	case 0:
		return &validerr.ValidationError{
			Message: `no "oneOf" schema matches`,
		}
	default:
		return &validerr.ValidationError{
			Message: fmt.Sprintf(`instance matched more than one branch of "oneOf" (%d matches)`, c),
		}
	}
}

// ValidateNot implements the not keyword.
func ValidateNot(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if err := state.ValidateInPlaceSchema(arg, instance); err != nil {
		return nil
	}
	return &validerr.ValidationError{
		Message: `"not" schema matched`,
	}
}

// ValidateType implements the type keyword.
func ValidateType(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if arg.Kind == jsontext.String {
		if typeMatches(arg.Str, instance) {
			return nil
		}
		return &validerr.ValidationError{
			Message: fmt.Sprintf("instance has type %q, want %q", typeForError(instance), arg.Str),
		}
	}

	var want []string
	for _, item := range arg.Items {
		if item.Kind != jsontext.String {
			continue
		}
		if typeMatches(item.Str, instance) {
			return nil
		}
		want = append(want, item.Str)
	}
	return &validerr.ValidationError{
		Message: fmt.Sprintf("instance has type %q, want one of %v", typeForError(instance), want),
	}
}

// typeMatches reports whether instance has the simple type typ.
func typeMatches(typ string, instance *jsontext.Node) bool {
	switch typ {
	case "integer":
		return instance.Kind == jsontext.Number && instance.IsInteger()
	case "number":
		return instance.Kind == jsontext.Number
	default:
		return typ == typeForError(instance)
	}
}

// typeForError returns the name of the type of instance,
// as used by the type keyword.
func typeForError(instance *jsontext.Node) string {
	return instance.Kind.String()
}

// ValidateEnum implements the enum keyword.
func ValidateEnum(arg, instance *jsontext.Node, state *types.ValidationState) error {
	for _, v := range arg.Items {
		if jsontext.Equal(v, instance) {
			return nil
		}
	}
	return &validerr.ValidationError{
		Message: fmt.Sprintf(`no "enum" value matched %v`, instance),
	}
}

// ValidateMultipleOf implements the multipleOf keyword.
func ValidateMultipleOf(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.Number {
		return nil
	}
	if !isMultiple(instance.Num, arg.Num) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf(`"multipleOf" failed: value %s is not a multiple of %s`, instance.Raw, arg.Raw),
		}
	}
	return nil
}

// isMultiple reports whether v is a multiple of d, d > 0.
// Non-integral quotients are compared with a small relative
// tolerance, so that 0.3 is a multiple of 0.1.
func isMultiple(v, d float64) bool {
	if v == math.Trunc(v) && d == math.Trunc(d) {
		return math.Mod(v, d) == 0
	}
	q := v / d
	if math.IsInf(q, 0) {
		return false
	}
	return math.Abs(q-math.Round(q)) <= 1e-9*math.Max(1, math.Abs(q))
}

// ValidateMaximum implements the maximum keyword,
// along with the draft 4 boolean exclusiveMaximum.
func ValidateMaximum(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.Number {
		return nil
	}
	if exclusive(state, "exclusiveMaximum") {
		if instance.Num >= arg.Num {
			return &validerr.ValidationError{
				Message: fmt.Sprintf(`value %s is not less than exclusive "maximum" limit %s`, instance.Raw, arg.Raw),
			}
		}
	} else if instance.Num > arg.Num {
		return &validerr.ValidationError{
			Message: fmt.Sprintf(`value %s is larger than "maximum" limit %s`, instance.Raw, arg.Raw),
		}
	}
	return nil
}

// ValidateMinimum implements the minimum keyword,
// along with the draft 4 boolean exclusiveMinimum.
func ValidateMinimum(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.Number {
		return nil
	}
	if exclusive(state, "exclusiveMinimum") {
		if instance.Num <= arg.Num {
			return &validerr.ValidationError{
				Message: fmt.Sprintf(`value %s is not greater than exclusive "minimum" limit %s`, instance.Raw, arg.Raw),
			}
		}
	} else if instance.Num < arg.Num {
		return &validerr.ValidationError{
			Message: fmt.Sprintf(`value %s is smaller than "minimum" limit %s`, instance.Raw, arg.Raw),
		}
	}
	return nil
}

// exclusive reports whether the boolean keyword is true
// in the current schema.
func exclusive(state *types.ValidationState, keyword string) bool {
	v, ok := state.Schema.Lookup(keyword)
	return ok && v.Kind == jsontext.Boolean && v.Bool
}

// CheckExclusive returns a check for exclusiveMaximum or
// exclusiveMinimum, which mean nothing without their bound.
func CheckExclusive(bound string) func(*jsontext.Node, types.Schema) error {
	return func(arg *jsontext.Node, s types.Schema) error {
		if v, ok := s.Lookup(bound); !ok || v.Kind != jsontext.Number {
			return fmt.Errorf("%q requires %q to be present", "exclusive"+upperFirst(bound), bound)
		}
		return nil
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// ValidateMaxLength implements the maxLength keyword.
func ValidateMaxLength(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.String {
		return nil
	}
	if n := utf8.RuneCountInString(instance.Str); n > int(arg.Num) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf(`value %q too long for "maxLength" argument %s`, instance.Str, arg.Raw),
		}
	}
	return nil
}

// ValidateMinLength implements the minLength keyword.
func ValidateMinLength(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.String {
		return nil
	}
	if n := utf8.RuneCountInString(instance.Str); n < int(arg.Num) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf(`value %q too short for "minLength" argument %s`, instance.Str, arg.Raw),
		}
	}
	return nil
}

// ValidatePattern implements the pattern keyword.
func ValidatePattern(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.String {
		return nil
	}
	re, err := state.CompileRegex(arg.Str)
	if err != nil {
		return fmt.Errorf(`"pattern" regexp %q failed: %v`, arg.Str, err)
	}
	if !re.MatchString(instance.Str) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf(`"pattern" regexp %q did not match %q`, arg.Str, instance.Str),
		}
	}
	return nil
}

// ValidateMaxItems implements the maxItems keyword.
func ValidateMaxItems(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.Array {
		return nil
	}
	if ln := len(instance.Items); ln > int(arg.Num) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf(`length %d too long for "maxItems" argument %s`, ln, arg.Raw),
		}
	}
	return nil
}

// ValidateMinItems implements the minItems keyword.
func ValidateMinItems(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.Array {
		return nil
	}
	if ln := len(instance.Items); ln < int(arg.Num) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf(`length %d too short for "minItems" argument %s`, ln, arg.Raw),
		}
	}
	return nil
}

// ValidateUniqueItems implements the uniqueItems keyword.
// Each repeated element is reported at its later occurrence.
func ValidateUniqueItems(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if !arg.Bool || instance.Kind != jsontext.Array {
		return nil
	}
	var topErr error
	for i, item := range instance.Items {
		for _, prev := range instance.Items[:i] {
			if jsontext.Equal(prev, item) {
				validerr.AddValidationErrorStruct(&topErr, &validerr.ValidationError{
					Message:          fmt.Sprintf(`"uniqueItems" failure: %v appears more than once`, item),
					InstanceLocation: state.InstancePointer() + "/" + strconv.Itoa(i),
					Node:             item,
				})
				break
			}
		}
	}
	return topErr
}

// ValidateMaxProperties implements the maxProperties keyword.
func ValidateMaxProperties(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.Object {
		return nil
	}
	if ln := len(instance.Keys()); ln > int(arg.Num) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf(`number of properties %d is more than "maxProperties" required %s`, ln, arg.Raw),
		}
	}
	return nil
}

// ValidateMinProperties implements the minProperties keyword.
func ValidateMinProperties(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.Object {
		return nil
	}
	if ln := len(instance.Keys()); ln < int(arg.Num) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf(`number of properties %d is less than "minProperties" required %s`, ln, arg.Raw),
		}
	}
	return nil
}

// ValidateRequired implements the required keyword.
// A missing field has no span of its own, so the failure
// is reported at the instance object.
func ValidateRequired(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.Object {
		return nil
	}
	var topErr error
	for _, item := range arg.Items {
		if item.Kind != jsontext.String {
			continue
		}
		if _, found := instance.Lookup(item.Str); !found {
			err := &validerr.ValidationError{
				Message:          fmt.Sprintf("missing required field %q", item.Str),
				InstanceLocation: state.InstancePointer(),
				Node:             instance,
			}
			validerr.AddError(&topErr, err, jsonpointer.Escape(item.Str))
		}
	}
	return topErr
}

// ValidateFormat implements the format keyword.
// Unknown formats always match.
func ValidateFormat(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.String {
		return nil
	}
	h := state.Formats().Lookup(arg.Str)
	if h == nil {
		return nil
	}
	if err := h.Check(instance.Str); err != nil {
		return &validerr.ValidationError{
			Message: err.Error(),
		}
	}
	return nil
}

// ValidateDependencies implements the draft 4 dependencies keyword.
func ValidateDependencies(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.Object {
		return nil
	}

	var topErr error
	for _, name := range arg.Keys() {
		if _, found := instance.Lookup(name); !found {
			continue
		}
		dep, _ := arg.Lookup(name)
		switch dep.Kind {
		case jsontext.Object:
			if err := state.ValidateInPlaceSchema(dep, instance); err != nil {
				validerr.AddError(&topErr, err, jsonpointer.Escape(name))
			}
		case jsontext.Array:
			for _, item := range dep.Items {
				if item.Kind != jsontext.String {
					continue
				}
				if _, found := instance.Lookup(item.Str); !found {
					validerr.AddError(&topErr, &validerr.ValidationError{
						Message:          fmt.Sprintf(`"dependencies" failure: have field %q but not field %q`, name, item.Str),
						InstanceLocation: state.InstancePointer(),
						Node:             instance,
					}, jsonpointer.Escape(name))
				}
			}
		}
	}
	return topErr
}
