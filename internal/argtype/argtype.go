// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argtype describes the shapes a keyword argument may take,
// and checks an argument against its shape.
// The checks depend only on the schema, never on an instance.
package argtype

import (
	"fmt"
	"math"
	"regexp"
	"sync"

	"github.com/Independence-University/json-validator/internal/validerr"
	"github.com/Independence-University/json-validator/pkg/jsontext"
)

// ArgType is an enumeration of the possible keyword argument shapes.
type ArgType int

const (
	// Any accepts every value.
	Any ArgType = iota
	Bool
	String
	// StringArray is a non-empty array of unique strings.
	StringArray
	// Type is a simple type name or a non-empty array of unique ones.
	Type
	NonNegativeInt
	Number
	// PositiveNumber is a number strictly greater than zero.
	PositiveNumber
	// Schema is a schema object.
	Schema
	// SchemaArray is a non-empty array of schema objects.
	SchemaArray
	// MapSchema is an object whose member values are schema objects.
	MapSchema
	// SchemaOrSchemas is a schema object or a SchemaArray.
	SchemaOrSchemas
	// BoolOrSchema is a boolean or a schema object.
	BoolOrSchema
	// Dependencies is an object whose member values are
	// schema objects or StringArrays.
	Dependencies
	// Regex is a string holding a regular expression.
	Regex
	// PatternMap is a MapSchema whose keys are regular expressions.
	PatternMap
	// Enum is a non-empty array of unique values.
	Enum
)

// nameToString maps ArgType to a description used in messages.
var nameToString = map[ArgType]string{
	Any:             "any value",
	Bool:            "a boolean",
	String:          "a string",
	StringArray:     "a non-empty array of unique strings",
	Type:            "a type name or an array of type names",
	NonNegativeInt:  "a non-negative integer",
	Number:          "a number",
	PositiveNumber:  "a number greater than 0",
	Schema:          "a schema object",
	SchemaArray:     "a non-empty array of schemas",
	MapSchema:       "an object of schemas",
	SchemaOrSchemas: "a schema or a non-empty array of schemas",
	BoolOrSchema:    "a boolean or a schema",
	Dependencies:    "an object of schemas or string arrays",
	Regex:           "a regular expression",
	PatternMap:      "an object of schemas keyed by regular expressions",
	Enum:            "a non-empty array of unique values",
}

// Name returns a description of an ArgType, for messages.
func Name(at ArgType) string {
	if n, ok := nameToString[at]; ok {
		return n
	}
	panic(fmt.Sprintf("unexpected ArgType value %d", at))
}

// SimpleTypes are the type names permitted by the "type" keyword.
var SimpleTypes = map[string]bool{
	"array":   true,
	"boolean": true,
	"integer": true,
	"null":    true,
	"number":  true,
	"object":  true,
	"string":  true,
}

// Check reports whether arg, the argument of keyword,
// has the shape at. Error placeholders are accepted anywhere,
// as they have already been reported as syntax errors.
// A non-nil result is a [*validerr.SchemaError] pointing
// at the offending node. Regular expressions are compiled
// through res, which may be nil.
func Check(keyword string, at ArgType, arg *jsontext.Node, res *Regexps) *validerr.SchemaError {
	if arg.IsPlaceholder() {
		return nil
	}
	bad := func(n *jsontext.Node, format string, args ...any) *validerr.SchemaError {
		return validerr.Errorf(n, "%q %s", keyword, fmt.Sprintf(format, args...))
	}
	mismatch := func() *validerr.SchemaError {
		return bad(arg, "must be %s, not %s", Name(at), arg.Kind)
	}

	switch at {
	case Any:
		return nil

	case Bool:
		if arg.Kind != jsontext.Boolean {
			return mismatch()
		}

	case String:
		if arg.Kind != jsontext.String {
			return mismatch()
		}

	case StringArray:
		return checkStringArray(arg, bad, mismatch)

	case Type:
		switch arg.Kind {
		case jsontext.String:
			if !SimpleTypes[arg.Str] {
				return bad(arg, "names unknown type %q", arg.Str)
			}
		case jsontext.Array:
			if len(arg.Items) == 0 {
				return bad(arg, "must not be an empty array")
			}
			seen := make(map[string]bool)
			for _, item := range arg.Items {
				if item.IsPlaceholder() {
					continue
				}
				if item.Kind != jsontext.String {
					return bad(item, "element must be a string, not %s", item.Kind)
				}
				if !SimpleTypes[item.Str] {
					return bad(item, "names unknown type %q", item.Str)
				}
				if seen[item.Str] {
					return bad(item, "lists type %q more than once", item.Str)
				}
				seen[item.Str] = true
			}
		default:
			return mismatch()
		}

	case NonNegativeInt:
		if arg.Kind != jsontext.Number || !arg.IsInteger() || arg.Num < 0 {
			return mismatch()
		}
		if arg.Num > math.MaxInt32 {
			return bad(arg, "value %s is too large", arg.Raw)
		}

	case Number:
		if arg.Kind != jsontext.Number {
			return mismatch()
		}

	case PositiveNumber:
		if arg.Kind != jsontext.Number || arg.Num <= 0 {
			return mismatch()
		}

	case Schema:
		if arg.Kind != jsontext.Object {
			return mismatch()
		}

	case SchemaArray:
		return checkSchemaArray(arg, bad, mismatch)

	case MapSchema:
		if arg.Kind != jsontext.Object {
			return mismatch()
		}
		for _, m := range arg.Members {
			if !m.Value.IsPlaceholder() && m.Value.Kind != jsontext.Object {
				return bad(m.Value, "member %q must be a schema object, not %s", m.Key.Str, m.Value.Kind)
			}
		}

	case SchemaOrSchemas:
		switch arg.Kind {
		case jsontext.Object:
		case jsontext.Array:
			return checkSchemaArray(arg, bad, mismatch)
		default:
			return mismatch()
		}

	case BoolOrSchema:
		if arg.Kind != jsontext.Boolean && arg.Kind != jsontext.Object {
			return mismatch()
		}

	case Dependencies:
		if arg.Kind != jsontext.Object {
			return mismatch()
		}
		for _, m := range arg.Members {
			v := m.Value
			switch {
			case v.IsPlaceholder(), v.Kind == jsontext.Object:
			case v.Kind == jsontext.Array:
				if se := checkStringArray(v, bad, func() *validerr.SchemaError {
					return bad(v, "member %q must be a schema or an array of strings", m.Key.Str)
				}); se != nil {
					return se
				}
			default:
				return bad(v, "member %q must be a schema or an array of strings, not %s", m.Key.Str, v.Kind)
			}
		}

	case Regex:
		if arg.Kind != jsontext.String {
			return mismatch()
		}
		if _, err := res.Compile(arg.Str); err != nil {
			return bad(arg, "is not a valid regular expression: %v", err)
		}

	case PatternMap:
		if arg.Kind != jsontext.Object {
			return mismatch()
		}
		for _, m := range arg.Members {
			if m.Key.Kind == jsontext.String {
				if _, err := res.Compile(m.Key.Str); err != nil {
					return bad(m.Key, "key %q is not a valid regular expression: %v", m.Key.Str, err)
				}
			}
			if !m.Value.IsPlaceholder() && m.Value.Kind != jsontext.Object {
				return bad(m.Value, "member %q must be a schema object, not %s", m.Key.Str, m.Value.Kind)
			}
		}

	case Enum:
		if arg.Kind != jsontext.Array {
			return mismatch()
		}
		if len(arg.Items) == 0 {
			return bad(arg, "must not be an empty array")
		}
		for i, item := range arg.Items {
			for _, prev := range arg.Items[:i] {
				if jsontext.Equal(prev, item) {
					return bad(item, "lists %v more than once", item)
				}
			}
		}

	default:
		panic(fmt.Sprintf("unexpected ArgType value %d", at))
	}
	return nil
}

type badFunc func(n *jsontext.Node, format string, args ...any) *validerr.SchemaError

func checkStringArray(arg *jsontext.Node, bad badFunc, mismatch func() *validerr.SchemaError) *validerr.SchemaError {
	if arg.Kind != jsontext.Array {
		return mismatch()
	}
	if len(arg.Items) == 0 {
		return bad(arg, "must not be an empty array")
	}
	seen := make(map[string]bool)
	for _, item := range arg.Items {
		if item.IsPlaceholder() {
			continue
		}
		if item.Kind != jsontext.String {
			return bad(item, "element must be a string, not %s", item.Kind)
		}
		if seen[item.Str] {
			return bad(item, "lists %q more than once", item.Str)
		}
		seen[item.Str] = true
	}
	return nil
}

func checkSchemaArray(arg *jsontext.Node, bad badFunc, mismatch func() *validerr.SchemaError) *validerr.SchemaError {
	if arg.Kind != jsontext.Array {
		return mismatch()
	}
	if len(arg.Items) == 0 {
		return bad(arg, "must not be an empty array")
	}
	for i, item := range arg.Items {
		if !item.IsPlaceholder() && item.Kind != jsontext.Object {
			return bad(item, "element %d must be a schema object, not %s", i, item.Kind)
		}
	}
	return nil
}

// Regexps caches compiled regular expressions.
// A Regexps belongs to one evaluation and is dropped with it.
// The zero value is ready to use, and it is safe for concurrent use.
// A nil *Regexps compiles every time.
type Regexps struct {
	m sync.Map // map[string]compiledRegex
}

type compiledRegex struct {
	re  *regexp.Regexp
	err error
}

// Compile compiles a pattern, reusing an earlier result.
func (c *Regexps) Compile(pattern string) (*regexp.Regexp, error) {
	if c == nil {
		return regexp.Compile(pattern)
	}
	if e, ok := c.m.Load(pattern); ok {
		e := e.(compiledRegex)
		return e.re, e.err
	}
	re, err := regexp.Compile(pattern)
	c.m.Store(pattern, compiledRegex{re, err})
	return re, err
}
