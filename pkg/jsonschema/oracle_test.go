// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema_test

import (
	"testing"

	"github.com/goccy/go-json"
	santhosh "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/Independence-University/json-validator/pkg/jsonschema"
)

// oracleCases are draft 4 schemas, each with instances to try.
// The verdicts must agree with an independent implementation.
var oracleCases = []struct {
	schema    string
	instances []string
}{
	{`{"type": "object", "properties": {"a": {"type": "string"}, "b": {"type": "integer"}}, "required": ["a"]}`,
		[]string{`{"a": "x"}`, `{"a": 1}`, `{"b": 2}`, `{"a": "x", "b": 2.5}`, `[]`, `"a"`}},
	{`{"type": ["string", "null"], "minLength": 2, "maxLength": 3}`,
		[]string{`"ab"`, `"a"`, `"abcd"`, `null`, `"héé"`, `3`}},
	{`{"minimum": 1, "maximum": 10, "exclusiveMaximum": true, "multipleOf": 0.5}`,
		[]string{`1`, `10`, `9.5`, `0.5`, `2.25`, `"x"`}},
	{`{"minimum": 0, "exclusiveMinimum": true}`,
		[]string{`0`, `0.0001`, `-1`}},
	{`{"pattern": "^[a-z]+$"}`,
		[]string{`"abc"`, `"aBc"`, `""`, `7`}},
	{`{"items": {"type": "integer"}, "minItems": 1, "maxItems": 3, "uniqueItems": true}`,
		[]string{`[1]`, `[]`, `[1, 2, 3, 4]`, `[1, 1]`, `[1, "a"]`, `{}`}},
	{`{"items": [{"type": "string"}, {"type": "number"}], "additionalItems": false}`,
		[]string{`["a", 1]`, `["a"]`, `["a", 1, 2]`, `[1, "a"]`}},
	{`{"items": [{"type": "string"}], "additionalItems": {"type": "boolean"}}`,
		[]string{`["a", true, false]`, `["a", 1]`}},
	{`{"properties": {"a": {}}, "patternProperties": {"^x-": {"type": "string"}}, "additionalProperties": false}`,
		[]string{`{"a": 1}`, `{"x-y": "s"}`, `{"x-y": 1}`, `{"b": 1}`}},
	{`{"additionalProperties": {"type": "number"}, "minProperties": 1, "maxProperties": 2}`,
		[]string{`{"a": 1}`, `{}`, `{"a": 1, "b": 2, "c": 3}`, `{"a": "x"}`}},
	{`{"dependencies": {"a": ["b"], "c": {"required": ["d"]}}}`,
		[]string{`{"a": 1, "b": 2}`, `{"a": 1}`, `{"c": 1, "d": 1}`, `{"c": 1}`, `{}`}},
	{`{"enum": [1, "two", [3], {"four": 4}, null]}`,
		[]string{`1`, `"two"`, `[3]`, `{"four": 4}`, `null`, `2`, `{"four": 5}`, `[3, 3]`}},
	{`{"allOf": [{"type": "integer"}, {"minimum": 2}], "anyOf": [{"maximum": 3}, {"multipleOf": 5}]}`,
		[]string{`2`, `10`, `7`, `1`}},
	{`{"oneOf": [{"type": "integer"}, {"minimum": 2}]}`,
		[]string{`1`, `2.5`, `3`, `0.5`}},
	{`{"not": {"type": ["string", "boolean"]}}`,
		[]string{`1`, `"s"`, `true`, `null`}},
	{`{"definitions": {"node": {"type": "object", "properties": {"next": {"$ref": "#/definitions/node"}, "v": {"type": "integer"}}}}, "$ref": "#/definitions/node"}`,
		[]string{`{"v": 1, "next": {"v": 2, "next": {}}}`, `{"next": {"next": {"v": "x"}}}`, `{"next": 1}`}},
	{`{"properties": {"a~b": {"type": "string"}, "c/d": {"$ref": "#/properties/a~0b"}}}`,
		[]string{`{"a~b": "x", "c/d": "y"}`, `{"c/d": 1}`}},
}

func TestOracle(t *testing.T) {
	const url = "http://example.com/schema.json"
	for _, tc := range oracleCases {
		schema := `{"$schema": "http://json-schema.org/draft-04/schema#", ` + tc.schema[1:]

		var doc any
		if err := json.Unmarshal([]byte(schema), &doc); err != nil {
			t.Fatalf("%s: %v", schema, err)
		}
		c := santhosh.NewCompiler()
		if err := c.AddResource(url, doc); err != nil {
			t.Fatalf("%s: AddResource: %v", schema, err)
		}
		sch, err := c.Compile(url)
		if err != nil {
			t.Fatalf("%s: Compile: %v", schema, err)
		}

		for _, instance := range tc.instances {
			var v any
			if err := json.Unmarshal([]byte(instance), &v); err != nil {
				t.Fatalf("%s: %v", instance, err)
			}
			want := sch.Validate(v) == nil

			r := validate(t, instance, schema, &jsonschema.Options{SchemaURI: url})
			for _, is := range r.Errors {
				if is.Kind == jsonschema.Syntax || is.Location == jsonschema.Schema {
					t.Errorf("%s: unexpected issue %v", schema, is)
				}
			}
			if got := r.Valid(); got != want {
				t.Errorf("%s with %s: valid = %t, oracle says %t (%v)", tc.schema, instance, got, want, r.Errors)
			}
		}
	}
}
