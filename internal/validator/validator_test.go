// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Independence-University/json-validator/pkg/draft4"
	"github.com/Independence-University/json-validator/pkg/format"
	"github.com/Independence-University/json-validator/pkg/jsontext"
	"github.com/Independence-University/json-validator/pkg/types"
)

// evaluate validates instance against schema and returns
// each validation failure as "keywordLocation instanceLocation".
func evaluate(t *testing.T, schema, instance string, formats *format.Registry) []string {
	t.Helper()
	sd := jsontext.Parse("file:///schema.json", schema, nil)
	id := jsontext.Parse("file:///instance.json", instance, nil)
	if !sd.Valid() || !id.Valid() {
		t.Fatalf("test input does not parse: %v %v", sd.Errors, id.Errors)
	}
	out := types.Evaluate(context.Background(), id, sd, nil, &types.EvalOptions{
		Vocabulary: draft4.Vocabulary,
		Formats:    formats,
	})
	for _, se := range out.Sanity {
		t.Errorf("unexpected schema error: %s", se.Message)
	}
	var ret []string
	for _, ve := range out.Validation {
		ret = append(ret, ve.KeywordLocation+" "+ve.InstanceLocation)
	}
	return ret
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		schema   string
		instance string
		want     []string
	}{
		{`{"type":"integer"}`, `1`, nil},
		{`{"type":"integer"}`, `1.5`, []string{"#/type #"}},
		{`{"type":"number"}`, `1`, nil},
		{`{"type":["string","null"]}`, `null`, nil},
		{`{"type":["string","null"]}`, `1`, []string{"#/type #"}},

		{`{"enum":[1,"a",{"b":[true]}]}`, `{"b":[true]}`, nil},
		{`{"enum":[1,"a",{"b":[true]}]}`, `{"b":[false]}`, []string{"#/enum #"}},

		{`{"multipleOf":0.1}`, `0.3`, nil},
		{`{"multipleOf":2}`, `7`, []string{"#/multipleOf #"}},
		{`{"maximum":3}`, `3`, nil},
		{`{"maximum":3,"exclusiveMaximum":true}`, `3`, []string{"#/maximum #"}},
		{`{"minimum":2}`, `1`, []string{"#/minimum #"}},
		{`{"minimum":2,"exclusiveMinimum":true}`, `2`, []string{"#/minimum #"}},
		{`{"minimum":2}`, `"x"`, nil},

		{`{"maxLength":2}`, `"hé"`, nil},
		{`{"maxLength":2}`, `"héé"`, []string{"#/maxLength #"}},
		{`{"minLength":2}`, `"é"`, []string{"#/minLength #"}},
		{`{"pattern":"^a"}`, `"abc"`, nil},
		{`{"pattern":"b"}`, `"abc"`, nil},
		{`{"pattern":"^a"}`, `"ba"`, []string{"#/pattern #"}},

		{`{"items":{"type":"string"}}`, `["a",1,2]`, []string{"#/items/type #/1", "#/items/type #/2"}},
		{`{"items":[{"type":"string"},{"type":"number"}]}`, `[1,"x"]`, []string{"#/items/0/type #/0", "#/items/1/type #/1"}},
		{`{"items":[{"type":"string"}]}`, `[]`, nil},
		{`{"items":[{"type":"string"}],"additionalItems":false}`, `["a",1,2]`, []string{"#/additionalItems #/1", "#/additionalItems #/2"}},
		{`{"items":[{}],"additionalItems":{"type":"string"}}`, `[1,2]`, []string{"#/additionalItems/type #/1"}},
		{`{"items":{},"additionalItems":false}`, `[1,2]`, nil},
		{`{"maxItems":1}`, `[1,2]`, []string{"#/maxItems #"}},
		{`{"minItems":1}`, `[]`, []string{"#/minItems #"}},
		{`{"uniqueItems":true}`, `[1,2,1]`, []string{"#/uniqueItems #/2"}},
		{`{"uniqueItems":true}`, `[{"a":1},{"a":2}]`, nil},
		{`{"uniqueItems":false}`, `[1,1]`, nil},

		{`{"minProperties":2}`, `{"a":1,"a":2}`, []string{"#/minProperties #"}},
		{`{"maxProperties":1}`, `{"a":1,"b":2}`, []string{"#/maxProperties #"}},
		{`{"required":["a","b"]}`, `{"a":1}`, []string{"#/required/b #"}},
		{`{"required":["a"]}`, `[]`, nil},
		{`{"properties":{"x":{"required":["a"]}}}`, `{"x":{}}`, []string{"#/properties/x/required/a #/x"}},
		{`{"properties":{"a/b":{"type":"string"}}}`, `{"a/b":1}`, []string{"#/properties/a~1b/type #/a~1b"}},
		{`{"patternProperties":{"^x":{"type":"string"}}}`, `{"xa":1,"y":1}`, []string{"#/patternProperties/^x/type #/xa"}},
		{
			`{"properties":{"a":{}},"patternProperties":{"^x":{}},"additionalProperties":false}`,
			`{"a":1,"xb":2,"c":3}`,
			[]string{"#/additionalProperties #/c"},
		},
		{`{"additionalProperties":{"type":"string"}}`, `{"c":1}`, []string{"#/additionalProperties/type #/c"}},
		{`{"dependencies":{"a":["b"]}}`, `{"a":1}`, []string{"#/dependencies/a #"}},
		{`{"dependencies":{"a":["b"]}}`, `{"b":1}`, nil},
		{`{"dependencies":{"a":{"required":["c"]}}}`, `{"a":1}`, []string{"#/dependencies/a/required/c #"}},

		{`{"anyOf":[{"type":"string"},{"minimum":3}]}`, `1`, []string{"#/anyOf #"}},
		{`{"anyOf":[{"type":"string"},{"minimum":3}]}`, `"x"`, nil},
		{`{"oneOf":[{"type":"integer"},{"minimum":0}]}`, `1`, []string{"#/oneOf #"}},
		{`{"oneOf":[{"type":"integer"},{"minimum":0}]}`, `-1`, nil},
		{`{"oneOf":[{"type":"string"},{"type":"null"}]}`, `1`, []string{"#/oneOf #"}},
		{`{"allOf":[{"type":"integer"},{"minimum":3}]}`, `1`, []string{"#/allOf/1/minimum #"}},
		{`{"not":{"type":"string"}}`, `"x"`, []string{"#/not #"}},
		{`{"not":{"type":"string"}}`, `1`, nil},

		{`{"title":"t","description":"d","default":5,"definitions":{"a":{"type":"string"}}}`, `1`, nil},
		{`{"unknownKeyword":{"type":"string"}}`, `1`, nil},
	}
	for _, tt := range tests {
		got := evaluate(t, tt.schema, tt.instance, nil)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s with %s: mismatch (-want +got):\n%s", tt.schema, tt.instance, diff)
		}
	}
}

func TestFormat(t *testing.T) {
	formats := format.NewRegistry(format.Builtin()...)
	tests := []struct {
		schema   string
		instance string
		formats  *format.Registry
		want     []string
	}{
		{`{"format":"ipv4"}`, `"1.2.3"`, formats, []string{"#/format #"}},
		{`{"format":"ipv4"}`, `"1.2.3.4"`, formats, nil},
		{`{"format":"ipv4"}`, `"1.2.3"`, nil, nil},
		{`{"format":"ipv4"}`, `17`, formats, nil},
		{`{"format":"no-such-format"}`, `"x"`, formats, nil},
	}
	for _, tt := range tests {
		got := evaluate(t, tt.schema, tt.instance, tt.formats)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s with %s: mismatch (-want +got):\n%s", tt.schema, tt.instance, diff)
		}
	}
}

func TestMessages(t *testing.T) {
	tests := []struct {
		schema   string
		instance string
		want     string
	}{
		{`{"required":["name"]}`, `{}`, `missing required field "name"`},
		{`{"maximum":3}`, `4`, `value 4 is larger than "maximum" limit 3`},
		{`{"minimum":3}`, `2`, `value 2 is smaller than "minimum" limit 3`},
		{`{"pattern":"^a"}`, `"b"`, `"pattern" regexp "^a" did not match "b"`},
		{`{"type":"string"}`, `1`, `instance has type "number", want "string"`},
		{`{"not":{}}`, `1`, `"not" schema matched`},
		{`{"oneOf":[{},{}]}`, `1`, `instance matched more than one branch of "oneOf" (2 matches)`},
		{`{"additionalProperties":false}`, `{"x":1}`, `unexpected additional property "x"`},
	}
	for _, tt := range tests {
		sd := jsontext.Parse("file:///schema.json", tt.schema, nil)
		id := jsontext.Parse("file:///instance.json", tt.instance, nil)
		out := types.Evaluate(context.Background(), id, sd, nil, &types.EvalOptions{Vocabulary: draft4.Vocabulary})
		if len(out.Validation) != 1 {
			t.Errorf("%s with %s: got %d errors, want 1", tt.schema, tt.instance, len(out.Validation))
			continue
		}
		if got := out.Validation[0].Message; got != tt.want {
			t.Errorf("%s with %s: message %q, want %q", tt.schema, tt.instance, got, tt.want)
		}
	}
}

func TestAdditionalPropertyNode(t *testing.T) {
	const instance = `{"a": 1, "extra": 2}`
	sd := jsontext.Parse("file:///schema.json", `{"properties":{"a":{}},"additionalProperties":false}`, nil)
	id := jsontext.Parse("file:///instance.json", instance, nil)
	out := types.Evaluate(context.Background(), id, sd, nil, &types.EvalOptions{Vocabulary: draft4.Vocabulary})
	if len(out.Validation) != 1 {
		t.Fatalf("got %d errors, want 1", len(out.Validation))
	}
	n := out.Validation[0].Node
	if got := instance[n.Start:n.End()]; got != `"extra"` {
		t.Errorf("error at %q, want %q", got, `"extra"`)
	}
}
