// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtype

import (
	"testing"

	"github.com/Independence-University/json-validator/pkg/jsontext"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		at   ArgType
		arg  string
		want string // offending text, or "" if fine
	}{
		{Any, `[1, {}]`, ""},
		{Bool, `true`, ""},
		{Bool, `"true"`, `"true"`},
		{String, `1`, `1`},
		{StringArray, `["a", "b"]`, ""},
		{StringArray, `[]`, `[]`},
		{StringArray, `["a", 1]`, `1`},
		{StringArray, `["a", "a"]`, `"a"`},
		{StringArray, `"a"`, `"a"`},
		{Type, `"integer"`, ""},
		{Type, `"int"`, `"int"`},
		{Type, `["string", "null"]`, ""},
		{Type, `["string", "string"]`, `"string"`},
		{Type, `[]`, `[]`},
		{NonNegativeInt, `0`, ""},
		{NonNegativeInt, `-1`, `-1`},
		{NonNegativeInt, `1.5`, `1.5`},
		{NonNegativeInt, `1e10`, `1e10`},
		{Number, `-1.5`, ""},
		{PositiveNumber, `0`, `0`},
		{PositiveNumber, `0.01`, ""},
		{Schema, `{}`, ""},
		{Schema, `true`, `true`},
		{SchemaArray, `[{}, {}]`, ""},
		{SchemaArray, `[{}, 1]`, `1`},
		{SchemaArray, `[]`, `[]`},
		{MapSchema, `{"a": {}, "b": []}`, `[]`},
		{SchemaOrSchemas, `{}`, ""},
		{SchemaOrSchemas, `[{}]`, ""},
		{SchemaOrSchemas, `"x"`, `"x"`},
		{BoolOrSchema, `false`, ""},
		{BoolOrSchema, `1`, `1`},
		{Dependencies, `{"a": ["b"], "c": {}}`, ""},
		{Dependencies, `{"a": "b"}`, `"b"`},
		{Dependencies, `{"a": []}`, `[]`},
		{Regex, `"^a+$"`, ""},
		{Regex, `"(("`, `"(("`},
		{PatternMap, `{"^a": {}}`, ""},
		{PatternMap, `{"((": {}}`, `"(("`},
		{Enum, `[1, "1"]`, ""},
		{Enum, `[{"a": 1}, {"a": 1}]`, `{"a": 1}`},
		{Enum, `[]`, `[]`},
	}
	for _, tt := range tests {
		doc := jsontext.Parse("file:///test.json", tt.arg, nil)
		if !doc.Valid() {
			t.Fatalf("%s does not parse: %v", tt.arg, doc.Errors)
		}
		se := Check("k", tt.at, doc.Root, nil)
		got := ""
		if se != nil {
			got = tt.arg[se.Node.Start:se.Node.End()]
		}
		if got != tt.want {
			t.Errorf("Check(%s, %s) at %q, want %q", Name(tt.at), tt.arg, got, tt.want)
		}
	}
}

func TestCheckPlaceholder(t *testing.T) {
	doc := jsontext.Parse("file:///test.json", `{"a": }`, nil)
	arg, _ := doc.Root.Lookup("a")
	if se := Check("k", Schema, arg, nil); se != nil {
		t.Errorf("Check(placeholder) = %v, want nil", se)
	}
}

func TestCheckMessage(t *testing.T) {
	doc := jsontext.Parse("file:///test.json", `"Foo"`, nil)
	se := Check("required", StringArray, doc.Root, nil)
	if se == nil {
		t.Fatal("Check succeeded")
	}
	if want := `"required" must be a non-empty array of unique strings, not string`; se.Message != want {
		t.Errorf("message %q, want %q", se.Message, want)
	}
}

func TestRegexps(t *testing.T) {
	var res Regexps
	re1, err := res.Compile("^a$")
	if err != nil {
		t.Fatal(err)
	}
	re2, _ := res.Compile("^a$")
	if re1 != re2 {
		t.Error("Compile did not reuse the compiled pattern")
	}
	if _, err := res.Compile("(?<"); err == nil {
		t.Error("Compile accepted a bad pattern")
	}

	var other Regexps
	if re3, _ := other.Compile("^a$"); re3 == re1 {
		t.Error("separate caches share a compiled pattern")
	}

	var none *Regexps
	if re, err := none.Compile("^a$"); err != nil || !re.MatchString("a") {
		t.Errorf("nil Regexps: Compile = %v, %v", re, err)
	}
}

func TestCheckRegexps(t *testing.T) {
	// Patterns checked through a cache stay in that cache only.
	var res Regexps
	doc := jsontext.Parse("file:///test.json", `{"^a": {}, "^b": {}}`, nil)
	if se := Check("patternProperties", PatternMap, doc.Root, &res); se != nil {
		t.Fatal(se)
	}
	n := 0
	res.m.Range(func(key, value any) bool {
		n++
		return true
	})
	if n != 2 {
		t.Errorf("cache holds %d patterns, want 2", n)
	}
}
