// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonpointer

import (
	"testing"

	"github.com/Independence-University/json-validator/pkg/jsontext"
)

const pointerDoc = `{
	"foo": ["bar", "baz"],
	"": 0,
	"a/b": 1,
	"m~n": 8,
	"definitions": {"x": {"type": "string"}}
}`

func TestDeref(t *testing.T) {
	root := jsontext.Parse("mem:ptr", pointerDoc, nil).Root
	tests := []struct {
		pointer string
		want    string
	}{
		{"", "object with 5 members"},
		{"/foo", "array of length 2"},
		{"/foo/0", `"bar"`},
		{"/foo/1", `"baz"`},
		{"/", "0"},
		{"/a~1b", "1"},
		{"/m~0n", "8"},
		{"/definitions/x/type", `"string"`},
	}
	for _, test := range tests {
		n, err := Deref(root, test.pointer)
		if err != nil {
			t.Errorf("Deref(%q) failed: %v", test.pointer, err)
			continue
		}
		if got := n.String(); got != test.want {
			t.Errorf("Deref(%q) = %s, want %s", test.pointer, got, test.want)
		}
	}
}

func TestDerefErrors(t *testing.T) {
	root := jsontext.Parse("mem:ptr", pointerDoc, nil).Root
	for _, pointer := range []string{
		"foo",
		"/missing",
		"/foo/2",
		"/foo/01",
		"/foo/-",
		"/foo/0/x",
		"/m~2n",
		"/definitions/y",
	} {
		if n, err := Deref(root, pointer); err == nil {
			t.Errorf("Deref(%q) = %v, want error", pointer, n)
		}
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		tok  string
		want string
	}{
		{"plain", "plain"},
		{"a/b", "a~1b"},
		{"m~n", "m~0n"},
		{"~/", "~0~1"},
	}
	for _, test := range tests {
		if got := Escape(test.tok); got != test.want {
			t.Errorf("Escape(%q) = %q, want %q", test.tok, got, test.want)
		}
		toks, err := Tokens("/" + Escape(test.tok))
		if err != nil || len(toks) != 1 || toks[0] != test.tok {
			t.Errorf("Tokens(Escape(%q)) = %q, %v", test.tok, toks, err)
		}
	}
	if got := Append("/properties", "a/b"); got != "/properties/a~1b" {
		t.Errorf("Append = %q", got)
	}
}
