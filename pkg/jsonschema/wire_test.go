// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/Independence-University/json-validator/pkg/jsonschema"
)

func TestResultWireShape(t *testing.T) {
	r := validate(t, `{}`, `{"required": ["Foo"]}`, nil)
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"InstanceDocumentText": "{}",
		"SchemaText":           `{"required": ["Foo"]}`,
		"Errors": []any{
			map[string]any{
				"Kind":             "Validation",
				"Location":         "InstanceDocument",
				"Start":            float64(0),
				"Length":           float64(2),
				"Message":          `missing required field "Foo"`,
				"KeywordLocation":  "#/required/Foo",
				"InstanceLocation": "#",
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	var back jsonschema.Result
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(r, &back); diff != "" {
		t.Errorf("decoded result mismatch (-want +got):\n%s", diff)
	}
}

func TestSourceWireShape(t *testing.T) {
	const request = `{"Instance": {"Kind": "Uri", "Value": "http://example.com/a.json"}, "Schema": {"Kind": "Text", "Value": "{}"}}`
	var req struct {
		Instance jsonschema.Source
		Schema   jsonschema.Source
	}
	if err := json.Unmarshal([]byte(request), &req); err != nil {
		t.Fatal(err)
	}
	if want := jsonschema.URISource("http://example.com/a.json"); req.Instance != want {
		t.Errorf("Instance = %v, want %v", req.Instance, want)
	}
	if want := jsonschema.TextSource("{}"); req.Schema != want {
		t.Errorf("Schema = %v, want %v", req.Schema, want)
	}

	var bad jsonschema.Source
	if err := json.Unmarshal([]byte(`{"Kind": "Ftp", "Value": ""}`), &bad); err == nil {
		t.Error("unknown kind decoded without error")
	}
}
