// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/Independence-University/json-validator/pkg/jsonschema"
)

// execute runs the command with args in an empty directory
// holding files, and returns its standard output.
func execute(t *testing.T, files map[string]string, stdin string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestValidateText(t *testing.T) {
	files := map[string]string{
		"s.json": `{"required": ["Foo"]}`,
		"i.json": `{}`,
	}
	out, err := execute(t, files, "", "validate", "-s", "s.json", "-i", "i.json", "--color", "never")
	if !errors.Is(err, errIssues) {
		t.Fatalf("err = %v, want errIssues", err)
	}
	want := "1 error(s)\n" +
		"\n" +
		"i.json:1:1: validation error: missing required field \"Foo\"\n" +
		"1 | {}\n" +
		"    ^^\n" +
		"  at # (schema #/required/Foo)\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateJSON(t *testing.T) {
	files := map[string]string{
		"s.json": `{"type": "object"}`,
		"i.json": `{"a": 1}`,
	}
	out, err := execute(t, files, "", "validate", "-s", "s.json", "-i", "i.json", "-o", "json")
	if err != nil {
		t.Fatal(err)
	}
	var r jsonschema.Result
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("%v in %q", err, out)
	}
	if !r.Valid() || r.InstanceDocumentText != `{"a": 1}` {
		t.Errorf("got %+v, want a valid result", r)
	}
}

func TestValidateConfig(t *testing.T) {
	// With formats disabled by the configuration file the
	// email format is not asserted.
	files := map[string]string{
		".jsonvalidate.yaml": "formats: false\ncolor: never\n",
		"s.json":             `{"format": "email"}`,
		"i.json":             `"nobody"`,
	}
	if _, err := execute(t, files, "", "validate", "-s", "s.json", "-i", "i.json"); err != nil {
		t.Errorf("with formats: false, err = %v", err)
	}

	files[".jsonvalidate.yaml"] = "color: never\n"
	if _, err := execute(t, files, "", "validate", "-s", "s.json", "-i", "i.json"); !errors.Is(err, errIssues) {
		t.Errorf("with formats enabled, err = %v, want errIssues", err)
	}
	if _, err := execute(t, files, "", "validate", "-s", "s.json", "-i", "i.json", "--no-format"); err != nil {
		t.Errorf("with --no-format, err = %v", err)
	}
}

func TestValidateFlagErrors(t *testing.T) {
	files := map[string]string{"s.json": `{}`, "i.json": `{}`}
	for _, args := range [][]string{
		{"validate", "-s", "s.json", "-i", "i.json", "-o", "yaml"},
		{"validate", "-s", "s.json", "-i", "i.json", "--color", "sometimes"},
		{"validate", "-s", "s.json"},
		{"validate", "-s", "s.json", "-i", "i.json", "--config", "missing.yaml"},
	} {
		if _, err := execute(t, files, "", args...); err == nil || errors.Is(err, errIssues) {
			t.Errorf("%v: err = %v, want a usage error", args, err)
		}
	}
}

func TestRequest(t *testing.T) {
	const req = `{"Instance": {"Kind": "Text", "Value": "{}"},
		"Schema": {"Kind": "Text", "Value": "{\"required\": [\"Foo\"]}"}}`
	check := func(out string) {
		t.Helper()
		var r jsonschema.Result
		if err := json.Unmarshal([]byte(out), &r); err != nil {
			t.Fatalf("%v in %q", err, out)
		}
		if len(r.Errors) != 1 || r.Errors[0].Message != `missing required field "Foo"` {
			t.Errorf("got %+v", r.Errors)
		}
	}

	out, err := execute(t, nil, req, "request")
	if err != nil {
		t.Fatal(err)
	}
	check(out)

	out, err = execute(t, map[string]string{"req.json": req}, "", "request", "req.json")
	if err != nil {
		t.Fatal(err)
	}
	check(out)

	if _, err := execute(t, nil, `{"Instance": {"Kind": "Blob"}}`, "request"); err == nil {
		t.Error("request with a bad source kind succeeded")
	}
}

func TestSourceFor(t *testing.T) {
	for _, uri := range []string{"http://example.com/s.json", "https://example.com/s.json", "file:///tmp/s.json"} {
		src, err := sourceFor(uri)
		if err != nil || src != jsonschema.URISource(uri) {
			t.Errorf("sourceFor(%q) = %v, %v", uri, src, err)
		}
	}

	dir := t.TempDir()
	t.Chdir(dir)
	src, err := sourceFor("s.json")
	if err != nil {
		t.Fatal(err)
	}
	if src.Kind != jsonschema.URI || !strings.HasPrefix(src.Value, "file://") || !strings.HasSuffix(src.Value, "/s.json") {
		t.Errorf(`sourceFor("s.json") = %v`, src)
	}
}

func TestLocalFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	abs, err := filepath.Abs("s.json")
	if err != nil {
		t.Fatal(err)
	}
	got := localFiles("s.json", "https://example.com/i.json", "file://"+filepath.ToSlash(abs))
	want := map[string]bool{abs: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoteFresh(t *testing.T) {
	now := time.Now()
	if remoteFresh("file:///s.json", now) {
		t.Error("local file reported fresh")
	}
	if !remoteFresh("https://example.com/s.json", now) {
		t.Error("new remote document reported stale")
	}
	if remoteFresh("https://example.com/s.json", now.Add(-2*remoteMaxAge)) {
		t.Error("old remote document reported fresh")
	}
}
