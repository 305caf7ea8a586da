// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonpointer implements JSON pointers (RFC 6901)
// over parsed JSON text.
package jsonpointer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Independence-University/json-validator/pkg/jsontext"
)

// Deref takes a JSON pointer and a root node and returns
// the node to which the pointer refers.
// The empty pointer refers to the root.
func Deref(root *jsontext.Node, pointer string) (*jsontext.Node, error) {
	toks, err := Tokens(pointer)
	if err != nil {
		return nil, err
	}

	n := root
	for _, tok := range toks {
		if n.IsPlaceholder() {
			return nil, fmt.Errorf("when dereferencing pointer %q reached a malformed value before %q", pointer, tok)
		}

		switch n.Kind {
		case jsontext.Object:
			v, ok := n.Lookup(tok)
			if !ok {
				return nil, fmt.Errorf("when dereferencing pointer %q map key %q not present", pointer, tok)
			}
			n = v

		case jsontext.Array:
			idx, err := arrayIndex(tok)
			if err != nil {
				return nil, fmt.Errorf("when dereferencing pointer %q got token %q, expected array index", pointer, tok)
			}
			if idx >= len(n.Items) {
				return nil, fmt.Errorf("when dereferencing pointer %q array index %d out of range (length %d)", pointer, idx, len(n.Items))
			}
			n = n.Items[idx]

		default:
			return nil, fmt.Errorf("when dereferencing pointer %q token %q applied to %s", pointer, tok, n.Kind)
		}
	}

	return n, nil
}

// Tokens splits a JSON pointer into its decoded reference tokens.
func Tokens(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}
	if pointer[0] != '/' {
		return nil, fmt.Errorf("JSON pointer %q does not start with '/'", pointer)
	}
	toks := strings.Split(pointer[1:], "/")
	for i, tok := range toks {
		if !validEscapes(tok) {
			return nil, fmt.Errorf("JSON pointer %q has invalid escape in token %q", pointer, tok)
		}
		toks[i] = decodeToken(tok)
	}
	return toks, nil
}

// Escape mangles a reference token for use in a JSON pointer.
func Escape(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}

// Append returns pointer extended by one token.
func Append(pointer, tok string) string {
	return pointer + "/" + Escape(tok)
}

// decodeToken unmangles a token in a JSON pointer.
func decodeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	return strings.ReplaceAll(tok, "~0", "~")
}

// validEscapes reports whether every ~ in tok is followed by 0 or 1.
func validEscapes(tok string) bool {
	for i := 0; i < len(tok); i++ {
		if tok[i] != '~' {
			continue
		}
		if i+1 >= len(tok) || (tok[i+1] != '0' && tok[i+1] != '1') {
			return false
		}
	}
	return true
}

// arrayIndex parses an array index token.
// Leading zeros are not permitted.
func arrayIndex(tok string) (int, error) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, fmt.Errorf("invalid array index %q", tok)
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, fmt.Errorf("invalid array index %q", tok)
		}
	}
	return strconv.Atoi(tok)
}
