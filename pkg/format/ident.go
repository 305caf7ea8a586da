// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"fmt"
	"strings"

	"github.com/Independence-University/json-validator/pkg/jsonpointer"
)

// uuidFormat requires the 8-4-4-4-12 hex form of a UUID.
func uuidFormat(s string) error {
	if len(s) != 36 {
		return fmt.Errorf("%q is not a valid UUID", s)
	}
	for i := range len(s) {
		c := s[i]
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return fmt.Errorf("%q is not a valid UUID", s)
			}
		default:
			if !isHex(c) {
				return fmt.Errorf("%q is not a valid UUID", s)
			}
		}
	}
	return nil
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// jsonPointerFormat requires a JSON pointer (RFC 6901).
func jsonPointerFormat(s string) error {
	if s != "" && !strings.HasPrefix(s, "/") {
		return fmt.Errorf("%q is not a valid JSON pointer", s)
	}
	if _, err := jsonpointer.Tokens(s); err != nil {
		return fmt.Errorf("%q has invalid escaping for a JSON pointer", s)
	}
	return nil
}
