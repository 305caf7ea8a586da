// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"fmt"
	"net/url"
	"strings"
)

// uriFormat requires an absolute URI (RFC 3986).
func uriFormat(s string) error {
	u, err := parseURI(s)
	if err != nil {
		return err
	}
	if !u.IsAbs() {
		return fmt.Errorf("%q is not an absolute URI", s)
	}
	return nil
}

// uriReferenceFormat requires a URI or a relative reference.
func uriReferenceFormat(s string) error {
	_, err := parseURI(s)
	return err
}

// parseURI parses s, first rejecting characters that
// RFC 3986 never permits unescaped.
func parseURI(s string) (*url.URL, error) {
	if strings.HasPrefix(s, `\\`) {
		return nil, fmt.Errorf(`%q starts with \\`, s)
	}
	for i := range len(s) {
		c := s[i]
		if c <= ' ' || c >= 0x7f || strings.IndexByte(`"<>\^`+"`{|}", c) >= 0 {
			return nil, fmt.Errorf("%q contains a character not permitted in a URI", s)
		}
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%q is not a valid URI: %v", s, err)
	}
	return u, nil
}
