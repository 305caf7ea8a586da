// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"fmt"
	"net/mail"
	"strings"
)

// emailFormat requires a bare RFC 5322 address, such as
// "user@example.com", with an ASCII domain.
func emailFormat(s string) error {
	if !isValidEmail(s) {
		return fmt.Errorf("%q is not a valid email address", s)
	}
	return nil
}

func isValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at < 0 {
		return false
	}
	domain := s[at+1:]
	if strings.HasPrefix(domain, "[") {
		// Address literal; net/mail has checked it.
		return true
	}
	return isASCIIDomain(domain)
}

// isASCIIDomain reports whether s is made of LDH labels.
func isASCIIDomain(s string) bool {
	if s == "" {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if label == "" || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := range len(label) {
			c := label[i]
			if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '-') {
				return false
			}
		}
	}
	return true
}
