// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/net/idna"
)

// hostnameFormat requires an RFC 1123 hostname.
// Internationalized names must already be in their A-label form.
func hostnameFormat(s string) error {
	if !isValidHostname(s) {
		return fmt.Errorf("%q is not a valid hostname", s)
	}
	return nil
}

// hostnameProfile is the IDNA profile used to check
// the length and label rules of hostnames.
var hostnameProfile = sync.OnceValue(func() *idna.Profile {
	return idna.New(
		idna.ValidateForRegistration(),
		idna.VerifyDNSLength(true),
	)
})

func isValidHostname(s string) bool {
	s = strings.TrimSuffix(s, ".")
	if s == "" || len(s) > 253 || strings.Contains(s, "_") {
		return false
	}
	for i := range len(s) {
		if s[i] >= 0x80 {
			return false
		}
	}
	for label := range strings.SplitSeq(s, ".") {
		if len(label) > 63 {
			return false
		}
	}
	_, err := hostnameProfile().ToASCII(s)
	return err == nil
}
