// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"fmt"
	"regexp/syntax"
)

// regexFormat requires a regular expression that the
// pattern keyword could use.
func regexFormat(s string) error {
	if _, err := syntax.Parse(s, syntax.Perl); err != nil {
		return fmt.Errorf("%q is not a valid regexp (only Go style regexps are supported)", s)
	}
	return nil
}
