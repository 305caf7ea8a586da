// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The jsonvalidate command validates JSON documents against
// draft 4 JSON schemas.
//
// Usage:
//
//	jsonvalidate validate --schema schema.json --instance doc.json
//	jsonvalidate validate --schema schema.json --instance doc.json --watch
//	jsonvalidate request request.json
//
// The validate command exits with status 1 if any issue is found.
package main

import (
	"errors"
	"fmt"
	"os"
)

// Build-time variables
var version = "dev"

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errIssues) {
			fmt.Fprintln(os.Stderr, "jsonvalidate:", err)
		}
		os.Exit(1)
	}
}
