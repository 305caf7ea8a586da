// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"fmt"

	"github.com/Independence-University/json-validator/internal/argtype"
	"github.com/Independence-University/json-validator/pkg/jsontext"
)

// SchemaKeyword is a keyword to hold the schema version.
var SchemaKeyword = Keyword{
	Name:    "$schema",
	ArgType: argtype.String,
	Check:   checkSchemaVersion,
}

// RefKeyword is the reference keyword.
// It has no Validate function: references are followed by the
// engine itself, since a reference replaces its sibling keywords.
var RefKeyword = Keyword{
	Name:    "$ref",
	ArgType: argtype.String,
}

// checkSchemaVersion reports a $schema naming a version
// that no registered vocabulary implements.
func checkSchemaVersion(arg *jsontext.Node, s Schema) error {
	if LookupVocabulary(arg.Str) == nil {
		return fmt.Errorf(`"$schema" %q is not a supported schema version`, arg.Str)
	}
	return nil
}
