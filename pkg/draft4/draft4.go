// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package draft4 defines the keywords used by
// JSON schema draft 4.
package draft4

import (
	"github.com/Independence-University/json-validator/internal/metaschema"
	"github.com/Independence-University/json-validator/pkg/types"
)

// SchemaID is the draft 4 meta-schema URI, as used in $schema.
const SchemaID = metaschema.Draft4ID

// Vocabulary is the draft 4 vocabulary.
var Vocabulary = &types.Vocabulary{
	Name:     "draft-04",
	Schema:   SchemaID,
	Keywords: keywordMap,
}

func init() {
	types.RegisterVocabulary(Vocabulary, true)
}
