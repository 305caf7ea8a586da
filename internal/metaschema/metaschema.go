// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metaschema

import (
	"embed"
	"fmt"
	"net/url"
	"strings"

	"github.com/Independence-University/json-validator/internal/schemacache"
	"github.com/Independence-University/json-validator/pkg/jsontext"
)

// Draft4ID is the canonical URI of the draft 4 meta-schema.
const Draft4ID = "http://json-schema.org/draft-04/schema"

//go:embed metaschema/*.json
var metaFS embed.FS

// metaFiles maps a meta-schema path on json-schema.org
// to its file in metaFS.
var metaFiles = map[string]string{
	"/draft-04/schema": "draft-04",
}

// metaCache is a cache of the meta-schemas.
// We use a single cache since they shouldn't change.
var metaCache schemacache.ConcurrentCache

// Load checks whether uri refers to a meta-schema that we carry,
// and returns the parsed document if it does.
// If uri is not a known meta-schema, this returns nil.
func Load(uri string) *jsontext.Document {
	u, err := url.Parse(uri)
	if err != nil {
		return nil
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil
	}
	if u.Host != "json-schema.org" {
		return nil
	}
	name, ok := metaFiles[strings.TrimSuffix(u.Path, "/")]
	if !ok {
		return nil
	}

	return metaCache.LoadOrCompute(name, func() *jsontext.Document {
		data, err := metaFS.ReadFile("metaschema/" + name + ".json")
		if err != nil {
			return jsontext.NewFailedDocument(uri, fmt.Sprintf("can't find meta-schema URI %q: %v", uri, err))
		}
		return jsontext.Parse(Draft4ID, string(data), nil)
	})
}
