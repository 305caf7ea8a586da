// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package draft4

import (
	"github.com/Independence-University/json-validator/internal/argtype"
	"github.com/Independence-University/json-validator/internal/validator"
	"github.com/Independence-University/json-validator/pkg/types"
)

// keywords lists the draft 4 keywords.
// Keywords without a Validate function are annotations;
// their arguments are still checked.
var keywords = []*types.Keyword{
	&types.SchemaKeyword,
	&types.RefKeyword,
	{Name: "id", ArgType: argtype.String},
	{Name: "title", ArgType: argtype.String},
	{Name: "description", ArgType: argtype.String},
	{Name: "default", ArgType: argtype.Any},
	{Name: "definitions", ArgType: argtype.MapSchema},

	// Numbers.
	{Name: "multipleOf", ArgType: argtype.PositiveNumber, Validate: validator.ValidateMultipleOf},
	{Name: "maximum", ArgType: argtype.Number, Validate: validator.ValidateMaximum},
	{Name: "exclusiveMaximum", ArgType: argtype.Bool, Check: validator.CheckExclusive("maximum")},
	{Name: "minimum", ArgType: argtype.Number, Validate: validator.ValidateMinimum},
	{Name: "exclusiveMinimum", ArgType: argtype.Bool, Check: validator.CheckExclusive("minimum")},

	// Strings.
	{Name: "maxLength", ArgType: argtype.NonNegativeInt, Validate: validator.ValidateMaxLength},
	{Name: "minLength", ArgType: argtype.NonNegativeInt, Validate: validator.ValidateMinLength},
	{Name: "pattern", ArgType: argtype.Regex, Validate: validator.ValidatePattern},
	{Name: "format", ArgType: argtype.String, Validate: validator.ValidateFormat},

	// Arrays.
	{Name: "items", ArgType: argtype.SchemaOrSchemas, Validate: validator.ValidatePre2020Items},
	{Name: "additionalItems", ArgType: argtype.BoolOrSchema, Validate: validator.ValidatePre2020AdditionalItems},
	{Name: "maxItems", ArgType: argtype.NonNegativeInt, Validate: validator.ValidateMaxItems},
	{Name: "minItems", ArgType: argtype.NonNegativeInt, Validate: validator.ValidateMinItems},
	{Name: "uniqueItems", ArgType: argtype.Bool, Validate: validator.ValidateUniqueItems},

	// Objects.
	{Name: "maxProperties", ArgType: argtype.NonNegativeInt, Validate: validator.ValidateMaxProperties},
	{Name: "minProperties", ArgType: argtype.NonNegativeInt, Validate: validator.ValidateMinProperties},
	{Name: "required", ArgType: argtype.StringArray, Validate: validator.ValidateRequired},
	{Name: "properties", ArgType: argtype.MapSchema, Validate: validator.ValidateProperties},
	{Name: "patternProperties", ArgType: argtype.PatternMap, Validate: validator.ValidatePatternProperties},
	{Name: "additionalProperties", ArgType: argtype.BoolOrSchema, Validate: validator.ValidateAdditionalProperties},
	{Name: "dependencies", ArgType: argtype.Dependencies, Validate: validator.ValidateDependencies},

	// Any instance.
	{Name: "enum", ArgType: argtype.Enum, Validate: validator.ValidateEnum},
	{Name: "type", ArgType: argtype.Type, Validate: validator.ValidateType},
	{Name: "allOf", ArgType: argtype.SchemaArray, Validate: validator.ValidateAllOf},
	{Name: "anyOf", ArgType: argtype.SchemaArray, Validate: validator.ValidateAnyOf},
	{Name: "oneOf", ArgType: argtype.SchemaArray, Validate: validator.ValidateOneOf},
	{Name: "not", ArgType: argtype.Schema, Validate: validator.ValidateNot},
}

var keywordMap = func() map[string]*types.Keyword {
	m := make(map[string]*types.Keyword, len(keywords))
	for _, kw := range keywords {
		m[kw.Name] = kw
	}
	return m
}()
