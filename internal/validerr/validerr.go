// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package validerr defines the errors returned by a failure to validate,
// and the errors that describe a defect in the schema itself.
package validerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Independence-University/json-validator/pkg/jsontext"
)

// ValidationError is returned by a validation function
// when an instance fails validation.
type ValidationError struct {
	// Basic output fields per JSON Schema output format (basic).
	Message          string `json:"error"`
	KeywordLocation  string `json:"keywordLocation"`
	InstanceLocation string `json:"instanceLocation"`

	// Node is the instance node that failed.
	// Its span is what gets reported to the user.
	Node *jsontext.Node `json:"-"`
}

// Error returns the error message that a user should see.
// This implements the error interface.
func (ve *ValidationError) Error() string {
	kl := ve.KeywordLocation
	if kl == "" {
		kl = "#"
	}
	return fmt.Sprintf("%s: %s", kl, ve.Message)
}

// ValidationErrors is a collection of ValidationError values.
type ValidationErrors struct {
	Errs []*ValidationError
}

// Error returns the error message that a user should see.
// This implements the error interface.
func (ves *ValidationErrors) Error() string {
	if len(ves.Errs) == 1 {
		return ves.Errs[0].Error()
	}
	errs := make([]error, len(ves.Errs))
	for i, ve := range ves.Errs {
		errs[i] = ve
	}
	return errors.Join(errs...).Error()
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	switch err.(type) {
	case *ValidationError, *ValidationErrors:
		return true
	}
	return false
}

// Flatten returns the individual validation errors in err.
// It returns nil if err is not a validation error.
func Flatten(err error) []*ValidationError {
	switch e := err.(type) {
	case *ValidationError:
		return []*ValidationError{e}
	case *ValidationErrors:
		return e.Errs
	}
	return nil
}

// AddError adds an error, which may be a validation error,
// to another error. Validation errors have loc prefixed
// to their keyword location.
func AddError(perr *error, err error, loc string) {
	if err == nil {
		return
	}

	if ve, ok := err.(*ValidationError); ok {
		tail := strings.TrimPrefix(strings.TrimPrefix(ve.KeywordLocation, "#"), "/")

		var composed string
		switch {
		case loc == "" && tail == "":
			composed = "#"
		case loc == "":
			composed = "#/" + tail
		case tail == "":
			composed = "#/" + loc
		default:
			composed = "#/" + loc + "/" + tail
		}

		il := ve.InstanceLocation
		if il == "" {
			il = "#"
		}
		AddValidationErrorStruct(perr, &ValidationError{
			Message:          ve.Message,
			KeywordLocation:  composed,
			InstanceLocation: il,
			Node:             ve.Node,
		})
		return
	}
	if ves, ok := err.(*ValidationErrors); ok {
		for _, ve := range ves.Errs {
			AddError(perr, ve, loc)
		}
		return
	}

	// The new error is not a validation error.

	if IsValidationError(*perr) {
		*perr = err
	} else if unwrap, ok := (*perr).(interface{ Unwrap() []error }); ok && len(unwrap.Unwrap()) > 0 {
		*perr = errors.Join(append(unwrap.Unwrap(), err)...)
	} else {
		*perr = errors.Join(*perr, err)
	}
}

// AddValidationErrorStruct adds a [ValidationError] to an existing error.
// The provided ve should already have basic fields populated.
func AddValidationErrorStruct(perr *error, ve *ValidationError) {
	if *perr == nil {
		*perr = ve
	} else if one, ok := (*perr).(*ValidationError); ok {
		*perr = &ValidationErrors{
			Errs: []*ValidationError{
				one,
				ve,
			},
		}
	} else if ves, ok := (*perr).(*ValidationErrors); ok {
		ves.Errs = append(ves.Errs, ve)
	} else {
		// Don't disturb an existing error that is not a validation error.
	}
}

// SchemaError describes a defect in a schema.
// A keyword validator returns one to point at a node
// more precise than the keyword's argument.
type SchemaError struct {
	// Node is the schema node at fault.
	Node *jsontext.Node
	// Doc is the document holding Node.
	// It is filled in by the engine if the validator leaves it nil.
	Doc     *jsontext.Document
	Message string
}

// Error implements the error interface.
func (se *SchemaError) Error() string {
	return se.Message
}

// Errorf returns a SchemaError at node n.
func Errorf(n *jsontext.Node, format string, args ...any) *SchemaError {
	return &SchemaError{
		Node:    n,
		Message: fmt.Sprintf(format, args...),
	}
}
