// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/Independence-University/json-validator/internal/argtype"
	"github.com/Independence-University/json-validator/internal/validerr"
	"github.com/Independence-University/json-validator/pkg/format"
	"github.com/Independence-University/json-validator/pkg/jsonpointer"
	"github.com/Independence-University/json-validator/pkg/jsontext"
	"github.com/Independence-University/json-validator/pkg/loader"
)

// EvalOptions describes evaluation options.
// A nil *EvalOptions means the defaults.
type EvalOptions struct {
	// Vocabulary overrides the vocabulary named by the
	// schema's $schema keyword.
	Vocabulary *Vocabulary
	// Formats holds the handlers for the format keyword.
	// If nil, format is an annotation and is never asserted.
	Formats *format.Registry
	// Concurrency is the number of goroutines that may evaluate
	// the branches of a combinator at once.
	// Values below 2 evaluate branches sequentially.
	Concurrency int
	// MaxDepth limits the depth of schema evaluation.
	// Zero means jsontext.DefaultMaxDepth.
	MaxDepth int
	// Logger receives debug messages. If nil, nothing is logged.
	Logger *slog.Logger
}

// Outcome is the result of an evaluation.
type Outcome struct {
	// Validation lists the ways in which the instance
	// does not satisfy the schema.
	Validation []*validerr.ValidationError
	// Sanity lists the defects found in the schema itself.
	Sanity []*validerr.SchemaError
}

// evalRun is the state shared by all of a single evaluation.
type evalRun struct {
	ctx         context.Context
	loader      *loader.Loader
	vocab       *Vocabulary
	formats     *format.Registry
	concurrency int
	maxDepth    int
	logger      *slog.Logger

	checked sync.Map // *jsontext.Node -> *validerr.SchemaError, nil if fine
	swept   sync.Map // *jsontext.Node -> bool
	regexps argtype.Regexps
}

// Evaluate validates the instance document against the schema document.
// Both documents may contain syntax errors; the parts that parsed
// are evaluated. Documents referenced by the schema are loaded
// through ld, which should already hold both documents.
//
// Evaluate never fails: every problem found is reported in the Outcome.
func Evaluate(ctx context.Context, instance, schema *jsontext.Document, ld *loader.Loader, opts *EvalOptions) *Outcome {
	if opts == nil {
		opts = &EvalOptions{}
	}
	if ld == nil {
		ld = loader.New(&loader.Options{Logger: opts.Logger})
	}
	run := &evalRun{
		ctx:         ctx,
		loader:      ld,
		formats:     opts.Formats,
		concurrency: opts.Concurrency,
		maxDepth:    opts.MaxDepth,
		logger:      opts.Logger,
	}
	if run.maxDepth <= 0 {
		run.maxDepth = jsontext.DefaultMaxDepth
	}
	if run.logger == nil {
		run.logger = slog.New(slog.DiscardHandler)
	}

	sink := new(validerr.Sink)
	out := new(Outcome)

	root := schema.Root
	switch {
	case root == nil, root.IsPlaceholder():
		// The syntax errors say it all.
		return out
	case root.Kind != jsontext.Object:
		sink.Add(&validerr.SchemaError{
			Node:    root,
			Doc:     schema,
			Message: "schema root must be an object",
		})
		out.Sanity = sink.Errors()
		return out
	}

	ld.Register(schema)
	s := Schema{Doc: schema, Node: root}
	run.vocab = chooseVocabulary(opts, s)
	if run.vocab == nil {
		panic("jsonschema: no schema vocabulary registered")
	}

	state := &ValidationState{
		Schema: s,
		Sink:   sink,
		run:    run,
	}
	state.Sweep(s)

	if instance != nil && instance.Root != nil {
		err := state.validate(s, instance.Root)
		out.Validation = validerr.Flatten(err)
	}
	out.Sanity = sink.Errors()

	run.logger.Debug("evaluated schema", "schema", schema.URI, "validation", len(out.Validation), "sanity", len(out.Sanity), "documents", ld.Len())
	return out
}

// chooseVocabulary picks the vocabulary for the schema s.
func chooseVocabulary(opts *EvalOptions, s Schema) *Vocabulary {
	if opts.Vocabulary != nil {
		return opts.Vocabulary
	}
	if arg, ok := s.Lookup("$schema"); ok && arg.Kind == jsontext.String {
		if v := LookupVocabulary(arg.Str); v != nil {
			return v
		}
	}
	return DefaultVocabulary()
}

// ValidationState is state we maintain while validating a schema.
// This is exported for use by keyword implementations.
// It is not expected to be used by code that just wants to validate.
type ValidationState struct {
	// The Schema being validated.
	Schema Schema
	// Depth of tree when validating. Used to avoid infinite recursion.
	Depth int
	// Sink collects the schema errors found.
	Sink *validerr.Sink
	// InstancePath holds the JSON Pointer tokens to the current location
	// within the instance being validated.
	// It is shared with other states and must not be modified in place.
	InstancePath []string

	refs *activeRef
	run  *evalRun
}

// Context returns the context of the evaluation.
func (vs *ValidationState) Context() context.Context {
	return vs.run.ctx
}

// Formats returns the format handlers in use, or nil.
func (vs *ValidationState) Formats() *format.Registry {
	return vs.run.formats
}

// Child returns a new ValidationState one level deeper than vs.
func (vs *ValidationState) Child() (*ValidationState, error) {
	if vs.Depth >= vs.run.maxDepth {
		return nil, errors.New("schema recursion too deep")
	}
	ret := *vs
	ret.Depth++
	return &ret, nil
}

// CompileRegex compiles a pattern of the schema.
// Patterns are compiled once per evaluation.
func (vs *ValidationState) CompileRegex(pattern string) (*regexp.Regexp, error) {
	return vs.run.regexps.Compile(pattern)
}

// ValidateSubSchema reports whether instance, found at tok within
// the current instance, satisfies schema, a subschema of the
// current schema.
func (vs *ValidationState) ValidateSubSchema(schema, instance *jsontext.Node, tok string) error {
	sub := *vs
	sub.InstancePath = append(slices.Clip(vs.InstancePath), tok)
	return sub.validate(vs.Schema.Sub(schema), instance)
}

// ValidateInPlaceSchema reports whether instance satisfies schema,
// where schema is a subschema that is evaluated against the same
// instance as the current schema.
func (vs *ValidationState) ValidateInPlaceSchema(schema, instance *jsontext.Node) error {
	return vs.validate(vs.Schema.Sub(schema), instance)
}

// validate applies the keywords of s to instance.
// Validation failures are returned. Defects in s are
// sent to the sink, and the keyword at fault is skipped.
func (vs *ValidationState) validate(s Schema, instance *jsontext.Node) error {
	if s.Node.IsPlaceholder() || instance.IsPlaceholder() {
		return nil
	}
	if s.Node.Kind != jsontext.Object {
		// Reported by the check of the keyword holding s.
		return nil
	}

	// A reference hop costs no depth: the target charges its own
	// level, and cycles that consume no instance are caught by validateRef.
	if ref, ok := s.Lookup("$ref"); ok && ref.Kind == jsontext.String {
		state := *vs
		state.Schema = s
		var topErr error
		validerr.AddError(&topErr, state.validateRef(ref, instance), "$ref")
		return topErr
	}

	state, err := vs.Child()
	if err != nil {
		vs.report(s, s.Node, err)
		return nil
	}
	state.Schema = s

	var topErr error
	for _, name := range s.Node.Keys() {
		kw := vs.run.vocab.Keywords[name]
		if kw == nil {
			continue
		}
		arg, _ := s.Lookup(name)
		if !state.checkKeyword(kw, arg) || kw.Validate == nil {
			continue
		}
		if err := kw.Validate(arg, instance, state); err != nil {
			if validerr.IsValidationError(err) {
				err = EnsureInstanceLocation(err, state.InstancePointer(), instance)
				validerr.AddError(&topErr, err, jsonpointer.Escape(name))
			} else {
				state.report(s, arg, err)
			}
		}
	}
	return topErr
}

// checkKeyword runs the instance-independent checks of a keyword
// argument. It reports whether the keyword may be evaluated.
func (vs *ValidationState) checkKeyword(kw *Keyword, arg *jsontext.Node) bool {
	if arg.IsPlaceholder() {
		return false
	}
	if v, ok := vs.run.checked.Load(arg); ok {
		se := v.(*validerr.SchemaError)
		if se != nil {
			vs.Sink.Add(se)
		}
		return se == nil
	}

	se := argtype.Check(kw.Name, kw.ArgType, arg, &vs.run.regexps)
	if se == nil && kw.Check != nil {
		if err := kw.Check(arg, vs.Schema); err != nil {
			se = vs.schemaError(vs.Schema, arg, err)
		}
	}
	if se != nil {
		if se.Doc == nil {
			se.Doc = vs.Schema.Doc
		}
		vs.Sink.Add(se)
	}
	vs.run.checked.Store(arg, se)
	return se == nil
}

// report sends a defect in s, found at node at, to the sink.
func (vs *ValidationState) report(s Schema, at *jsontext.Node, err error) {
	vs.Sink.Add(vs.schemaError(s, at, err))
}

func (vs *ValidationState) schemaError(s Schema, at *jsontext.Node, err error) *validerr.SchemaError {
	var se *validerr.SchemaError
	if !errors.As(err, &se) {
		se = &validerr.SchemaError{Message: err.Error()}
	}
	if se.Node == nil {
		se.Node = at
	}
	if se.Doc == nil {
		se.Doc = s.Doc
	}
	return se
}

// InstancePointer returns the current instance location as a JSON Pointer
// string starting with '#'.
func (vs *ValidationState) InstancePointer() string {
	var sb strings.Builder
	sb.WriteByte('#')
	for _, tok := range vs.InstancePath {
		sb.WriteByte('/')
		sb.WriteString(jsonpointer.Escape(tok))
	}
	return sb.String()
}

// EnsureInstanceLocation sets the instance location and node
// on validation errors that don't have them yet.
func EnsureInstanceLocation(err error, ptr string, instance *jsontext.Node) error {
	for _, ve := range validerr.Flatten(err) {
		if ve.InstanceLocation == "" {
			ve.InstanceLocation = ptr
		}
		if ve.Node == nil {
			ve.Node = instance
		}
	}
	return err
}

// ValidationError is returned by a validation function
// when an instance fails validation.
type ValidationError = validerr.ValidationError

// ValidationErrors is a collection of ValidationError values.
type ValidationErrors = validerr.ValidationErrors

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	return validerr.IsValidationError(err)
}
